// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package cuckoo implements the keyed SipHash-2-4 endpoint oracle for the
// Cuckatoo/Cuckaroo proof-of-work graph, plus a small-scale reference
// cycle verifier used to double-check what the bucketed trimmer in package
// trim produces.
package cuckoo

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

const (
	siphashBlockBits = uint64(6)
	siphashBlockSize = uint64(1 << siphashBlockBits)
	siphashBlockMask = siphashBlockSize - 1
)

// Keys holds the four 64-bit siphash words derived from a header. Keys are
// the raw (unmixed) words; the siphash IV constants are folded in at the
// start of each hash rather than baked into Keys, so the same Keys value
// can seed any number of independent hashes.
type Keys [4]uint64

// DeriveKeys hashes header with Blake2b-256 and splits the digest into four
// big-endian 64-bit words.
func DeriveKeys(header []byte) Keys {
	digest := blake2b.Sum256(header)

	return Keys{
		binary.BigEndian.Uint64(digest[0:8]),
		binary.BigEndian.Uint64(digest[8:16]),
		binary.BigEndian.Uint64(digest[16:24]),
		binary.BigEndian.Uint64(digest[24:32]),
	}
}

// MutateHeader overwrites the last 4 bytes of header with nonce, little
// endian, matching the solver's optional mutate_nonce config knob (§6).
func MutateHeader(header []byte, nonce uint32) {
	binary.LittleEndian.PutUint32(header[len(header)-4:], nonce)
}

// hasher is the mutable per-call siphash-2-4 state.
type hasher struct {
	v [4]uint64
}

func newHasher(k Keys) hasher {
	return hasher{v: [4]uint64{
		k[0] ^ 0x736f6d6570736575,
		k[1] ^ 0x646f72616e646f6d,
		k[2] ^ 0x6c7967656e657261,
		k[3] ^ 0x7465646279746573,
	}}
}

func (h *hasher) round() {
	h.v[0] += h.v[1]
	h.v[1] = h.v[1]<<13 | h.v[1]>>(64-13)
	h.v[1] ^= h.v[0]
	h.v[0] = h.v[0]<<32 | h.v[0]>>(64-32)

	h.v[2] += h.v[3]
	h.v[3] = h.v[3]<<16 | h.v[3]>>(64-16)
	h.v[3] ^= h.v[2]

	h.v[0] += h.v[3]
	h.v[3] = h.v[3]<<21 | h.v[3]>>(64-21)
	h.v[3] ^= h.v[0]

	h.v[2] += h.v[1]
	h.v[1] = h.v[1]<<17 | h.v[1]>>(64-17)
	h.v[1] ^= h.v[2]
	h.v[2] = h.v[2]<<32 | h.v[2]>>(64-32)
}

// write64 runs the 2-then-4 round schedule for a single 64-bit input word.
func (h *hasher) write64(word uint64) {
	h.v[3] ^= word

	h.round()
	h.round()

	h.v[0] ^= word
	h.v[2] ^= 0xff

	h.round()
	h.round()
	h.round()
	h.round()
}

func (h *hasher) sum64() uint64 {
	return h.v[0] ^ h.v[1] ^ h.v[2] ^ h.v[3]
}

// siphash24 computes a single siphash-2-4 digest of nonce keyed by k.
func siphash24(k Keys, nonce uint64) uint64 {
	h := newHasher(k)
	h.write64(nonce)
	return h.sum64()
}

// siphashBlock computes a block of siphashBlockSize consecutive hashes and
// returns the one for nonce. Every hash in the block starts from a copy of
// one IV-mixed state (the IV setup is done once per block, not once per
// nonce), so the result equals siphash24(k, nonce).
func siphashBlock(k Keys, nonce uint64) uint64 {
	iv := newHasher(k)

	start := nonce &^ siphashBlockMask

	var nonceHash uint64
	for n := start; n < start+siphashBlockSize; n++ {
		h := iv
		h.write64(n)
		if n == nonce {
			nonceHash = h.sum64()
		}
	}

	return nonceHash
}
