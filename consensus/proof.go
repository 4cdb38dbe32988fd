// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

// ErrInvalidPow is returned by Proof.Validate when the nonce list does not
// close an L-cycle in the header's puzzle graph.
var ErrInvalidPow = errors.New("consensus: invalid proof of work")

// ErrWrongProofSize is returned by Validate when Nonces is empty.
var ErrWrongProofSize = errors.New("consensus: wrong proof size")

// Proof is a solved cycle: the ascending nonce list solve.Context produced
// (§6's wire format).
type Proof struct {
	Nonces []uint32
}

// NewProof wraps an existing ascending nonce slice.
func NewProof(nonces []uint32) Proof {
	return Proof{Nonces: nonces}
}

// Validate independently re-derives the header's oracle and confirms that
// every nonce is below size*Easiness/100, that Nonces is strictly
// ascending, and that Nonces closes a single cycle of len(Nonces) edges —
// this is the consensus-side check, distinct from (and not dependent on)
// whatever solve.Context happened to produce, the same way a miner's own
// block would be re-checked by every other node. Unlike the teacher's
// version, a malformed proof is a returned error rather than a
// logrus.Fatal process exit — Validate runs on untrusted network input and
// must never crash the process that calls it.
func (p *Proof) Validate(header []byte, variant cuckoo.Variant, edgeBits uint) error {
	if len(p.Nonces) == 0 {
		return ErrWrongProofSize
	}

	var graph *cuckoo.Graph
	if variant == cuckoo.Cuckatoo {
		graph = cuckoo.NewCuckatoo(header, edgeBits)
	} else {
		graph = cuckoo.NewCuckaroo(header, edgeBits)
	}

	if !graph.Verify(p.Nonces, Easiness) {
		logrus.WithFields(logrus.Fields{
			"proofSize": len(p.Nonces),
			"edgeBits":  edgeBits,
		}).Warn("consensus: proof failed verification")
		return ErrInvalidPow
	}

	return nil
}

// ToDifficulty converts the proof into a Difficulty comparable against a
// network target (§4.9).
func (p *Proof) ToDifficulty() Difficulty {
	return MinimumDifficulty.FromHash(p.Hash())
}

// Hash returns the Blake2b-256 hash of the proof's canonical byte
// encoding — the advisory "cyclehash" fingerprint of §4.9.
func (p *Proof) Hash() []byte {
	hash := blake2b.Sum256(p.Bytes())
	return hash[:]
}

// Bytes returns the proof's canonical big-endian encoding.
func (p *Proof) Bytes() []byte {
	buf := new(bytes.Buffer)
	for _, n := range p.Nonces {
		binary.Write(buf, binary.BigEndian, n)
	}
	return buf.Bytes()
}
