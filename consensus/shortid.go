// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/dchest/siphash"
)

// ShortIDSize is the size in bytes of a proof's short display id.
const ShortIDSize = 6

// ShortID is a compact, siphash-keyed fingerprint of a proof, used for log
// lines and dedup sets where printing a full Blake2b hash would be noise.
// This repurposes the teacher's transaction short-id scheme (there, keyed
// by block hash to identify inputs/outputs/kernels) for proof identity,
// keyed by the same header hash the proof was found against.
type ShortID []byte

// NewShortID derives a ShortID for a proof's canonical Hash, keyed by
// headerHash (at least 16 bytes).
func NewShortID(headerHash []byte, proofHash []byte) ShortID {
	k0 := binary.LittleEndian.Uint64(headerHash[:8])
	k1 := binary.LittleEndian.Uint64(headerHash[8:16])

	h := siphash.Hash(k0, k1, proofHash)

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, h)
	return ShortID(buf[:ShortIDSize])
}

// String returns the hex representation.
func (id ShortID) String() string {
	return hex.EncodeToString(id)
}
