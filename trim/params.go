// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package trim implements the bucketed edge-trimming engine: seeding
// candidate edges into buckets, repeated leaf-pruning trim rounds, tag
// relay, and the final tail export to the host-side cycle finder.
package trim

import "github.com/dblokhin/cuckatoo-solver/cuckoo"

// Params holds the compile-time-in-spirit sizing knobs of the trimmer.
// They are ordinary struct fields here (not build tags or consts) because
// a CPU port has no reason to recompile per parameter set the way a GPU
// kernel does.
type Params struct {
	// EdgeBits is N: NEDGES = 1<<EdgeBits candidate edges.
	EdgeBits uint

	// NodeBits is the width of a node id as actually returned by
	// cuckoo.Oracle.Endpoint: EdgeBits for Cuckaroo (disjoint per-side
	// spaces), EdgeBits+1 for Cuckatoo (one parity-tagged space covering
	// both sides, per §4.1). Bucketing must key on this, not EdgeBits,
	// or Cuckatoo's extra parity bit overflows the bucket index.
	NodeBits uint

	// ProofSize is L, the target cycle length.
	ProofSize int

	// BuckBits is B: NB = 1<<BuckBits buckets per endpoint side.
	BuckBits uint

	// IdxShift is S: MAXEDGES = NEDGES>>IdxShift.
	IdxShift uint

	// NEpsA/NEpsB are the bucket-capacity slack factors (numerator over
	// 128) for the nonce arena and the widened-pair arena respectively.
	// Higher values waste memory but lose fewer edges to bucket overflow
	// (§7); lower values are useful to deliberately provoke overflow in
	// tests (§8 scenario 5).
	NEpsA uint
	NEpsB uint

	// Workers bounds how many buckets are processed concurrently by a
	// trim/seed/relay pass. Zero means "use runtime.GOMAXPROCS".
	Workers int
}

// DefaultParams returns the typical production sizing named in §2
// (B=12, S=12), for the given EdgeBits/ProofSize/variant.
func DefaultParams(edgeBits uint, proofSize int, variant cuckoo.Variant) Params {
	nodeBits := edgeBits
	if variant == cuckoo.Cuckatoo {
		nodeBits = edgeBits + 1
	}
	return Params{
		EdgeBits:  edgeBits,
		NodeBits:  nodeBits,
		ProofSize: proofSize,
		BuckBits:  12,
		IdxShift:  12,
		NEpsA:     133,
		NEpsB:     85,
	}
}

// NEdges is NEDGES = 1<<EdgeBits.
func (p Params) NEdges() uint64 { return uint64(1) << p.EdgeBits }

// NB is the number of buckets per side.
func (p Params) NB() int { return 1 << p.BuckBits }

// ZBits is NodeBits-B, the width of a bucket-local offset.
func (p Params) ZBits() uint { return p.NodeBits - p.BuckBits }

// NZ is 1<<ZBits, the number of distinct z values (and bitmap size) per
// bucket.
func (p Params) NZ() uint64 { return uint64(1) << p.ZBits() }

// MaxEdges is NEDGES>>IdxShift, the target post-trim survivor budget.
func (p Params) MaxEdges() uint64 { return p.NEdges() >> p.IdxShift }

// EdgesPerBucketA is the per-bucket capacity of the nonce arena.
func (p Params) EdgesPerBucketA() int32 {
	return int32(p.NZ() * uint64(p.NEpsA) / 128)
}

// EdgesPerBucketB is the per-bucket capacity of the widened-pair arena.
func (p Params) EdgesPerBucketB() int32 {
	return int32(p.NZ() * uint64(p.NEpsB) / 128)
}

// ZMask is NZ-1.
func (p Params) ZMask() uint64 { return p.NZ() - 1 }
