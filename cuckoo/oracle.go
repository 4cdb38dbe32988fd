// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

// Variant selects which of the two related puzzles the oracle implements.
// Both deliver a uniformly distributed N-bit value per (nonce, side); they
// differ only in how the side is folded into the returned node id (§4.1).
type Variant int

const (
	// Cuckatoo forces the node's bipartition by parity: side 0 nodes are
	// even, side 1 nodes are odd, and both sides share one 2^(N+1) node
	// space.
	Cuckatoo Variant = iota

	// Cuckaroo returns N-bit values on both sides and tags no parity bit:
	// side 0 is the masked siphash output, side 1 is that output XORed
	// with nodeMask>>1. A node value alone does not reveal which side it
	// belongs to, and a side-0 and a side-1 value can be equal; the caller
	// tracks side out of band (array identity).
	Cuckaroo
)

// Oracle evaluates endpoint(keys, nonce, side) for a fixed set of sipkeys
// and a fixed EDGEBITS. It is a pure function of its inputs: constructing
// one is cheap and Oracle is safe for concurrent use by any number of
// trimming workers.
type Oracle struct {
	keys     Keys
	variant  Variant
	edgeBits uint
	nodeMask uint64 // NEDGES - 1
}

// NewOracle builds an Oracle for the given sipkeys, variant and EDGEBITS.
func NewOracle(keys Keys, variant Variant, edgeBits uint) *Oracle {
	nedges := uint64(1) << edgeBits
	return &Oracle{
		keys:     keys,
		variant:  variant,
		edgeBits: edgeBits,
		nodeMask: nedges - 1,
	}
}

// Keys returns the sipkeys this oracle was built with.
func (o *Oracle) Keys() Keys { return o.keys }

// EdgeBits returns N.
func (o *Oracle) EdgeBits() uint { return o.edgeBits }

// Endpoint returns the node id on the given side (0 or 1) of nonce, per
// §4.1. For Cuckatoo the low bit of the returned value always equals side;
// for Cuckaroo the low bit carries no side information (both sides share
// one N-bit value range and side is tracked out of band).
func (o *Oracle) Endpoint(nonce uint64, side uint64) uint64 {
	sip := siphash24(o.keys, 2*nonce+side) & o.nodeMask

	switch o.variant {
	case Cuckaroo:
		if side == 0 {
			return sip
		}
		// Flip the V side's low EdgeBits-1 bits. The result stays within
		// the same N-bit mask, so it can equal some side-0 endpoint.
		return sip ^ (o.nodeMask >> 1)
	default: // Cuckatoo
		return sip<<1 | side
	}
}

// EndpointBlock is Endpoint computed via the amortized block hasher; it
// returns an identical value to Endpoint for the same inputs and exists so
// the seeder can batch-hash a run of consecutive nonces cheaply (§4.3).
func (o *Oracle) EndpointBlock(nonce uint64, side uint64) uint64 {
	sip := siphashBlock(o.keys, 2*nonce+side) & o.nodeMask

	switch o.variant {
	case Cuckaroo:
		if side == 0 {
			return sip
		}
		return sip ^ (o.nodeMask >> 1)
	default:
		return sip<<1 | side
	}
}

// U returns the side-0 endpoint of nonce.
func (o *Oracle) U(nonce uint64) uint64 { return o.Endpoint(nonce, 0) }

// V returns the side-1 endpoint of nonce.
func (o *Oracle) V(nonce uint64) uint64 { return o.Endpoint(nonce, 1) }
