// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import (
	"context"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/sirupsen/logrus"
)

// endpointOf returns e's endpoint on the given side. Before the widening
// round (wide==false) this re-derives it from e.Nonce through the oracle;
// from the widening round on (wide==true) it's a plain field read, since
// round 2 stores both true endpoints once and never needs the oracle
// again (§4.4's "rounds ≥3 read pairs ... directly").
func endpointOf(o *cuckoo.Oracle, e Edge, side uint64, wide bool) uint64 {
	if !wide {
		return o.Endpoint(uint64(e.Nonce), side)
	}
	if side == 0 {
		return uint64(e.Side0)
	}
	return uint64(e.Side1)
}

// Round runs one leaf-pruning trim pass (§4.4). srcSide names the endpoint
// the round's bitmap is keyed on. srcWide says whether src stores widened
// (Side0, Side1) pairs rather than raw nonces — true only for rounds after
// the widening round. widenHere marks the widening round itself (round 2 in
// the canonical schedule, though callers may widen earlier for small toy
// parameters): it reads nonces and writes widened pairs to dst.
//
// Round returns the number of edges retained.
func Round(ctx context.Context, o *cuckoo.Oracle, p Params, pass int, srcSide uint64, srcWide bool, widenHere bool, src, dst *Arena, obs Observer) int {
	if obs == nil {
		obs = nopObserver
	}

	zBits := p.ZBits()
	zMask := p.ZMask()
	dstSide := 1 - srcSide

	words := (p.NZ() + 63) / 64

	forEachBucket(ctx, src.NB(), p.Workers, func(b int) {
		entries := src.Bucket(b)
		if len(entries) == 0 {
			return
		}

		// seen/dup is a two-bitmap saturating counter over z: seen marks a
		// z value's first occurrence, dup marks its second (and any later)
		// occurrence. A degree-≥2 node — the retention criterion — is
		// exactly a z value with dup set; checking dup directly on the
		// same z is what actually tests "some other edge also lands here",
		// unlike comparing against the opposite-parity slot z^1, which for
		// Cuckatoo never holds anything since every z sharing a srcSide
		// bucket also shares srcSide's parity bit.
		seen := make([]uint64, words)
		dup := make([]uint64, words)

		for _, e := range entries {
			z := endpointOf(o, e, srcSide, srcWide) & zMask
			w, bit := z>>6, uint64(1)<<(z&63)
			if seen[w]&bit != 0 {
				dup[w] |= bit
			} else {
				seen[w] |= bit
			}
		}

		for _, e := range entries {
			z := endpointOf(o, e, srcSide, srcWide) & zMask
			if dup[z>>6]&(1<<(z&63)) == 0 {
				continue
			}

			other := endpointOf(o, e, dstSide, srcWide)
			destBucket := int(other >> zBits)

			out := e
			if widenHere {
				out = Edge{
					Side0:  uint32(endpointOf(o, e, 0, srcWide)),
					Side1:  uint32(endpointOf(o, e, 1, srcWide)),
					Nonces: []uint32{e.Nonce},
				}
			}
			dst.Append(destBucket, out)
		}
	})

	survivors := dst.Total()
	logrus.WithFields(logrus.Fields{
		"pass":      pass,
		"side":      srcSide,
		"survivors": survivors,
	}).Debug("trim: round complete")

	obs(pass, "round", survivors)
	return survivors
}
