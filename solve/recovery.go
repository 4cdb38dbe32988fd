// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package solve

import (
	"context"
	"runtime"
	"sync"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
)

// Recover implements C8 (§4.8): given the (u, v) pairs of one found cycle,
// re-enumerates every nonce in [1, NEDGES) in parallel and reports, for
// each target, the nonce whose oracle endpoints match it. Nonce 0 is never
// a candidate, matching the seeder's own exclusion of it (see DESIGN.md).
// This never reads a TailEdge's own Nonce field — the whole point of C8 is
// an independent re-derivation from the oracle, the same cross-check an
// external verifier performs, not a shortcut through data the trimmer
// already happened to keep around.
//
// workers <= 0 uses runtime.GOMAXPROCS. The returned slice is positional:
// result[i] is the nonce for targets[i], in the order the caller's cycle
// indices named them; callers that need the §6 wire format sort it
// ascending themselves.
func Recover(ctx context.Context, o *cuckoo.Oracle, targets [][2]uint32, workers int) []uint32 {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	want := make(map[[2]uint32]int, len(targets))
	for i, t := range targets {
		want[t] = i
	}

	result := make([]uint32, len(targets))
	var mu sync.Mutex

	const minNonce = uint64(1)
	nedges := uint64(1) << o.EdgeBits()
	span := nedges - minNonce
	if workers > int(span) {
		workers = int(span)
	}
	if workers <= 0 {
		workers = 1
	}
	shardSize := (span + uint64(workers) - 1) / uint64(workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := minNonce + uint64(w)*shardSize
		hi := lo + shardSize
		if hi > nedges {
			hi = nedges
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(lo, hi uint64) {
			defer wg.Done()
			for n := lo; n < hi; n++ {
				if n%1024 == 0 && ctx.Err() != nil {
					return
				}

				key := [2]uint32{uint32(o.U(n)), uint32(o.V(n))}

				mu.Lock()
				idx, ok := want[key]
				if ok {
					delete(want, key)
				}
				mu.Unlock()

				if !ok {
					continue
				}
				result[idx] = uint32(n)
			}
		}(lo, hi)
	}

	wg.Wait()
	return result
}
