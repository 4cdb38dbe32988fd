// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package solve implements the host-side half of the pipeline: cycle
// finding over the trimmer's compressed edge list (C7) and nonce recovery
// against the original oracle (C8), plus the Context lifecycle that ties
// seed/trim/relay/tail/find/recover into one Solve call.
package solve

import "github.com/dblokhin/cuckatoo-solver/trim"

// DefaultMaxSols is MAXSOLS (§4.7): the default cap on how many candidate
// cycles FindCycles records before it stops looking.
const DefaultMaxSols = 32

// FindCycles implements C7 (§4.7): union-find cycle finding over the
// compressed (u, v) endpoints trim.Tail exported. Two disjoint-set forests
// in the spec become one map-backed forest here, since Go's maps make the
// "endpoint value as a sparse index" idiom direct instead of needing a
// dense 2·MAXEDGES array the way a fixed device buffer would.
//
// It returns, for each found proofSize-cycle, the indices into edges (not
// nonces — Recover resolves those), plus how many duplicate (u, v) pairs
// were skipped at insertion.
func FindCycles(edges []trim.TailEdge, proofSize, maxSols int) (cycles [][]int, duplicates int) {
	if maxSols <= 0 {
		maxSols = DefaultMaxSols
	}

	parent := make(map[uint64]uint64, len(edges)*2)
	viaEdge := make(map[uint64]int, len(edges)*2)
	seen := make(map[[2]uint32]struct{}, len(edges))

	find := func(x uint64) uint64 {
		for parent[x] != x {
			x = parent[x]
		}
		return x
	}

	pathTo := func(x uint64) []int {
		var path []int
		for parent[x] != x {
			path = append(path, viaEdge[x])
			x = parent[x]
		}
		return path
	}

	for i, e := range edges {
		if len(cycles) >= maxSols {
			break
		}

		key := [2]uint32{e.U, e.V}
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}

		u, v := uint64(e.U), uint64(e.V)
		if _, ok := parent[u]; !ok {
			parent[u] = u
		}
		if _, ok := parent[v]; !ok {
			parent[v] = v
		}

		ru, rv := find(u), find(v)
		if ru == rv {
			path := append(pathTo(u), pathTo(v)...)
			path = append(path, i)
			if len(path) == proofSize {
				cycles = append(cycles, path)
			}
			continue
		}

		parent[ru] = rv
		viaEdge[ru] = i
	}

	return cycles, duplicates
}
