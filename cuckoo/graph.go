// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

// Edge is one candidate edge of the puzzle graph, identified by its two
// endpoints. It is also used as the scratch structure for the small-scale
// reference cycle walk in findCycleLength, independent of the bucketed
// trimmer in package trim.
type Edge struct {
	U uint64
	V uint64

	usedU bool
	usedV bool
}

// Graph is a small-scale reference implementation of the oracle plus an
// O(proofSize^2) cycle verifier. It exists to double-check proofs
// independently of the bucketed trimmer (package trim) that actually finds
// them at scale — the same role a miner's own "verify" routine plays
// against its "solve" routine.
type Graph struct {
	oracle *Oracle
}

// NewCuckatoo builds a Graph for the Cuckatoo variant, deriving sipkeys
// from header via Blake2b-256.
func NewCuckatoo(header []byte, edgeBits uint) *Graph {
	return &Graph{oracle: NewOracle(DeriveKeys(header), Cuckatoo, edgeBits)}
}

// NewCuckaroo builds a Graph for the Cuckaroo variant.
func NewCuckaroo(header []byte, edgeBits uint) *Graph {
	return &Graph{oracle: NewOracle(DeriveKeys(header), Cuckaroo, edgeBits)}
}

// NewFromKeys builds a Cuckaroo Graph from already-derived sipkeys, for
// tests and for recovery paths that keep keys around instead of a header.
func NewFromKeys(keys Keys, edgeBits uint) *Graph {
	return &Graph{oracle: NewOracle(keys, Cuckaroo, edgeBits)}
}

// Oracle exposes the underlying endpoint oracle.
func (g *Graph) Oracle() *Oracle { return g.oracle }

// NewEdge builds the Edge for nonce.
func (g *Graph) NewEdge(nonce uint32) *Edge {
	return &Edge{
		U: g.oracle.U(uint64(nonce)),
		V: g.oracle.V(uint64(nonce)),
	}
}

// Verify checks that nonces form a single simple cycle of length
// len(nonces) in the puzzle graph. easiness, if given, additionally
// requires every nonce to be strictly below size*easiness[0]/100 and the
// whole slice to be strictly ascending (the wire format invariant of §6) —
// omit it to check only the graph-cycle property.
func (g *Graph) Verify(nonces []uint32, easiness ...uint64) bool {
	proofSize := len(nonces)
	if proofSize == 0 {
		return false
	}

	if len(easiness) > 0 {
		limit := (uint64(1) << g.oracle.EdgeBits()) * easiness[0] / 100
		for i, n := range nonces {
			if uint64(n) >= limit || (i != 0 && nonces[i] <= nonces[i-1]) {
				return false
			}
		}
	}

	edges := make([]*Edge, proofSize)
	for i, n := range nonces {
		edges[i] = g.NewEdge(n)
	}

	return findCycleLength(edges) == proofSize
}

// findCycleLength walks edges looking for a single cycle touching every
// edge exactly once, alternating between matching on U and matching on V
// (the bipartite walk: a cycle must alternate sides). It returns the number
// of steps the walk takes, starting from edges[0], before no unused match
// remains: 0 when edges[0] has no U partner, and a partial count when the
// walk gets stuck part way. Verify accepts only a count equal to len(edges).
func findCycleLength(edges []*Edge) int {
	proofSize := len(edges)
	if proofSize == 0 {
		return 0
	}

	i := 0
	flag := 0
	cycle := 0

loop:
	for {
		if flag%2 == 0 {
			for j := 0; j < proofSize; j++ {
				if j != i && !edges[j].usedU && edges[i].U == edges[j].U {
					edges[i].usedU = true
					edges[j].usedU = true

					i = j
					flag ^= 1
					cycle++

					continue loop
				}
			}
		} else {
			for j := 0; j < proofSize; j++ {
				if j != i && !edges[j].usedV && edges[i].V == edges[j].V {
					edges[i].usedV = true
					edges[j].usedV = true

					i = j
					flag ^= 1
					cycle++

					continue loop
				}
			}
		}

		break
	}

	return cycle
}
