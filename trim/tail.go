// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import (
	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/sirupsen/logrus"
)

// TailEdge is one uncompressed (u, v) node pair plus the single original
// nonce that produced it — exactly what the host-side cycle finder and
// nonce recovery (package solve) need, and nothing else.
type TailEdge struct {
	U, V  uint32
	Nonce uint32
}

// Tail flattens the final arena into a host-side TailEdge slice (§4.6). A
// relay-merged entry carries more than one original nonce (§4.5); Tail
// expands it back into one TailEdge per nonce by re-deriving that nonce's
// true (u, v) pair from the oracle, rather than trusting the entry's own
// Side0/Side1 (which, post-relay, name the far ends of a collapsed path,
// not a real graph edge). This is what makes relay transparent to
// everything downstream of Tail: the cycle finder and nonce recovery only
// ever see genuine single-nonce edges.
//
// If the arena holds more TailEdges than maxEdges once expanded, the
// excess is dropped and truncated is reported true — the MAXEDGES overflow
// case of §7, which is logged but does not abort the solve.
func Tail(o *cuckoo.Oracle, arena *Arena, maxEdges uint64, obs Observer) (edges []TailEdge, truncated bool) {
	if obs == nil {
		obs = nopObserver
	}

	edges = make([]TailEdge, 0, maxEdges)

outer:
	for b := 0; b < arena.NB(); b++ {
		for _, e := range arena.Bucket(b) {
			nonces := e.Nonces
			if len(nonces) == 0 {
				nonces = []uint32{e.Nonce}
			}
			for _, n := range nonces {
				if uint64(len(edges)) >= maxEdges {
					truncated = true
					break outer
				}
				edges = append(edges, TailEdge{
					U:     uint32(o.U(uint64(n))),
					V:     uint32(o.V(uint64(n))),
					Nonce: n,
				})
			}
		}
	}

	if truncated {
		logrus.WithFields(logrus.Fields{
			"exported": len(edges),
			"maxEdges": maxEdges,
		}).Warn("trim: tail overflowed MAXEDGES, truncating")
	}

	obs(0, "tail", len(edges))
	return edges, truncated
}
