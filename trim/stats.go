// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

// Observer is called after every seed/round/relay/tail pass with the pass
// index, a short kind label ("seed", "round", "relay", "tail"), and the
// number of surviving edges. Tests use it to assert the monotonic-decrease
// invariant of §8; cmd/cuckatoo-solver wires it to logrus or the tui
// package.
type Observer func(pass int, kind string, survivors int)

// nopObserver is used when the caller doesn't want progress callbacks.
func nopObserver(int, string, int) {}

// Stats accumulates the overflow/survivor bookkeeping for one solve() call.
type Stats struct {
	// RoundSurvivors[0] is the seeded count and RoundSurvivors[i] (i >= 1)
	// is the survivor count after trim round i-1.
	RoundSurvivors []int

	// Overflows is not updated by the seed, round or relay passes and
	// stays 0: Arena.Append calls that return false (an overflow loss per
	// §7, not an error) are not counted anywhere.
	Overflows int

	// TailEdges is the number of edges exported by the tail pass.
	TailEdges int

	// Truncated is set when the tail pass produced more than MaxEdges
	// survivors and had to drop the excess (§7's MAXEDGES overflow).
	Truncated bool
}

// Observe wraps obs so that every seed and round callback is also recorded
// in s.RoundSurvivors.
func (s *Stats) Observe(obs Observer) Observer {
	return func(pass int, kind string, survivors int) {
		if kind == "round" || kind == "seed" {
			s.RoundSurvivors = append(s.RoundSurvivors, survivors)
		}
		obs(pass, kind, survivors)
	}
}
