// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import "sync/atomic"

// Edge is one arena slot. Before a widening round it only carries Nonce;
// from the widening round onward it carries the two endpoint values
// directly instead of a raw nonce, so later rounds never need to re-derive
// them from the oracle. This is the Go equivalent of the spec's Nonce/Pair
// sum type: the round driver (not the struct) knows which fields are live.
type Edge struct {
	Nonce uint32
	Side0 uint32
	Side1 uint32

	// Nonces is empty before the widening round. From the widening round
	// on it holds the original nonce(s) this entry's (Side0, Side1) pair
	// was built from — one nonce for a plain trimmed edge, more than one
	// once tag relay (trim.Relay) has merged a degree-2 path through a
	// shared node into a single composite entry. Tail expands a composite
	// entry back into its constituent primitive edges before export, so
	// the cycle finder and nonce recovery (package solve) only ever see
	// single-nonce edges, matching what the oracle can actually produce.
	Nonces []uint32

	// Copy marks a duplicate emission of the same source edge during a
	// relay pass; a duplicate must not be relayed again in a later pass.
	Copy bool
}

// bucket is one fixed-capacity slot array plus its saturating counter.
type bucket struct {
	entries []Edge
	count   int32 // atomically managed; never exceeds len(entries)
}

// Arena is a bucketed edge store: NB buckets, each with its own capacity
// and saturating atomic counter. It corresponds to one of the two large
// arenas (A, B) of §4.2, ping-ponged between across trim rounds.
type Arena struct {
	buckets  []bucket
	capacity int32
}

// NewArena allocates an Arena with nb buckets of the given per-bucket
// capacity.
func NewArena(nb int, capacity int32) *Arena {
	a := &Arena{
		buckets:  make([]bucket, nb),
		capacity: capacity,
	}
	for i := range a.buckets {
		a.buckets[i].entries = make([]Edge, capacity)
	}
	return a
}

// Reset clears every bucket's counter without releasing the underlying
// storage, so the arena can be reused across solve() calls.
func (a *Arena) Reset() {
	for i := range a.buckets {
		atomic.StoreInt32(&a.buckets[i].count, 0)
	}
}

// NB returns the bucket count.
func (a *Arena) NB() int { return len(a.buckets) }

// Capacity returns the per-bucket capacity.
func (a *Arena) Capacity() int32 { return a.capacity }

// Len returns the number of entries currently committed to bucket b.
func (a *Arena) Len(b int) int {
	return int(atomic.LoadInt32(&a.buckets[b].count))
}

// Bucket returns the committed entries of bucket b. The returned slice
// aliases the arena's storage and must not be retained past the next
// Reset/Append.
func (a *Arena) Bucket(b int) []Edge {
	n := atomic.LoadInt32(&a.buckets[b].count)
	return a.buckets[b].entries[:n]
}

// Append reserves a slot in bucket b via a saturating atomic increment and
// writes e into it. It returns false (and writes nothing) if the bucket is
// already at capacity — an overflow loss, which per §7 is not an error.
func (a *Arena) Append(b int, e Edge) bool {
	bk := &a.buckets[b]
	for {
		cur := atomic.LoadInt32(&bk.count)
		if cur >= a.capacity {
			return false
		}
		if atomic.CompareAndSwapInt32(&bk.count, cur, cur+1) {
			bk.entries[cur] = e
			return true
		}
	}
}

// Total sums the committed count across every bucket.
func (a *Arena) Total() int {
	total := 0
	for i := range a.buckets {
		total += a.Len(i)
	}
	return total
}
