// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package solve

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/sirupsen/logrus"
)

// ErrStopped is returned by Solve when Stop was called before a proof was
// found — the cancellation outcome of §7 ("tolerated, zero solutions"),
// surfaced here as an error since a stopped solve has nothing else useful
// to hand back to the caller.
var ErrStopped = errors.New("solve: stopped before completion")

// Result is the outcome of one Solve call.
type Result struct {
	// Proofs holds every found proof's nonces, ascending, one entry per
	// candidate cycle FindCycles recorded (capped at Context's maxSols).
	Proofs [][]uint32
	Stats  trim.Stats
}

// Context mirrors create_solver_ctx/run_solver/stop_solver/destroy_solver_ctx
// (§6): it owns the two ping-ponged arenas across however many Solve calls
// are made against it, so repeated attempts against a mutating header (as a
// miner does every time the tip or nonce changes) reuse the same
// allocations instead of reallocating per call.
type Context struct {
	params  trim.Params
	variant cuckoo.Variant
	maxSols int

	a, b *trim.Arena

	mu      sync.Mutex
	stopped bool
}

// NewContext allocates both arenas for params/variant.
func NewContext(params trim.Params, variant cuckoo.Variant, maxSols int) *Context {
	return &Context{
		params:  params,
		variant: variant,
		maxSols: maxSols,
		a:       trim.NewArena(params.NB(), params.EdgesPerBucketA()),
		b:       trim.NewArena(params.NB(), params.EdgesPerBucketB()),
	}
}

// Stop requests that an in-flight Solve return at the next pass boundary
// without a result.
func (c *Context) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// Close releases the context's arenas. A Context must not be reused after
// Close.
func (c *Context) Close() {
	c.a = nil
	c.b = nil
}

func (c *Context) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// widenRound is the 0-based round index at which trim.Round widens raw
// nonces into (Side0, Side1) pairs — round 2 in the canonical schedule
// (§4.4: "rounds ≥3 read pairs ... directly").
const widenRound = 2

// defaultTrimRounds is how many leaf-pruning rounds run before relay
// begins. The spec leaves the exact count as an implementation schedule
// (§4.4 describes one round's mechanics, not the total number to run); this
// is tuned to comfortably exhaust a toy-scale graph's pruning potential
// while staying cheap for tests. It is a fixed constant: Context does not
// read config.Params.NTrims, so every Solve runs this many rounds.
const defaultTrimRounds = 8

// Solve runs one full seed/trim/relay/tail/find/recover pipeline for
// header (§2's end-to-end pipeline). obs, if non-nil, receives progress
// callbacks from every seed/round/relay/tail pass.
func (c *Context) Solve(ctx context.Context, header []byte, obs trim.Observer) (Result, error) {
	c.mu.Lock()
	c.stopped = false
	c.mu.Unlock()

	stats := &trim.Stats{}
	tracked := stats.Observe(observerOrNop(obs))

	o := cuckoo.NewOracle(cuckoo.DeriveKeys(header), c.variant, c.params.EdgeBits)

	c.a.Reset()
	c.b.Reset()

	trim.Seed(ctx, o, c.params, 0, c.params.NEdges(), c.a, tracked)
	if c.isStopped() || ctx.Err() != nil {
		return Result{Stats: *stats}, ErrStopped
	}

	src, dst := c.a, c.b
	for round := 0; round < defaultTrimRounds; round++ {
		if c.isStopped() || ctx.Err() != nil {
			return Result{Stats: *stats}, ErrStopped
		}

		dst.Reset()
		side := uint64(round % 2)
		wide := round > widenRound
		trim.Round(ctx, o, c.params, round, side, wide, round == widenRound, src, dst, tracked)
		src, dst = dst, src
	}

	relayRounds := (c.params.ProofSize+1)/2 - 1
	for pass := 0; pass < relayRounds; pass++ {
		if c.isStopped() || ctx.Err() != nil {
			return Result{Stats: *stats}, ErrStopped
		}

		dst.Reset()
		side := uint64(pass % 2)
		trim.Relay(ctx, c.params, pass, side, src, dst, tracked)
		src, dst = dst, src
	}

	edges, truncated := trim.Tail(o, src, c.params.MaxEdges(), tracked)
	stats.TailEdges = len(edges)
	stats.Truncated = truncated

	cycles, duplicates := FindCycles(edges, c.params.ProofSize, c.maxSols)

	proofs := make([][]uint32, 0, len(cycles))
	for _, idxPath := range cycles {
		targets := make([][2]uint32, len(idxPath))
		for i, idx := range idxPath {
			targets[i] = [2]uint32{edges[idx].U, edges[idx].V}
		}

		nonces := Recover(ctx, o, targets, c.params.Workers)
		sort.Slice(nonces, func(i, j int) bool { return nonces[i] < nonces[j] })
		proofs = append(proofs, nonces)
	}

	logrus.WithFields(logrus.Fields{
		"proofs":     len(proofs),
		"tailEdges":  len(edges),
		"duplicates": duplicates,
	}).Debug("solve: pipeline complete")

	return Result{Proofs: proofs, Stats: *stats}, nil
}

func observerOrNop(obs trim.Observer) trim.Observer {
	if obs != nil {
		return obs
	}
	return func(int, string, int) {}
}
