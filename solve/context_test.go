// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package solve

import (
	"context"
	"testing"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextSolveReturnsVerifiableProofs(t *testing.T) {
	params := trim.DefaultParams(14, 6, cuckoo.Cuckatoo)
	params.BuckBits = 4
	params.NEpsA = 160
	params.NEpsB = 160
	params.Workers = 2

	ctx := NewContext(params, cuckoo.Cuckatoo, 8)
	defer ctx.Close()

	header := []byte("solve context end-to-end toy header")
	result, err := ctx.Solve(context.Background(), header, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Proofs, "the full seed/trim/relay/tail/find/recover pipeline must find at least one cycle at this scale")

	graph := cuckoo.NewCuckatoo(header, params.EdgeBits)
	for _, proof := range result.Proofs {
		assert.True(t, graph.Verify(proof), "every reported proof must independently verify")
		assert.Len(t, proof, params.ProofSize)
		for i := 1; i < len(proof); i++ {
			assert.Less(t, proof[i-1], proof[i], "proof nonces must be strictly ascending")
		}
	}
}

// TestContextSolveFindsKnownCycleAtToyScale mirrors spec §8 scenario 1/2: a
// toy N=8, L=4 Cuckatoo puzzle over an empty 80-byte header, with the nonce
// mutated into the trailing 4 bytes per §6. At this scale a 4-cycle is
// common enough that the pipeline finding at least one — and every reported
// proof independently verifying — is the meaningful, non-vacuous assertion;
// this repo has no independent reference implementation to compare a literal
// expected nonce set against, so it does not hardcode one.
func TestContextSolveFindsKnownCycleAtToyScale(t *testing.T) {
	params := trim.DefaultParams(8, 4, cuckoo.Cuckatoo)
	params.BuckBits = 4
	params.NEpsA = 256
	params.NEpsB = 256

	ctx := NewContext(params, cuckoo.Cuckatoo, 8)
	defer ctx.Close()

	found := false
	for nonce := uint32(0); nonce < 256 && !found; nonce++ {
		header := make([]byte, 80)
		cuckoo.MutateHeader(header, nonce)

		result, err := ctx.Solve(context.Background(), header, nil)
		require.NoError(t, err)

		graph := cuckoo.NewCuckatoo(header, params.EdgeBits)
		for _, proof := range result.Proofs {
			assert.True(t, graph.Verify(proof), "every reported proof must independently verify")
			assert.Len(t, proof, params.ProofSize)
			found = true
		}
	}

	require.True(t, found, "at least one of 256 toy-scale nonces must yield a verifiable 4-cycle")
}

func TestContextStopYieldsNoProofs(t *testing.T) {
	params := trim.DefaultParams(14, 6, cuckoo.Cuckatoo)
	params.BuckBits = 4
	params.NEpsA = 160
	params.NEpsB = 160

	ctx := NewContext(params, cuckoo.Cuckatoo, 8)
	defer ctx.Close()

	// Solve clears any earlier Stop on entry, so the stop is requested from
	// inside the run, after the seed pass.
	stopAfterSeed := func(pass int, kind string, survivors int) {
		if kind == "seed" {
			ctx.Stop()
		}
	}
	result, err := ctx.Solve(context.Background(), []byte("stopped header"), stopAfterSeed)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Empty(t, result.Proofs)
}

func TestContextObserverSeesMonotonicSurvivors(t *testing.T) {
	params := trim.DefaultParams(14, 6, cuckoo.Cuckatoo)
	params.BuckBits = 4
	params.NEpsA = 160
	params.NEpsB = 160

	ctx := NewContext(params, cuckoo.Cuckatoo, 8)
	defer ctx.Close()

	var seedCount int
	var roundCounts []int
	obs := func(pass int, kind string, survivors int) {
		switch kind {
		case "seed":
			seedCount = survivors
		case "round":
			roundCounts = append(roundCounts, survivors)
		}
	}

	_, err := ctx.Solve(context.Background(), []byte("observer header"), obs)
	require.NoError(t, err)
	require.NotEmpty(t, roundCounts)

	prev := seedCount
	for _, c := range roundCounts {
		assert.LessOrEqual(t, c, prev)
		prev = c
	}
}
