// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"context"
	"testing"
	"time"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/dblokhin/cuckatoo-solver/solve"
	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solveOne(t *testing.T, header []byte) []uint32 {
	t.Helper()

	params := trim.DefaultParams(14, 6, cuckoo.Cuckatoo)
	params.BuckBits = 4
	params.NEpsA = 160
	params.NEpsB = 160

	ctx := solve.NewContext(params, cuckoo.Cuckatoo, 8)
	defer ctx.Close()

	var proof []uint32
	for attempt := 0; attempt < 64 && proof == nil; attempt++ {
		cuckoo.MutateHeader(header, uint32(attempt))
		result, err := ctx.Solve(context.Background(), header, nil)
		require.NoError(t, err)
		if len(result.Proofs) > 0 {
			proof = result.Proofs[0]
		}
	}
	return proof
}

func TestProofValidateAcceptsASolvedProof(t *testing.T) {
	header := append([]byte("consensus proof validate header"), make([]byte, 4)...)
	nonces := solveOne(t, header)
	if nonces == nil {
		t.Skip("no cycle found at toy scale for this header — property not exercised")
	}

	p := NewProof(nonces)
	assert.NoError(t, p.Validate(header, cuckoo.Cuckatoo, 14))
}

func TestProofValidateRejectsTamperedNonces(t *testing.T) {
	p := NewProof([]uint32{1, 2, 3})
	err := p.Validate([]byte("some header"), cuckoo.Cuckatoo, 14)
	assert.ErrorIs(t, err, ErrInvalidPow)
}

func TestProofValidateRejectsEmptyProof(t *testing.T) {
	p := NewProof(nil)
	err := p.Validate([]byte("some header"), cuckoo.Cuckatoo, 14)
	assert.ErrorIs(t, err, ErrWrongProofSize)
}

func TestProofHashIsDeterministic(t *testing.T) {
	p1 := NewProof([]uint32{5, 9, 20})
	p2 := NewProof([]uint32{5, 9, 20})
	assert.Equal(t, p1.Hash(), p2.Hash())

	p3 := NewProof([]uint32{5, 9, 21})
	assert.NotEqual(t, p1.Hash(), p3.Hash())
}

func TestDifficultyFromHashIsInverselyProportional(t *testing.T) {
	small := make([]byte, 32)
	small[7] = 1 // tiny leading-8-byte value -> large difficulty
	large := make([]byte, 32)
	for i := 0; i < 8; i++ {
		large[i] = 0xff
	}

	assert.Greater(t, uint64(MinimumDifficulty.FromHash(small)), uint64(MinimumDifficulty.FromHash(large)))
}

func TestNextDifficultyFloorsAtMinimum(t *testing.T) {
	assert.Equal(t, ZeroDifficulty, NextDifficulty(nil))
	assert.Equal(t, MinimumDifficulty, NextDifficulty([]Sample{{Timestamp: time.Now(), Difficulty: 5}}))
}

func TestNextDifficultyRespondsToFasterBlocks(t *testing.T) {
	now := time.Now()
	samples := make([]Sample, 0, DifficultyAdjustWindow+MedianTimeWindow+1)
	for i := 0; i < DifficultyAdjustWindow+MedianTimeWindow+1; i++ {
		samples = append(samples, Sample{
			Timestamp:  now.Add(-time.Duration(i) * BlockTimeSec / 2), // blocks landing twice as fast as target
			Difficulty: 1000,
		})
	}

	got := NextDifficulty(samples)
	assert.Greater(t, uint64(got), uint64(MinimumDifficulty))
}

func TestShortIDIsDeterministicAndCompact(t *testing.T) {
	headerHash := make([]byte, 32)
	for i := range headerHash {
		headerHash[i] = byte(i)
	}
	proofHash := []byte("some proof hash of at least 8 bytes")

	id1 := NewShortID(headerHash, proofHash)
	id2 := NewShortID(headerHash, proofHash)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, ShortIDSize)
	assert.Len(t, id1.String(), ShortIDSize*2)
}
