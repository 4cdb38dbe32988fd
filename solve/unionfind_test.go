// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package solve

import (
	"testing"

	"github.com/dblokhin/cuckatoo-solver/trim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCyclesDetectsSimpleCycle(t *testing.T) {
	// A square 1-2-3-4-1 alternating U/V sides: (1,2) (2,3) (3,4) (4,1).
	edges := []trim.TailEdge{
		{U: 1, V: 2, Nonce: 10},
		{U: 2, V: 3, Nonce: 11},
		{U: 3, V: 4, Nonce: 12},
		{U: 4, V: 1, Nonce: 13},
	}

	cycles, duplicates := FindCycles(edges, 4, 0)
	require.Len(t, cycles, 1)
	assert.Equal(t, 0, duplicates)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, cycles[0])
}

func TestFindCyclesIgnoresWrongLength(t *testing.T) {
	// A triangle (length 3) must not be reported when proofSize is 4.
	edges := []trim.TailEdge{
		{U: 1, V: 2},
		{U: 2, V: 3},
		{U: 3, V: 1},
	}

	cycles, _ := FindCycles(edges, 4, 0)
	assert.Empty(t, cycles)
}

func TestFindCyclesDeduplicatesRepeatedEdges(t *testing.T) {
	edges := []trim.TailEdge{
		{U: 1, V: 2},
		{U: 1, V: 2},
		{U: 2, V: 3},
		{U: 3, V: 1},
	}

	cycles, duplicates := FindCycles(edges, 3, 0)
	assert.Equal(t, 1, duplicates)
	assert.Len(t, cycles, 1)
}

func TestFindCyclesRespectsMaxSols(t *testing.T) {
	// Two disjoint triangles.
	edges := []trim.TailEdge{
		{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 1},
		{U: 11, V: 12}, {U: 12, V: 13}, {U: 13, V: 11},
	}

	cycles, _ := FindCycles(edges, 3, 1)
	assert.Len(t, cycles, 1)
}

func TestFindCyclesNoCycleInTree(t *testing.T) {
	edges := []trim.TailEdge{
		{U: 1, V: 2},
		{U: 2, V: 3},
		{U: 3, V: 4},
	}

	cycles, duplicates := FindCycles(edges, 4, 0)
	assert.Empty(t, cycles)
	assert.Equal(t, 0, duplicates)
}
