// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package solve

import (
	"context"
	"testing"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverFindsOriginalNonces(t *testing.T) {
	o := cuckoo.NewOracle(cuckoo.DeriveKeys([]byte("recovery test header")), cuckoo.Cuckaroo, 10)

	wantNonces := []uint64{3, 17, 200}
	targets := make([][2]uint32, len(wantNonces))
	for i, n := range wantNonces {
		targets[i] = [2]uint32{uint32(o.U(n)), uint32(o.V(n))}
	}

	got := Recover(context.Background(), o, targets, 4)
	require.Len(t, got, len(wantNonces))
	for i, n := range wantNonces {
		assert.Equal(t, uint32(n), got[i], "target %d should recover nonce %d", i, n)
	}
}

func TestRecoverSingleWorkerMatchesParallel(t *testing.T) {
	o := cuckoo.NewOracle(cuckoo.DeriveKeys([]byte("single worker header")), cuckoo.Cuckatoo, 9)

	targets := [][2]uint32{{uint32(o.U(5)), uint32(o.V(5))}}

	single := Recover(context.Background(), o, targets, 1)
	parallel := Recover(context.Background(), o, targets, 8)
	assert.Equal(t, single, parallel)
	assert.Equal(t, uint32(5), single[0])
}
