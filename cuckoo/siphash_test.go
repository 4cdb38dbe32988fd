// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These vectors exercise the raw siphash-2-4 round schedule directly
// (bypassing Blake2b key derivation), so they hold regardless of how Keys
// get derived. siphash24 takes unmixed Keys and XORs the IV constants in
// at newHasher time, so a vector must be computed against that contract —
// reusing constants generated for an implementation that takes an
// already-IV-mixed state would silently test the wrong function.
func TestSipHash24Vectors(t *testing.T) {
	cases := []struct {
		k     Keys
		nonce uint64
		want  uint64
	}{
		{Keys{1, 2, 3, 4}, 10, 7036194869107029132},
		{Keys{1, 2, 3, 4}, 111, 10075912092061234855},
		{Keys{9, 7, 6, 7}, 12, 975581433126006282},
		{Keys{9, 7, 6, 7}, 10, 10277473598919935025},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, siphash24(c.k, c.nonce))
	}
}

func TestSipHashBlockMatchesSingle(t *testing.T) {
	k := Keys{0x23796193872092ea, 0xf1017d8a68c4b745, 0xd312bd53d2cd307b, 0x840acce5833ddc52}

	for _, n := range []uint64{0, 1, 63, 64, 65, 127, 128, 1 << 20} {
		assert.Equal(t, siphash24(k, n), siphashBlock(k, n), "nonce %d", n)
	}
}

func TestDeriveKeysDeterministic(t *testing.T) {
	header := make([]byte, 80)
	a := DeriveKeys(header)
	b := DeriveKeys(header)
	assert.Equal(t, a, b)

	header[79] = 1
	c := DeriveKeys(header)
	assert.NotEqual(t, a, c)
}

func TestMutateHeader(t *testing.T) {
	header := make([]byte, 80)
	MutateHeader(header, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, header[76:80])
}
