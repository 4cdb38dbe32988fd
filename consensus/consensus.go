// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package consensus collects the numeric rules a header's proof-of-work
// must satisfy: proof size, minimum easiness, difficulty bookkeeping, and
// a short display fingerprint for logging.
package consensus

import "time"

const (
	// ProofSize is the default cycle length (L) a proof must have. Callers
	// building a config.Params may override it per network.
	ProofSize = 42

	// DefaultEdgeBits is the default N most networks mine at.
	DefaultEdgeBits uint = 29

	// Easiness is the default easiness percentage (§6): a nonce must be
	// strictly below size*Easiness/100 to be wire-valid.
	Easiness uint64 = 50

	// MedianTimeWindow is the number of blocks used to calculate the
	// block-time median at each end of the difficulty adjustment window.
	MedianTimeWindow = 11

	// DifficultyAdjustWindow is the number of blocks the difficulty
	// average is taken over.
	DifficultyAdjustWindow = 23

	// BlockTimeSec is the target block interval the difficulty retarget
	// tunes for.
	BlockTimeSec time.Duration = 60 * time.Second

	// BlockTimeWindow is the average timespan of DifficultyAdjustWindow
	// blocks at the target interval.
	BlockTimeWindow = time.Duration(DifficultyAdjustWindow) * BlockTimeSec

	// UpperTimeBound/LowerTimeBound clamp the observed window timespan
	// before it feeds the retarget, matching Digishield/GravityWave-style
	// damping.
	UpperTimeBound = BlockTimeWindow * 4 / 3
	LowerTimeBound = BlockTimeWindow * 5 / 6
)

// MAXTarget is the 8-byte big-endian value that is divided by a proof
// hash's leading 8 bytes to produce a Difficulty (§4.9, adapted from the
// teacher's 256-bit target convention).
var MAXTarget = []byte{0xf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
