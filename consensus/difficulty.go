// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"encoding/binary"
	"sort"
	"time"
)

const (
	// ZeroDifficulty is the difficulty of nothing (an empty window).
	ZeroDifficulty Difficulty = 0

	// MinimumDifficulty is the floor NextDifficulty will never return
	// below.
	MinimumDifficulty Difficulty = 1
)

// Difficulty is the maximum target divided by a proof hash; a higher
// Difficulty means a harder-to-find proof.
type Difficulty uint64

// FromNum wraps a raw number as a Difficulty.
func (d Difficulty) FromNum(num uint64) Difficulty {
	return Difficulty(num)
}

// FromHash computes the difficulty implied by a 32-byte proof hash (§4.9):
// MAXTarget divided by the hash's leading 8 bytes.
func (d Difficulty) FromHash(hash []byte) Difficulty {
	maxTarget := binary.BigEndian.Uint64(MAXTarget)
	num := binary.BigEndian.Uint64(hash[:8])
	if num == 0 {
		return Difficulty(maxTarget)
	}
	return Difficulty(maxTarget / num)
}

// IntoNum unwraps the raw number.
func (d Difficulty) IntoNum() uint64 {
	return uint64(d)
}

// Sample is one past block's timestamp and difficulty — the minimal slice
// NextDifficulty needs, replacing the teacher's full BlockList (which
// carried an entire chain header this repo has no use for, §1's scope).
type Sample struct {
	Timestamp  time.Time
	Difficulty Difficulty
}

// NextDifficulty computes the proof-of-work difficulty the next header
// should comply with, given past samples from latest to oldest — the same
// Digishield/GravityWave-style retarget the teacher's chain used, kept
// unchanged in algorithm (§4.9).
func NextDifficulty(samples []Sample) Difficulty {
	blen := len(samples)
	if blen == 0 {
		return ZeroDifficulty
	}

	sumDiff := ZeroDifficulty
	var windowBegin, windowEnd []time.Time

	for i := blen - 1; i >= 0; i-- {
		if i < DifficultyAdjustWindow {
			sumDiff += samples[i].Difficulty
			if i < MedianTimeWindow {
				windowBegin = append(windowBegin, samples[i].Timestamp)
			}
		} else if i < DifficultyAdjustWindow+MedianTimeWindow {
			windowEnd = append(windowEnd, samples[i].Timestamp)
		}
	}

	if len(windowEnd) < MedianTimeWindow {
		return MinimumDifficulty
	}

	sort.SliceStable(windowBegin, func(i, j int) bool { return windowBegin[i].Before(windowBegin[j]) })
	sort.SliceStable(windowEnd, func(i, j int) bool { return windowEnd[i].Before(windowEnd[j]) })

	beginTime := windowBegin[len(windowBegin)/2]
	endTime := windowEnd[len(windowEnd)/2]

	diffAvg := sumDiff / MinimumDifficulty.FromNum(uint64(DifficultyAdjustWindow))
	ts := (3*BlockTimeWindow + beginTime.Sub(endTime)) / 4

	if ts < LowerTimeBound {
		ts = LowerTimeBound
	}
	if ts > UpperTimeBound {
		ts = UpperTimeBound
	}

	diff := diffAvg * MinimumDifficulty.FromNum(uint64(BlockTimeWindow)) / MinimumDifficulty.FromNum(uint64(ts))
	if diff > MinimumDifficulty {
		return diff
	}
	return MinimumDifficulty
}
