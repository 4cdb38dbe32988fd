// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import (
	"context"

	"github.com/dblokhin/cuckatoo-solver/cuckoo"
	"github.com/sirupsen/logrus"
)

// nonce 0 is excluded from the enumerated range. The source this solver is
// based on used 0 as an implicit "empty slot" sentinel in fixed-size
// flushes without ever documenting the choice (§9's open question); this
// port's Arena tracks occupancy with an atomic counter instead of a
// sentinel value, so it has no technical need for one — but it keeps the
// exclusion anyway so a proof can never legitimately contain nonce 0,
// removing the ambiguity entirely rather than resolving it implicitly.
const minNonce = 1

// Seed enumerates every nonce in [offset, offset+count), computes its
// side-0 endpoint, and scatters it into dst by the high BuckBits bits of
// that endpoint (§4.3). It returns the number of nonces successfully
// placed (dst's total after the pass). Nonces lost to bucket overflow are
// not counted separately.
func Seed(ctx context.Context, o *cuckoo.Oracle, p Params, offset, count uint64, dst *Arena, obs Observer) int {
	if obs == nil {
		obs = nopObserver
	}

	zBits := p.ZBits()

	lo := offset
	if lo < minNonce {
		lo = minNonce
	}
	hi := offset + count

	if hi <= lo {
		obs(0, "seed", 0)
		return 0
	}

	shards := p.NB()
	if shards == 0 {
		shards = 1
	}
	shardSize := (hi - lo + uint64(shards) - 1) / uint64(shards)

	forEachBucket(ctx, shards, p.Workers, func(s int) {
		start := lo + uint64(s)*shardSize
		end := start + shardSize
		if end > hi {
			end = hi
		}

		for n := start; n < end; n++ {
			u := o.U(n)
			b := int(u >> zBits)
			dst.Append(b, Edge{Nonce: uint32(n)})
		}
	})

	total := dst.Total()
	logrus.WithFields(logrus.Fields{
		"offset": offset,
		"count":  count,
		"seeded": total,
	}).Debug("trim: seed complete")

	obs(0, "seed", total)
	return total
}
