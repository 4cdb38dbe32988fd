// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package trim

import (
	"context"
	"runtime"
	"sync"
)

// forEachBucket maps one worker group per bucket onto one goroutine per
// bucket, bounded by workers concurrent in flight at a time — the
// goroutine-pool substitute §5 explicitly allows in place of a literal
// GPU worker-group launch. The semaphore-channel shape mirrors the
// connection pool in the original p2p syncer.
//
// fn is called once per bucket index in [0, nb). Once ctx is done,
// forEachBucket starts no further buckets (and started goroutines that
// have not yet entered fn skip it); it waits for buckets already inside fn
// to finish and then returns, so a caller polling for cancellation at pass
// boundaries (§5) sees a prompt return.
func forEachBucket(ctx context.Context, nb int, workers int, fn func(b int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nb {
		workers = nb
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for b := 0; b < nb; b++ {
		if ctx.Err() != nil {
			break
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return
		}

		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			fn(b)
		}(b)
	}

	wg.Wait()
}
