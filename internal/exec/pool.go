// Package exec implements the engine's parallel execution strategy: a
// chunked fan-out over a bounded worker count, collecting the first error
// across all chunks. The lifecycle echoes the teacher's cluster worker
// (cluster/worker.go starts a fixed set of goroutines and waits for them to
// either finish or report an error) but without any of the gRPC
// registration or network listening — this pool never leaves the process.
package exec

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ChunkFunc processes the half-open element range [start, end) of some
// Series or DataFrame buffer and reports an error for that chunk, if any.
type ChunkFunc func(start, end int) error

// Run splits [0, n) into at most maxWorkers contiguous chunks and invokes fn
// on each concurrently via errgroup, waits for every chunk to finish, and
// returns the first chunk error; a failing chunk does not stop the others.
// n <= 0 returns nil without calling fn; maxWorkers <= 1 or n == 1 runs fn
// inline on the whole range, skipping goroutine setup entirely.
func Run(n, maxWorkers int, fn ChunkFunc) error {
	if n <= 0 {
		return nil
	}
	if maxWorkers <= 1 || n == 1 {
		return fn(0, n)
	}

	chunks := maxWorkers
	if chunks > n {
		chunks = n
	}
	chunkSize := (n + chunks - 1) / chunks

	g, _ := errgroup.WithContext(context.Background())
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
