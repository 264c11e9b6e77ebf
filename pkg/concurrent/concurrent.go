package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Concurrent runs action for each element of items in a separate goroutine.
// It waits for all goroutines to finish and returns the first error encountered.
func Concurrent[T any](items []T, action func(T) error) error {
	errGroup := errgroup.Group{}
	for _, value := range items {
		errGroup.Go(func() error {
			return action(value)
		})
	}
	return errGroup.Wait()
}

// Chunks splits [0, n) into at most chunks contiguous ranges and runs fn for
// each range in its own goroutine. fn must only read shared state or write
// to memory owned by its range. The context passed to fn is cancelled on the
// first error.
func Chunks(ctx context.Context, n, chunks int, fn func(ctx context.Context, chunk, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if chunks < 1 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	errGroup, ctx := errgroup.WithContext(ctx)
	for c := 0; c < chunks; c++ {
		lo := c * size
		hi := min(lo+size, n)
		if lo >= hi {
			break
		}
		errGroup.Go(func() error {
			return fn(ctx, c, lo, hi)
		})
	}
	return errGroup.Wait()
}

// CollectChunks runs collect over [0, n) in chunks and concatenates the
// per-chunk results in chunk order, so the output order does not depend on
// goroutine scheduling. If release is not nil it receives every per-chunk
// result once it has been copied out.
func CollectChunks[R any](ctx context.Context, n, chunks int, collect func(lo, hi int) []R, release func([]R)) ([]R, error) {
	if chunks < 1 {
		chunks = 1
	}
	parts := make([][]R, min(chunks, max(n, 1)))
	err := Chunks(ctx, n, chunks, func(ctx context.Context, chunk, lo, hi int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		parts[chunk] = collect(lo, hi)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]R, 0, total)
	for _, p := range parts {
		out = append(out, p...)
		if release != nil && p != nil {
			release(p)
		}
	}
	return out, nil
}
