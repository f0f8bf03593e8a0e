// Package dataflow builds small typed channel pipelines with bounded workers
// and per-item retries.
package dataflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Stream is a read-only channel of items.
type Stream[T any] <-chan T

// From creates a stream from a slice of data.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// Map transforms the stream using fn. Items whose fn keeps failing are
// dropped after the error handler has seen them.
func Map[In, Out any](ctx context.Context, input Stream[In], fn func(In) (Out, error), opts ...Option) Stream[Out] {
	cfg := apply(opts)
	out := make(chan Out, cfg.bufferSize)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}

				var res Out
				err := attempt(ctx, cfg, func() error {
					var err error
					res, err = fn(msg)
					return err
				})
				if err != nil {
					if cfg.errorHandler != nil {
						cfg.errorHandler(err)
					}
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

var errSkip = errors.New("skip item")

// Filter keeps items where fn returns true.
func Filter[T any](ctx context.Context, input Stream[T], fn func(T) bool, opts ...Option) Stream[T] {
	return Map(ctx, input, func(msg T) (T, error) {
		if fn(msg) {
			return msg, nil
		}
		var zero T
		return zero, errSkip
	}, append(opts, WithRetry(0, nil), WithErrorHandler(func(err error) bool {
		return errors.Is(err, errSkip)
	}))...)
}

// ForEach executes fn for every item in the stream and blocks until the
// stream is exhausted or ctx is done. It returns the first unhandled error.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(T) error, opts ...Option) error {
	cfg := apply(opts)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				err := attempt(ctx, cfg, func() error { return fn(msg) })
				if err == nil {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() { firstErr = err })
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

// Collect drains the stream into a slice.
func Collect[T any](ctx context.Context, input Stream[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, input, func(v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// attempt runs fn once plus the configured retries.
func attempt(ctx context.Context, cfg *config, fn func() error) error {
	err := fn()
	for i := 1; err != nil && i <= cfg.maxRetries; i++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(i)):
			}
		}
		err = fn()
	}
	return err
}
