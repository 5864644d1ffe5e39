package store

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottledOptions configures a Throttled store.
type ThrottledOptions struct {
	// BytesPerSec caps backing-medium throughput across reads and writes.
	// If 0, unlimited.
	BytesPerSec int64

	// MaxInflight caps concurrent requests against the inner store.
	// If 0, defaults to 1.
	MaxInflight int64
}

// Throttled wraps a Store with an IO byte-rate limit and a cap on
// concurrent requests. It shields slow media (SD cards, object storage)
// from bursts of cache misses and write-backs.
type Throttled struct {
	inner   Store
	reqSem  *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited
}

// NewThrottled creates a throttling wrapper around inner.
func NewThrottled(inner Store, optFns ...func(*ThrottledOptions)) *Throttled {
	opts := ThrottledOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxInflight <= 0 {
		opts.MaxInflight = 1
	}

	t := &Throttled{
		inner:  inner,
		reqSem: semaphore.NewWeighted(opts.MaxInflight),
	}
	if opts.BytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(opts.BytesPerSec), int(opts.BytesPerSec))
	}
	return t
}

func (t *Throttled) admit(ctx context.Context, bytes int) (release func(), err error) {
	if err := t.reqSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if t.limiter != nil {
		if err := t.limiter.WaitN(ctx, bytes); err != nil {
			t.reqSem.Release(1)
			return nil, err
		}
	}
	return func() { t.reqSem.Release(1) }, nil
}

// ReadObject reads through the inner store, subject to the limits.
func (t *Throttled) ReadObject(ctx context.Context, group, key uint32, buf []byte) error {
	release, err := t.admit(ctx, len(buf))
	if err != nil {
		return err
	}
	defer release()

	return t.inner.ReadObject(ctx, group, key, buf)
}

// WriteObject writes through the inner store, subject to the limits.
func (t *Throttled) WriteObject(ctx context.Context, group, key uint32, buf []byte) error {
	release, err := t.admit(ctx, len(buf))
	if err != nil {
		return err
	}
	defer release()

	return t.inner.WriteObject(ctx, group, key, buf)
}
