package objcache

import (
	"sync/atomic"
	"time"
)

// ReleaseKind classifies what Release did with an object.
type ReleaseKind uint8

const (
	// ReleaseNormal returned the object to the LRU head.
	ReleaseNormal ReleaseKind = iota
	// ReleaseHandoff handed the object directly to a waiting goroutine.
	ReleaseHandoff
	// ReleaseInvalidated discarded the object's identity after an error.
	ReleaseInvalidated
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordGet is called after each Get or GetAndRead acquisition.
	// duration includes any time spent blocked; hit reports whether the
	// identity was already cached; err is nil if successful.
	RecordGet(duration time.Duration, hit bool, err error)

	// RecordRelease is called after each Release.
	RecordRelease(kind ReleaseKind)

	// RecordRead is called after each backing-store read issued by
	// GetAndRead.
	RecordRead(duration time.Duration, err error)

	// RecordWriteBack is called after each backing-store write issued by
	// WriteBack.
	RecordWriteBack(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGet(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordRelease(ReleaseKind)            {}
func (NoopMetricsCollector) RecordRead(time.Duration, error)      {}
func (NoopMetricsCollector) RecordWriteBack(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GetCount      atomic.Int64
	GetErrors     atomic.Int64
	GetHits       atomic.Int64
	GetTotalNanos atomic.Int64

	ReleaseNormalCount      atomic.Int64
	ReleaseHandoffCount     atomic.Int64
	ReleaseInvalidatedCount atomic.Int64

	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	ReadTotalNanos atomic.Int64

	WriteBackCount      atomic.Int64
	WriteBackErrors     atomic.Int64
	WriteBackTotalNanos atomic.Int64
}

func (b *BasicMetricsCollector) RecordGet(d time.Duration, hit bool, err error) {
	b.GetCount.Add(1)
	b.GetTotalNanos.Add(int64(d))
	if hit {
		b.GetHits.Add(1)
	}
	if err != nil {
		b.GetErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordRelease(kind ReleaseKind) {
	switch kind {
	case ReleaseHandoff:
		b.ReleaseHandoffCount.Add(1)
	case ReleaseInvalidated:
		b.ReleaseInvalidatedCount.Add(1)
	default:
		b.ReleaseNormalCount.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordRead(d time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(int64(d))
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordWriteBack(d time.Duration, err error) {
	b.WriteBackCount.Add(1)
	b.WriteBackTotalNanos.Add(int64(d))
	if err != nil {
		b.WriteBackErrors.Add(1)
	}
}
