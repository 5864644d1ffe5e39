package store

import (
	"context"
	"os"
)

// ErrNotFound is returned when the backing medium holds no payload for the
// requested identity.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store moves fixed-size object payloads between the cache and a slow
// backing medium (disk, flash, object storage). Payloads are addressed by
// the cache identity pair (group, key).
//
// ReadObject fills buf with the payload stored under the identity; every
// call receives a buffer of the cache's configured buffer size. WriteObject
// persists buf under the identity, overwriting any previous payload. Both
// may block and must honor ctx cancellation.
//
// Implementations must be safe for concurrent use: the cache invokes them
// outside of its critical section, from many goroutines at once.
type Store interface {
	ReadObject(ctx context.Context, group, key uint32, buf []byte) error
	WriteObject(ctx context.Context, group, key uint32, buf []byte) error
}
