package objcache

import "errors"

var (
	// ErrHashSize is returned when the configured hash slot count is not a
	// power of two.
	ErrHashSize = errors.New("objcache: hash slots must be a power of two")

	// ErrTooManyObjects is returned when the object count exceeds the hash
	// slot count, which would allow a load factor above one.
	ErrTooManyObjects = errors.New("objcache: object count exceeds hash slots")

	// ErrNoObjects is returned when the configured object count is not
	// positive.
	ErrNoObjects = errors.New("objcache: object count must be positive")

	// ErrBufferSize is returned when the configured buffer size is not
	// positive.
	ErrBufferSize = errors.New("objcache: buffer size must be positive")

	// ErrNilStore is returned when no backing store is configured.
	ErrNilStore = errors.New("objcache: store must not be nil")

	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("objcache: cache is closed")

	// ErrUnnamedObject is returned when a read-through or write-back is
	// attempted on an anonymous buffer, which has no backing identity.
	ErrUnnamedObject = errors.New("objcache: operation requires a named object")
)

// assert panics on violated programming contracts: the invariants the
// cache relies on internally and the release preconditions callers must
// honor.
func assert(cond bool, msg string) {
	if !cond {
		panic("objcache: " + msg)
	}
}
