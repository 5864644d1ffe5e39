// Package objcache implements a fixed-capacity cache of equally sized
// buffers identified by a (group, key) pair and backed by a slow medium.
//
// The cache never allocates after construction: a configured number of
// objects is created up front and recycled forever. Get hands an object to
// exactly one goroutine at a time; Release returns it. Unowned objects form
// an LRU list that doubles as the free pool, so a cache miss recycles the
// least recently released buffer under the new identity. Goroutines asking
// for an object that is currently owned queue on it and receive ownership
// directly from the releaser, oldest first.
//
// Backing media are pluggable through the store.Store interface; the store
// package ships in-memory, slotted-file, throttled, MinIO and S3
// implementations.
package objcache
