// Package store defines the backing-medium contract consumed by the object
// cache and provides ready-made implementations.
//
// The cache itself never touches hardware or the network; it populates and
// flushes buffers exclusively through the Store interface supplied at
// initialization. This package ships:
//
//   - Memory: map-backed store for tests and examples
//   - File: single-file slot store with optional per-slot compression
//   - Throttled: wrapper adding an IO byte-rate limit and a concurrent
//     request cap to any inner Store
//
// S3-compatible stores live in the store/minio and store/s3 subpackages.
package store
