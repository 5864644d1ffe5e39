package objcache

import "github.com/hupe1980/objcache/internal/sem"

// NoGroup is the reserved group identifier requesting an anonymous scratch
// buffer instead of a named cached object (see Cache.Get).
const NoGroup uint32 = 0

// Flags is the state bit set of an object record.
type Flags uint8

const (
	// FlagInLRU marks membership in the LRU/free list.
	FlagInLRU Flags = 1 << iota
	// FlagInHash marks that the object is indexed under its identity.
	FlagInHash
	// FlagCacheHit marks that Data holds valid contents from a prior
	// population.
	FlagCacheHit
	// FlagError marks that the last backing-store operation on the object
	// failed; Release will invalidate it.
	FlagError
	// FlagModified marks Data as dirty, needing a write-back before the
	// contents may be discarded.
	FlagModified
)

// Object is one cache record: an identity, a state bit set, a fixed-size
// data buffer and the synchronization state enforcing single ownership.
//
// Between a successful Get and the matching Release the calling goroutine
// owns the object exclusively: Data is its to read and write, nobody
// else's. All other fields belong to the cache; the flag accessors below
// take the cache lock and may be called by the owner at any time.
type Object struct {
	// Data is the object's payload buffer. Owned by the holder between
	// Get and Release. Its length is the cache's configured buffer size.
	Data []byte

	group uint32
	key   uint32
	flags Flags

	index int32 // position in the object table, stable for the cache lifetime
	cache *Cache

	sem sem.Sem // ownership: >0 free, 0 owned, <0 owned with -count waiters
}

// Group returns the object's group identifier, or NoGroup for an anonymous
// buffer. Stable while the object is owned.
func (o *Object) Group() uint32 {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	return o.group
}

// Key returns the object's key within its group. Stable while the object
// is owned.
func (o *Object) Key() uint32 {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	return o.key
}

// Valid reports whether Data holds valid contents. After a cache miss it
// is false and the holder must populate the buffer before use.
func (o *Object) Valid() bool { return o.is(FlagCacheHit) }

// Modified reports whether the object is flagged dirty.
func (o *Object) Modified() bool { return o.is(FlagModified) }

// MarkValid flags Data as holding valid contents. Call it after populating
// the buffer by hand; GetAndRead does it for you.
func (o *Object) MarkValid() { o.set(FlagCacheHit) }

// MarkModified flags Data as dirty. The cache never writes dirty buffers
// back on its own; flush explicitly with WriteBack.
func (o *Object) MarkModified() { o.set(FlagModified) }

// MarkError flags the last backing-store operation as failed. Release will
// invalidate the object: its identity is dropped and it becomes the next
// eviction candidate.
func (o *Object) MarkError() { o.set(FlagError) }

func (o *Object) is(f Flags) bool {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	return o.flags&f != 0
}

func (o *Object) set(f Flags) {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	o.flags |= f
}

func (o *Object) clear(f Flags) {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	o.flags &^= f
}

// has is the lock-free variant for code already inside the cache's
// critical section.
func (o *Object) has(f Flags) bool { return o.flags&f != 0 }
