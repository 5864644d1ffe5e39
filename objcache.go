package objcache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/objcache/internal/ring"
	"github.com/hupe1980/objcache/internal/sem"
	"github.com/hupe1980/objcache/store"
)

// Config holds the fixed shape of a cache, supplied once at construction.
type Config struct {
	// HashSlots is the hash table size. Must be a power of two and at
	// least Objects, which keeps the load factor at or below one and the
	// hash a cheap mask.
	HashSlots int

	// Objects is the number of cache records. Fixed for the cache
	// lifetime; a miss under full occupancy blocks instead of allocating.
	Objects int

	// BufferSize is the payload size of every object, in bytes.
	BufferSize int

	// Store is the backing medium accessed by GetAndRead and WriteBack.
	Store store.Store
}

// Cache is a fixed-capacity pool of buffers caching objects identified by
// a (group, key) pair, backed by a slow medium reached through Config.Store.
//
// At most one goroutine owns an object at a time. Get hands out ownership,
// Release returns it; a releaser hands an object directly to the oldest
// goroutine already waiting for that exact identity. Unowned objects sit
// in an LRU list that doubles as the free pool: the least recently
// released object is recycled first when a miss needs a buffer.
type Cache struct {
	mu sync.Mutex

	objects []Object
	hash    *ring.Lists // object records threaded through HashSlots bucket lists
	lru     *ring.Lists // the same records threaded through the single LRU list
	lruHead int32
	mask    uint32

	// freeCount equals the LRU list length at all times; it gates
	// admission of cache misses. freeq parks missing goroutines FIFO.
	freeCount int
	freeq     sem.Queue

	closed bool

	st      store.Store
	logger  *Logger
	metrics MetricsCollector

	hits          atomic.Int64
	misses        atomic.Int64
	evictions     atomic.Int64
	handoffs      atomic.Int64
	invalidations atomic.Int64
}

// New creates a cache with all objects free and unnamed.
func New(cfg Config, optFns ...Option) (*Cache, error) {
	opts := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if cfg.Objects <= 0 {
		return nil, ErrNoObjects
	}
	if cfg.HashSlots <= 0 || cfg.HashSlots&(cfg.HashSlots-1) != 0 {
		return nil, ErrHashSize
	}
	if cfg.HashSlots < cfg.Objects {
		return nil, ErrTooManyObjects
	}
	if cfg.BufferSize <= 0 {
		return nil, ErrBufferSize
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}

	c := &Cache{
		objects: make([]Object, cfg.Objects),
		hash:    ring.New(cfg.Objects, cfg.HashSlots),
		lru:     ring.New(cfg.Objects, 1),
		mask:    uint32(cfg.HashSlots - 1),
		st:      cfg.Store,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
	c.lruHead = c.lru.Sentinel(0)

	for i := range c.objects {
		obj := &c.objects[i]
		obj.cache = c
		obj.index = int32(i)
		obj.Data = make([]byte, cfg.BufferSize)
		obj.flags = FlagInLRU
		obj.sem.Init(1)
		c.lru.PushFront(c.lruHead, obj.index)
	}
	c.freeCount = cfg.Objects

	return c, nil
}

func (c *Cache) bucket(group, key uint32) int32 {
	return c.hash.Sentinel(int((group + key) & c.mask))
}

// lookup scans the bucket's collision list for an exact identity match.
// Must be called with c.mu held.
func (c *Cache) lookup(group, key uint32) *Object {
	s := c.bucket(group, key)
	for id := c.hash.Next(s); id != s; id = c.hash.Next(id) {
		obj := &c.objects[id]
		if obj.key == key && obj.group == group {
			return obj
		}
	}
	return nil
}

// takeTail evicts the object at the LRU tail: detaches it from the LRU and,
// if it cached an identity, from the hash index, acquires its semaphore and
// returns it unnamed with cleared flags. Must be called with c.mu held and
// the LRU non-empty.
func (c *Cache) takeTail() *Object {
	id := c.lru.Back(c.lruHead)
	assert(id >= 0, "LRU empty with free objects accounted")
	obj := &c.objects[id]

	assert(obj.has(FlagInLRU), "LRU object not flagged in LRU")
	assert(obj.sem.Count() == 1, "free object semaphore counter not 1")

	c.lru.Remove(obj.index)
	c.freeCount--
	obj.sem.TryWait()

	if obj.has(FlagInHash) {
		c.hash.Remove(obj.index)
		c.evictions.Add(1)
		c.logger.Debug("object evicted", "group", obj.group, "key", obj.key)
	}
	obj.group = NoGroup
	obj.key = 0
	obj.flags = 0
	return obj
}

// Get retrieves the object identified by (group, key), blocking until it
// can be owned exclusively. On a cache hit the returned object reports
// Valid() true and its previous contents. On a miss the least recently
// released free object is recycled under the new identity and returned
// with Valid() false; the caller must populate Data (or use GetAndRead).
//
// group NoGroup requests an anonymous scratch buffer: the call returns the
// next eviction candidate un-named and invalid, without touching the hash
// index. Anonymous buffers cache nothing and are first in line for reuse
// after Release.
//
// Get blocks while the requested object is owned by another goroutine or,
// on a miss, while no free object exists. Waiters are served oldest-first.
// Cancelling ctx abandons the wait; a wakeup that races the cancellation
// is never lost.
func (c *Cache) Get(ctx context.Context, group, key uint32) (*Object, error) {
	start := time.Now()
	obj, hit, err := c.get(ctx, group, key)
	c.metrics.RecordGet(time.Since(start), hit, err)
	if err != nil {
		return nil, err
	}
	if hit {
		c.hits.Add(1)
	} else if group != NoGroup {
		c.misses.Add(1)
	}
	return obj, nil
}

func (c *Cache) get(ctx context.Context, group, key uint32) (*Object, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// hinted is true while this goroutine holds an unconsumed free-object
	// wakeup. A hint that will not be settled by taking a free object must
	// be passed on, or a parked miss could starve next to a free buffer.
	hinted := false

	// Retry loop, re-entered after every blocking wait: any state observed
	// before parking may be stale afterwards.
	for {
		if c.closed {
			return nil, false, ErrClosed
		}

		if group == NoGroup {
			// Anonymous buffer: any free object will do.
			if c.freeCount == 0 {
				if err := c.freeq.Wait(ctx, &c.mu); err != nil {
					return nil, false, err
				}
				hinted = true
				continue
			}
			return c.takeTail(), false, nil
		}

		if obj := c.lookup(group, key); obj != nil {
			if obj.sem.Count() > 0 {
				// Hit on a free object: promote it out of the LRU.
				assert(obj.has(FlagInLRU), "free cached object not in LRU")

				c.lru.Remove(obj.index)
				c.freeCount--
				obj.flags &^= FlagInLRU

				// No waiters possible on a positive counter.
				obj.sem.TryWait()
				return obj, true, nil
			}

			// Hit on an owned object: queue on its semaphore. A normal
			// signal hands ownership over directly; a reset means the
			// object was invalidated while we waited and granted nothing.
			assert(!obj.has(FlagInLRU), "owned object in LRU")

			if hinted {
				// The free object that woke us goes to the next miss.
				c.freeq.WakeOne()
				hinted = false
			}

			st, err := obj.sem.Wait(ctx, &c.mu)
			if err != nil {
				return nil, false, err
			}
			if st == sem.Signaled {
				return obj, true, nil
			}
			continue
		}

		// Miss: admission is gated by the free counter. The wakeup is a
		// hint only; by the time we run again the identity may have been
		// cached by somebody else or the freed object taken, so revalidate
		// from the top.
		if c.freeCount == 0 {
			if err := c.freeq.Wait(ctx, &c.mu); err != nil {
				return nil, false, err
			}
			hinted = true
			continue
		}

		obj := c.takeTail()
		obj.group = group
		obj.key = key
		obj.flags |= FlagInHash
		c.hash.PushFront(c.bucket(group, key), obj.index)
		return obj, false, nil
	}
}

// Release returns an owned object to the cache. It never blocks.
//
// The caller must have set FlagError (via MarkError) if the object's
// contents are unusable and must have flushed or accepted the loss of a
// modified buffer; Release itself never touches the backing store.
//
//   - Error: the object is invalidated. It loses its identity, any
//     goroutines waiting for it are woken empty-handed to retry, and it is
//     queued at the LRU tail as the next eviction candidate.
//   - Waiters queued: ownership passes directly to the oldest waiter; the
//     object never enters the LRU.
//   - Otherwise: the object returns to the LRU head, keeping its identity
//     and contents for future hits.
//
// Releasing an object that is not currently owned is a contract violation
// and panics.
func (c *Cache) Release(obj *Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	assert(!obj.has(FlagInLRU), "release of object in LRU")
	assert(obj.sem.Count() <= 0, "release of unowned object")

	switch {
	case obj.has(FlagError):
		// Invalidate: discard the identity and make the buffer the next
		// eviction candidate. Queued waiters retry and will miss.
		c.logger.Debug("object invalidated", "group", obj.group, "key", obj.key)

		if obj.has(FlagInHash) {
			c.hash.Remove(obj.index)
		}
		obj.group = NoGroup
		obj.key = 0
		obj.flags = FlagInLRU
		obj.sem.ResetTo(1)
		c.lru.PushBack(c.lruHead, obj.index)
		c.freeCount++
		c.freeq.WakeOne()
		c.invalidations.Add(1)
		c.metrics.RecordRelease(ReleaseInvalidated)

	case obj.sem.Count() < 0:
		// Somebody is waiting for this exact identity: hand the object
		// over directly, bypassing the LRU.
		obj.sem.Signal()
		c.handoffs.Add(1)
		c.metrics.RecordRelease(ReleaseHandoff)

	default:
		// Back into the LRU. A named object keeps its identity and now
		// holds valid contents; an anonymous buffer caches nothing and
		// goes to the tail instead.
		if obj.has(FlagInHash) {
			obj.flags |= FlagCacheHit
			c.lru.PushFront(c.lruHead, obj.index)
		} else {
			c.lru.PushBack(c.lruHead, obj.index)
		}
		obj.flags |= FlagInLRU
		obj.sem.Signal()
		c.freeCount++
		c.freeq.WakeOne()
		c.metrics.RecordRelease(ReleaseNormal)
	}
}

// GetAndRead retrieves the object identified by (group, key) and, when its
// contents are not already valid, populates Data through the backing
// store. On a read failure the object is invalidated and released before
// the error is returned.
func (c *Cache) GetAndRead(ctx context.Context, group, key uint32) (*Object, error) {
	if group == NoGroup {
		return nil, ErrUnnamedObject
	}

	obj, err := c.Get(ctx, group, key)
	if err != nil {
		return nil, err
	}
	if obj.Valid() {
		return obj, nil
	}

	start := time.Now()
	err = c.st.ReadObject(ctx, group, key, obj.Data)
	c.metrics.RecordRead(time.Since(start), err)
	if err != nil {
		obj.MarkError()
		c.Release(obj)
		return nil, fmt.Errorf("objcache: read group=%d key=%d: %w", group, key, err)
	}
	obj.MarkValid()
	return obj, nil
}

// WriteBack flushes an owned modified object to the backing store and
// clears FlagModified. Objects that are not modified are left alone. On a
// write failure FlagError is set, so a subsequent Release invalidates the
// object, and the error is returned; the caller still owns the object.
func (c *Cache) WriteBack(ctx context.Context, obj *Object) error {
	c.mu.Lock()
	assert(obj.sem.Count() <= 0, "write-back of unowned object")
	named := obj.has(FlagInHash)
	modified := obj.has(FlagModified)
	group, key := obj.group, obj.key
	c.mu.Unlock()

	if !named {
		return ErrUnnamedObject
	}
	if !modified {
		return nil
	}

	start := time.Now()
	err := c.st.WriteObject(ctx, group, key, obj.Data)
	c.metrics.RecordWriteBack(time.Since(start), err)
	if err != nil {
		obj.MarkError()
		return fmt.Errorf("objcache: write group=%d key=%d: %w", group, key, err)
	}
	obj.clear(FlagModified)
	return nil
}

// Close marks the cache closed and unblocks every waiting Get with
// ErrClosed. Objects already owned stay valid and may still be released;
// new Gets fail. Close does not flush modified objects.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.freeq.WakeAll()
	for i := range c.objects {
		obj := &c.objects[i]
		if obj.sem.Count() < 0 {
			// Owned with waiters: wake them empty-handed, leaving the
			// object owned by its current holder.
			obj.sem.ResetTo(0)
		}
	}
	return nil
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits          int64
	Misses        int64
	Evictions     int64
	Handoffs      int64
	Invalidations int64
	Free          int
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	free := c.freeCount
	c.mu.Unlock()

	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Evictions:     c.evictions.Load(),
		Handoffs:      c.handoffs.Load(),
		Invalidations: c.invalidations.Load(),
		Free:          free,
	}
}
