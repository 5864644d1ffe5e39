// Package sem provides the blocking primitives of the object cache: a
// counting semaphore with FIFO handoff and reset (Sem) and a plain FIFO
// park queue (Queue).
//
// Both types are driven entirely under one external mutex, the cache's
// critical section. Parking enqueues the waiter before the mutex is
// released, so there is no window in which a signal can be lost between
// dropping the lock and suspending.
package sem
