package sem

import (
	"container/list"
	"context"
	"sync"
)

// Status is the outcome of a blocking Wait.
type Status int

const (
	// Signaled means the semaphore was signaled and ownership of whatever
	// it guards was handed directly to the waiter.
	Signaled Status = iota
	// Reset means the semaphore was reset while the caller waited; the
	// wait granted nothing and the caller must re-evaluate.
	Reset
)

// Sem is a counting semaphore with a FIFO wait queue and direct-handoff
// signaling. It carries no lock of its own: every method must be called
// with the same external mutex held, and Wait releases that mutex while
// parked and re-acquires it before returning. Waiters are enqueued before
// the mutex is dropped, so a signal issued under the mutex can never be
// lost.
//
// The counter follows the classic convention: > 0 available, 0 taken with
// no waiters, < 0 taken with -count waiters queued.
type Sem struct {
	count   int
	waiters list.List // of chan Status, buffered 1
}

// Init sets the counter and empties the wait queue.
func (s *Sem) Init(count int) {
	s.count = count
	s.waiters.Init()
}

// Count returns the current counter value.
func (s *Sem) Count() int {
	return s.count
}

// TryWait acquires without blocking. It returns false when the counter is
// not positive.
func (s *Sem) TryWait() bool {
	if s.count <= 0 {
		return false
	}
	s.count--
	return true
}

// Wait acquires the semaphore, parking the caller in FIFO order when the
// counter is not positive. mu must be held on entry and is held again on
// return, including the error return.
//
// A signal that races a context cancellation wins: the handoff has already
// happened and Wait reports it rather than dropping it.
func (s *Sem) Wait(ctx context.Context, mu *sync.Mutex) (Status, error) {
	s.count--
	if s.count >= 0 {
		return Signaled, nil
	}

	ch := make(chan Status, 1)
	elem := s.waiters.PushBack(ch)
	mu.Unlock()

	select {
	case st := <-ch:
		mu.Lock()
		return st, nil
	case <-ctx.Done():
		mu.Lock()
		select {
		case st := <-ch:
			// Already dequeued. A handoff is kept; a reset granted
			// nothing, so the cancellation stands.
			if st == Signaled {
				return Signaled, nil
			}
			return Reset, ctx.Err()
		default:
		}
		s.waiters.Remove(elem)
		s.count++
		return Reset, ctx.Err()
	}
}

// Signal releases the semaphore once. If waiters are queued the oldest one
// is woken and the release is handed to it directly.
func (s *Sem) Signal() {
	s.count++
	if s.count <= 0 {
		front := s.waiters.Front()
		front.Value.(chan Status) <- Signaled
		s.waiters.Remove(front)
	}
}

// ResetTo wakes every queued waiter with Reset and forces the counter to
// count. None of the woken waiters acquires anything.
func (s *Sem) ResetTo(count int) {
	for s.waiters.Len() > 0 {
		front := s.waiters.Front()
		front.Value.(chan Status) <- Reset
		s.waiters.Remove(front)
	}
	s.count = count
}
