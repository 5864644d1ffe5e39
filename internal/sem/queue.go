package sem

import (
	"container/list"
	"context"
	"sync"
)

// Queue is a bare FIFO park/unpark queue with no counter. A wakeup is a
// hint, not a grant: the woken goroutine re-acquires the mutex and must
// revalidate whatever condition it was waiting for. Like Sem, all methods
// run under one external mutex and Wait drops it only while parked.
type Queue struct {
	waiters list.List // of chan struct{}, buffered 1
}

// Len returns the number of parked goroutines.
func (q *Queue) Len() int {
	return q.waiters.Len()
}

// Wait parks the caller at the queue tail until woken or the context is
// cancelled. mu must be held on entry and is held again on return.
//
// When a wakeup races the cancellation the hint is passed on to the next
// waiter so it is never lost.
func (q *Queue) Wait(ctx context.Context, mu *sync.Mutex) error {
	ch := make(chan struct{}, 1)
	elem := q.waiters.PushBack(ch)
	mu.Unlock()

	select {
	case <-ch:
		mu.Lock()
		return nil
	case <-ctx.Done():
		mu.Lock()
		select {
		case <-ch:
			q.WakeOne()
		default:
			q.waiters.Remove(elem)
		}
		return ctx.Err()
	}
}

// WakeOne unparks the oldest waiter, if any.
func (q *Queue) WakeOne() {
	front := q.waiters.Front()
	if front == nil {
		return
	}
	front.Value.(chan struct{}) <- struct{}{}
	q.waiters.Remove(front)
}

// WakeAll unparks every waiter.
func (q *Queue) WakeAll() {
	for q.waiters.Len() > 0 {
		q.WakeOne()
	}
}
