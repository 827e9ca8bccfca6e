// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// SPMC is a single-producer multi-consumer queue on a [Buffer].
//
// The single producer writes sequentially and is the buffer's only writer.
// Consumers read the slot at head with the tag-checked [Buffer.Read] and
// then CAS head forward. A consumer whose CAS fails, or whose slot was
// already recycled by the producer, drops the copy it made and reports
// Retry; the value stays owned by whichever consumer won.
//
// Bounded queues return ErrWouldBlock when full. Unbounded queues double
// their buffer when full and halve it, down to the initial capacity, when
// found at most a quarter full at the start of a lap.
//
// Memory: O(capacity), one tag word per slot
type SPMC[T any] struct {
	_          cpu.CacheLinePad
	head       atomix.Uint64 // Consumers CAS here
	_          cpu.CacheLinePad
	tail       atomix.Uint64 // Producer writes here
	_          cpu.CacheLinePad
	cachedHead uint64 // Producer's cached view of head
	_          cpu.CacheLinePad
	buffer     atomic.Pointer[Buffer[T]]
	floor      uint64
	unbounded  bool
}

// NewSPMC creates a bounded SPMC queue.
// Capacity rounds up to the next power of 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	return newSPMC[T](capacity, false)
}

// NewSPMCUnbounded creates an SPMC queue that grows on demand.
// The initial capacity rounds up to the next power of 2 and is also the
// smallest capacity the queue shrinks back to.
func NewSPMCUnbounded[T any](capacity int) *SPMC[T] {
	return newSPMC[T](capacity, true)
}

func newSPMC[T any](capacity int, unbounded bool) *SPMC[T] {
	if capacity < 2 {
		panic("circbuf: capacity must be >= 2")
	}

	n := roundToPow2(capacity)
	q := &SPMC[T]{
		floor:     uint64(n),
		unbounded: unbounded,
	}
	q.buffer.Store(NewBuffer[T](n))
	return q
}

// Enqueue adds an element to the queue (single producer only).
// Returns ErrWouldBlock if a bounded queue is full.
func (q *SPMC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	buf := q.buffer.Load()

	if q.unbounded {
		if resizeDue(buf.capacity, tail, q.cachedHead) {
			q.cachedHead = q.head.LoadAcquire()
			if n := resizeTarget(buf.capacity, q.floor, tail-q.cachedHead); n != 0 {
				buf = migrate(buf, q.cachedHead, tail, int(n))
				q.buffer.Store(buf)
			}
		}
	} else if tail-q.cachedHead >= buf.capacity {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead >= buf.capacity {
			return ErrWouldBlock
		}
	}

	buf.Write(tail, *elem)
	q.tail.StoreRelease(tail + 1)
	return nil
}

// TryDequeue makes one attempt to remove an element (multiple consumers
// safe). Returns Data, Empty, or Retry when another consumer got there
// first.
func (q *SPMC[T]) TryDequeue() TryRecv[T] {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()
	if head >= tail {
		return Empty[T]()
	}

	// A miss means head is stale: the slot was consumed and recycled, or
	// the buffer was replaced and no longer holds this position.
	elem, ok := q.buffer.Load().Read(head)
	if !ok {
		return Retry[T]()
	}
	if !q.head.CompareAndSwapAcqRel(head, head+1) {
		return Retry[T]()
	}
	return Data(elem)
}

// Dequeue removes and returns an element (multiple consumers safe).
// Lost races are retried. Returns (zero-value, ErrWouldBlock) if the
// queue is empty.
func (q *SPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		r := q.TryDequeue()
		if !r.IsRetry() {
			return r.value, r.Err()
		}
		sw.Once()
	}
}

// Release hands every value still queued to fn, oldest first, and
// releases the buffer. fn may be nil. Returns the number of values.
// No goroutine may use the queue during or after Release.
func (q *SPMC[T]) Release(fn func(T)) int {
	return release(q.buffer.Load(), &q.head, q.tail.LoadAcquire(), fn)
}

// Cap returns the current capacity.
// For unbounded queues it changes as the buffer grows and shrinks.
func (q *SPMC[T]) Cap() int {
	return q.buffer.Load().Cap()
}
