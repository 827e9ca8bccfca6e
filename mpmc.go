// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MPMC is a bounded multi-producer multi-consumer queue on a [Buffer].
//
// Producers CAS tail forward to claim a position and then write it, so
// every logical position still has exactly one writer. A producer only
// claims position t once head has passed t-capacity, i.e. once the
// consumer of the previous lap has finished reading the slot.
//
// Consumers read the slot at head with the tag-checked [Buffer.Read] and
// CAS head forward. A slot that is claimed but not yet written reads as
// no value and is reported as Empty: there is nothing to take until its
// producer runs again.
//
// Memory: capacity slots, one tag word per slot
type MPMC[T any] struct {
	_        cpu.CacheLinePad
	tail     atomix.Uint64 // Producers CAS here
	_        cpu.CacheLinePad
	head     atomix.Uint64 // Consumers CAS here
	_        cpu.CacheLinePad
	buffer   *Buffer[T]
	capacity uint64
}

// NewMPMC creates a bounded MPMC queue.
// Capacity rounds up to the next power of 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("circbuf: capacity must be >= 2")
	}

	n := roundToPow2(capacity)
	return &MPMC[T]{
		buffer:   NewBuffer[T](n),
		capacity: uint64(n),
	}
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *MPMC[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadAcquire()
		head := q.head.LoadAcquire()

		if tail >= head+q.capacity {
			return ErrWouldBlock
		}
		if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
			q.buffer.Write(tail, *elem)
			return nil
		}
		sw.Once()
	}
}

// TryDequeue makes one attempt to remove an element.
// Returns Data, Empty when nothing is published at head (including a
// position claimed by a producer that has not written it yet), or Retry
// when the attempt raced another consumer.
func (q *MPMC[T]) TryDequeue() TryRecv[T] {
	head := q.head.LoadAcquire()

	elem, ok := q.buffer.Read(head)
	if !ok {
		// Head moved: the slot was consumed and possibly recycled
		if q.head.LoadAcquire() != head {
			return Retry[T]()
		}
		return Empty[T]()
	}
	if !q.head.CompareAndSwapAcqRel(head, head+1) {
		return Retry[T]()
	}
	return Data(elem)
}

// Dequeue removes and returns an element.
// Lost races are retried. Returns (zero-value, ErrWouldBlock) if the
// queue is empty or its oldest position is claimed but not yet written.
func (q *MPMC[T]) Dequeue() (T, error) {
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
// No goroutine may use the queue during or after Release, and no
// producer may be between claiming and writing a slot.
func (q *MPMC[T]) Release(fn func(T)) int {
	return release(q.buffer, &q.head, q.tail.LoadAcquire(), fn)
}

// Cap returns the queue capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
