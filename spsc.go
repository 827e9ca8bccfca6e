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

// SPSC is a single-producer single-consumer queue on a [Buffer].
//
// Based on Lamport's ring buffer with cached index optimization.
// The producer caches the consumer's head, and vice versa, reducing
// cross-core cache line traffic. The consumer proves occupancy through
// head < tail and reads with [Buffer.ReadUnchecked], so TryDequeue never
// reports Retry.
//
// Bounded queues return ErrWouldBlock when full. Unbounded queues double
// their buffer when full and halve it, down to the initial capacity, when
// found at most a quarter full at the start of a lap.
//
// Memory: O(capacity), one tag word per slot
type SPSC[T any] struct {
	_          cpu.CacheLinePad
	head       atomix.Uint64 // Consumer reads from here
	_          cpu.CacheLinePad
	cachedTail uint64 // Consumer's cached view of tail
	_          cpu.CacheLinePad
	tail       atomix.Uint64 // Producer writes here
	_          cpu.CacheLinePad
	cachedHead uint64 // Producer's cached view of head
	_          cpu.CacheLinePad
	buffer     atomic.Pointer[Buffer[T]]
	floor      uint64
	unbounded  bool
}

// NewSPSC creates a bounded SPSC queue.
// Capacity rounds up to the next power of 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	return newSPSC[T](capacity, false)
}

// NewSPSCUnbounded creates an SPSC queue that grows on demand.
// The initial capacity rounds up to the next power of 2 and is also the
// smallest capacity the queue shrinks back to.
func NewSPSCUnbounded[T any](capacity int) *SPSC[T] {
	return newSPSC[T](capacity, true)
}

func newSPSC[T any](capacity int, unbounded bool) *SPSC[T] {
	if capacity < 2 {
		panic("circbuf: capacity must be >= 2")
	}

	n := roundToPow2(capacity)
	q := &SPSC[T]{
		floor:     uint64(n),
		unbounded: unbounded,
	}
	q.buffer.Store(NewBuffer[T](n))
	return q
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if a bounded queue is full.
func (q *SPSC[T]) Enqueue(elem *T) error {
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

// TryDequeue removes an element (consumer only).
// Returns Data or Empty; SPSC consumers have no one to race.
func (q *SPSC[T]) TryDequeue() TryRecv[T] {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return Empty[T]()
		}
	}

	elem := q.buffer.Load().ReadUnchecked(head)
	q.head.StoreRelease(head + 1)
	return Data(elem)
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
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
func (q *SPSC[T]) Release(fn func(T)) int {
	return release(q.buffer.Load(), &q.head, q.tail.LoadAcquire(), fn)
}

// Cap returns the current capacity.
// For unbounded queues it changes as the buffer grows and shrinks.
func (q *SPSC[T]) Cap() int {
	return q.buffer.Load().Cap()
}

// release drains [head, tail) of buf into fn, moves head to tail and
// releases buf. Shared by every queue type.
func release[T any](buf *Buffer[T], head *atomix.Uint64, tail uint64, fn func(T)) int {
	n := 0
	for pos := head.LoadAcquire(); pos < tail; pos++ {
		v := buf.ReadUnchecked(pos)
		if fn != nil {
			fn(v)
		}
		n++
	}
	head.StoreRelease(tail)
	buf.Release()
	return n
}
