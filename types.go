// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

// Queue is the combined producer-consumer interface for the queues built
// on [Buffer].
//
// Queue provides non-blocking Enqueue and Dequeue operations. Enqueue
// returns ErrWouldBlock when a bounded queue is full; Dequeue returns
// ErrWouldBlock when the queue is empty. TryDequeue exposes the raw
// three-way outcome instead.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
//
// Example:
//
//	q := circbuf.NewSPMC[int](1024)
//
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue
//	}
//
//	switch r := q.TryDequeue(); r.Kind() {
//	case circbuf.RecvData:
//	    v, _ := r.Value()
//	    fmt.Println(v)
//	case circbuf.RecvRetry:
//	    // Lost a race, try again
//	case circbuf.RecvEmpty:
//	    // Nothing to do
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Releaser[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs twice.
// The queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if a bounded queue is full.
	// Unbounded queues grow instead and never return ErrWouldBlock.
	//
	// Thread safety depends on queue type:
	//   - SPSC/SPMC: single producer only
	//   - MPMC: multiple producers safe
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Values are returned by copy. Consumed slots are not cleared: the buffer
// has a single writer, so references held by a consumed value stay
// reachable until the producer reuses the slot one lap later.
type Consumer[T any] interface {
	// TryDequeue makes one attempt to remove an element.
	// Returns Data on success, Empty if the queue is empty, or Retry if
	// the attempt lost a race with another goroutine.
	//
	// Thread safety depends on queue type:
	//   - SPSC: single consumer only
	//   - SPMC/MPMC: multiple consumers safe
	TryDequeue() TryRecv[T]

	// Dequeue removes and returns an element, retrying lost races.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// Releaser tears a queue down.
//
// The underlying [Buffer] never disposes of the values it holds. Release
// hands every value still in the queue to fn (which may be nil to drop
// them) and then releases the buffer. It returns the number of values
// handed over.
//
// Release requires quiescence: no goroutine may use the queue during or
// after the call.
type Releaser[T any] interface {
	Release(fn func(T)) int
}
