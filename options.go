// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Grow instead of returning ErrWouldBlock when full
	unbounded bool

	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the queue type from the producer/consumer
// constraints.
//
// Example:
//
//	// SPSC queue (optimal for single producer/consumer)
//	q := circbuf.BuildSPSC[Event](circbuf.New(1024).SingleProducer().SingleConsumer())
//
//	// Growing work queue for one dispatcher and many workers
//	q := circbuf.BuildSPMC[Task](circbuf.New(64).SingleProducer().Unbounded())
//
//	// MPMC queue (default, general purpose)
//	q := circbuf.BuildMPMC[Request](circbuf.New(4096))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2. For unbounded queues it is
// the initial capacity and the floor the queue shrinks back to.
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("circbuf: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Unbounded makes the queue grow when full instead of returning
// ErrWouldBlock. Only single-producer queues can grow: the producer is
// the one goroutine allowed to replace the buffer.
func (b *Builder) Unbounded() *Builder {
	b.opts.unbounded = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleProducer + SingleConsumer → SPSC (Lamport ring, unchecked reads)
//	SingleProducer only             → SPMC (tag-checked reads, head CAS)
//	Otherwise                       → MPMC (tail CAS, tag-checked reads)
//
// There is no dedicated MPSC: a SingleConsumer-only builder yields MPMC.
//
// Panics if Unbounded is combined with multiple producers.
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return newSPSC[T](b.opts.capacity, b.opts.unbounded)
	case b.opts.singleProducer:
		return newSPMC[T](b.opts.capacity, b.opts.unbounded)
	case b.opts.unbounded:
		panic("circbuf: Unbounded requires SingleProducer()")
	default:
		return NewMPMC[T](b.opts.capacity)
	}
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("circbuf: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return newSPSC[T](b.opts.capacity, b.opts.unbounded)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer() only.
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("circbuf: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	return newSPMC[T](b.opts.capacity, b.opts.unbounded)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if builder has a producer constraint or Unbounded set.
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleProducer {
		panic("circbuf: BuildMPMC requires multiple producers")
	}
	if b.opts.unbounded {
		panic("circbuf: Unbounded requires SingleProducer()")
	}
	return NewMPMC[T](b.opts.capacity)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
