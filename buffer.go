// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/atomix"
)

// slot pairs a payload cell with the logical position it was last
// published under.
//
// tag == pos holds iff the most recent completed write to this slot
// was write(pos) and no write at pos+capacity has completed since.
type slot[T any] struct {
	tag  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// Buffer is a fixed-capacity ring of tagged slots addressed by logical
// position.
//
// A logical position maps to physical slot pos & (capacity-1). Tags carry
// the full logical position, so a reader can tell the value for pos apart
// from a stale value written at pos-capacity or a slot never written at pos.
//
// Buffer is storage only. It never tracks which slots the caller considers
// occupied, never clears consumed slots and never calls anything on the
// values it holds. Occupancy lives in the caller's head/tail counters, and
// so does the responsibility for draining values before the buffer is
// dropped. See [Buffer.Release].
//
// Concurrency contract:
//   - At most one goroutine writes a given logical position. For the
//     queues in this package that means one writer per buffer (SPSC, SPMC)
//     or one writer per claimed position (MPMC).
//   - Any number of goroutines may call Read concurrently with Write.
//   - ReadUnchecked is only valid when the caller has proven, by its own
//     bookkeeping, that the slot holds the value for pos.
//
// Every accessor is unchecked: there is no bounds check and no lifetime
// check. Misuse is undefined behaviour. Building with the circbufdebug tag
// turns the cheap checks into panics.
type Buffer[T any] struct {
	slots    []slot[T]
	mask     uint64
	capacity uint64
	stride   uintptr
}

// NewBuffer allocates a buffer with the given capacity.
//
// Capacity must be a power of two; it is not rounded up. Slot p starts
// tagged p+capacity, one full cycle ahead of the first position that will
// address it, so Read reports no value for every position in [0, capacity).
//
// Panics if capacity is not a power of two. Allocation failure is fatal.
func NewBuffer[T any](capacity int) *Buffer[T] {
	return newBufferAt[T](capacity, 0)
}

// newBufferAt allocates a buffer whose first write will happen at base.
// Each slot is tagged one full cycle ahead of the first position >= base
// that maps to it. newBufferAt(c, 0) tags slot p with p+c.
func newBufferAt[T any](capacity int, base uint64) *Buffer[T] {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		panic("circbuf: capacity must be a power of two")
	}

	n := uint64(capacity)
	var s slot[T]
	b := &Buffer[T]{
		slots:    make([]slot[T], n),
		mask:     n - 1,
		capacity: n,
		stride:   unsafe.Sizeof(s),
	}

	lap := base &^ b.mask
	for p := uint64(0); p < n; p++ {
		first := lap + p
		if first < base {
			first += n
		}
		b.slots[p].tag.StoreRelaxed(first + n)
	}

	return b
}

// Cap returns the fixed capacity of the buffer.
func (b *Buffer[T]) Cap() int {
	return int(b.capacity)
}

// Index returns the physical slot index for a logical position.
func (b *Buffer[T]) Index(pos uint64) int {
	return int(pos & b.mask)
}

// at returns the slot addressed by pos. This is the only place where
// positions are masked.
func (b *Buffer[T]) at(pos uint64) *slot[T] {
	if debugChecks && b.slots == nil {
		panic("circbuf: use of released buffer")
	}
	// Pointer arithmetic avoids slice bounds checking in hot path.
	// Equivalent to &b.slots[pos&b.mask]
	return (*slot[T])(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b.slots)), uintptr(pos&b.mask)*b.stride))
}

// Tag returns the logical position the slot for pos was last published
// under (load-acquire).
func (b *Buffer[T]) Tag(pos uint64) uint64 {
	return b.at(pos).tag.LoadAcquire()
}

// Write stores v at pos and publishes it.
//
// The payload is stored first, then the tag is stored with release
// ordering. A reader that observes the tag with acquire ordering also
// observes the payload.
//
// Write overwrites whatever the slot held for pos-capacity. The old value
// is dropped without further notice; the caller must already own or have
// given up on it.
//
// Only one goroutine may write a given position.
func (b *Buffer[T]) Write(pos uint64, v T) {
	s := b.at(pos)
	storeCell(&s.data, v)
	s.tag.StoreRelease(pos)
}

// Read returns the value published at pos.
//
// Returns (zero, false) if the slot has not been written at pos yet or has
// already been overwritten by a later cycle. On success the caller owns
// the returned copy; the slot is left untouched.
//
// Read may run concurrently with Write. The payload copy goes through
// loadCell and is then validated by re-reading the tag: an overwrite that
// completes while the copy is in flight turns the result into (zero, false).
// An overwrite still in progress when the tag is re-read is not detected.
// Callers that can race a writer on the same slot must therefore be able to
// discard the value, as the SPMC and MPMC queues do when their head CAS
// fails.
func (b *Buffer[T]) Read(pos uint64) (T, bool) {
	s := b.at(pos)
	if s.tag.LoadAcquire() != pos {
		var zero T
		return zero, false
	}

	v := loadCell(&s.data)
	if s.tag.Load() != pos {
		var zero T
		return zero, false
	}
	return v, true
}

// ReadUnchecked returns the payload of the slot for pos without looking at
// its tag.
//
// The caller must have established independently that the slot holds the
// value for pos, for example a producer re-reading its own writes or a
// consumer that validated occupancy through head/tail indices. Calling it
// on a slot that does not hold pos returns an unspecified value; with the
// circbufdebug build tag it panics instead.
func (b *Buffer[T]) ReadUnchecked(pos uint64) T {
	s := b.at(pos)
	if debugChecks {
		if tag := s.tag.LoadAcquire(); tag != pos {
			panic(fmt.Sprintf("circbuf: unchecked read at %d of slot tagged %d", pos, tag))
		}
	}
	return loadCell(&s.data)
}

// Release drops the slot block.
//
// Values still resident in slots are not cleared, not handed anywhere and
// not finalized by the buffer. The caller must have drained the values it
// still cares about, or accept losing them, before calling Release.
// Only Cap remains valid afterwards. Nothing else may use the buffer;
// with the circbufdebug build tag such use panics.
//
// Buffers that other goroutines may still be reading should simply be
// dropped instead: the garbage collector keeps the block alive until the
// last reader lets go of it.
func (b *Buffer[T]) Release() {
	b.slots = nil
	b.mask = 0
}
