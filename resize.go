// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

// Unbounded queues never resize a buffer in place. The producer allocates
// a new buffer, copies the live window into it at the same logical
// positions, and publishes the new pointer before releasing the next tail.
//
// The old buffer is never written again. A consumer that loaded it before
// the swap still finds every position below the swap-time tail tagged
// correctly, so it reads the same values it would have read from the new
// buffer. There is no explicit retirement: the garbage collector frees the
// old block once the last consumer drops its reference.

// migrate allocates a buffer of the given capacity, based at tail, and
// copies the window [head, tail) of old into it.
//
// head may lag behind the consumers' real head; copying positions that
// were consumed meanwhile is harmless because no consumer asks for them
// again. tail-head must not exceed capacity.
func migrate[T any](old *Buffer[T], head, tail uint64, capacity int) *Buffer[T] {
	nb := newBufferAt[T](capacity, tail)
	for pos := head; pos != tail; pos++ {
		nb.Write(pos, old.ReadUnchecked(pos))
	}
	return nb
}

// resizeDue reports whether the producer must refresh its cached head and
// consult resizeTarget before writing tail: when the cached occupancy has
// reached capacity, and once per lap of the current buffer for the shrink
// check. A stale cached head only overstates occupancy, so skipping the
// refresh otherwise never lets the producer overwrite a live slot.
func resizeDue(capacity, tail, cachedHead uint64) bool {
	return tail-cachedHead >= capacity || tail&(capacity-1) == 0
}

// resizeTarget returns the capacity an unbounded queue holding used
// values should move to before its next write, or 0 to stay put.
//
// Full buffers double. Buffers at most a quarter full halve, down to
// floor, which leaves the halved buffer at most half full.
func resizeTarget(capacity, floor, used uint64) uint64 {
	switch {
	case used >= capacity:
		return capacity * 2
	case capacity > floor && used <= capacity/4:
		return capacity / 2
	}
	return 0
}
