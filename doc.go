// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package circbuf provides a tagged circular buffer and the lock-free
// queues built on it.
//
// # Buffer
//
// [Buffer] is a fixed, power-of-two array of slots. Each slot pairs a
// payload cell with an atomic tag holding the full logical position the
// payload was published under. Positions grow without bound; position
// pos lives in slot pos & (capacity-1).
//
//	b := circbuf.NewBuffer[string](4)
//	b.Write(0, "a")
//	b.Write(1, "b")
//	b.Read(0)       // "a", true
//	b.Read(2)       // "", false  (never written)
//	b.Write(4, "e") // reuses slot 0
//	b.Read(0)       // "", false  (stale)
//	b.Read(4)       // "e", true
//
// Per slot the tag cycles Unwritten(p) → Written(p) → Unwritten(p+capacity).
// A fresh buffer tags slot p with p+capacity, so nothing in [0, capacity)
// reads as published.
//
// Write stores the payload, then stores the tag with release ordering.
// Read loads the tag with acquire ordering and only then copies the
// payload. That pair is the whole synchronization protocol: a reader that
// sees tag == pos also sees the payload written at pos. There is no lock,
// no buffer-wide barrier, and no ordering between different slots.
//
// # Ownership
//
// The buffer does not know which slots hold values the caller still
// cares about; that is what the caller's head and tail counters are for.
// Consequently the buffer never clears a slot, never calls anything on a
// value, and [Buffer.Release] drops the block with whatever it contains.
// Draining live values before release is the caller's job. The queues do
// it in their Release methods:
//
//	n := q.Release(func(c *Conn) { c.Close() })
//
// # Unchecked access
//
// All Buffer accessors skip bounds and lifetime checks. The contract:
//
//   - one writer per logical position
//   - Read may race Write; it reports no value for stale or unwritten slots
//   - ReadUnchecked only on slots the caller has proven hold the position
//   - nothing touches a buffer after Release
//
// Breaking it is undefined behaviour. Build with -tags circbufdebug to turn
// released-buffer use and invalid ReadUnchecked calls into panics.
//
// # Payload access
//
// Payloads are copied with plain loads and stores, isolated in one pair of
// functions. A Read that races a Write on the same slot is a data race in
// the Go memory model; Read re-validates the tag after the copy, and the
// queues discard any copy made by a consumer that lost its CAS. This is
// an accepted, stress-tested risk rather than a proven construct. The race
// detector reports it, so concurrent tests skip under -race (see
// [RaceEnabled]).
//
// # Queues
//
//	SPSC  one producer, one consumer; consumer reads unchecked
//	SPMC  one producer, many consumers; tag-checked read + head CAS
//	MPMC  many producers claim positions by tail CAS; bounded only
//
// Direct constructors:
//
//	q := circbuf.NewSPSC[Event](1024)
//	q := circbuf.NewSPMCUnbounded[*Task](64)
//	q := circbuf.NewMPMC[*Request](4096)
//
// Builder:
//
//	q := circbuf.Build[Event](circbuf.New(1024).SingleProducer().SingleConsumer())  // → SPSC
//	q := circbuf.Build[Event](circbuf.New(1024).SingleProducer())                   // → SPMC
//	q := circbuf.Build[Event](circbuf.New(1024))                                    // → MPMC
//
// Capacity rounds up to the next power of 2; minimum capacity is 2.
//
// Unbounded SPSC and SPMC queues grow by allocating a buffer twice the
// size and copying the live window at the same logical positions, and
// shrink the same way when found at most a quarter full at the start of a
// lap. The producer keeps a cached view of head and refreshes it only for
// those checks. The old buffer is never
// written again and the garbage collector retires it once no consumer
// holds it.
//
// # Receive outcomes
//
// [Consumer.TryDequeue] returns a [TryRecv]: Data, Empty, or Retry. Retry
// means the attempt lost a race and should simply be run again; it is not
// an error. Dequeue wraps the retry loop and reports Empty as
// [ErrWouldBlock]:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.Dequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        continue
//	    }
//	    if !circbuf.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/spin] for CPU pause in retry loops, and
// [golang.org/x/sys/cpu] for cache line padding.
package circbuf
