// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

import "fmt"

// RecvKind classifies the outcome of a non-blocking receive.
type RecvKind uint8

const (
	// RecvEmpty means no value was received because the queue is empty.
	RecvEmpty RecvKind = iota
	// RecvData means a value was received.
	RecvData
	// RecvRetry means the attempt lost a race to a concurrent operation.
	// The queue may well hold values; try again.
	RecvRetry
)

// String returns the name of the outcome.
func (k RecvKind) String() string {
	switch k {
	case RecvEmpty:
		return "Empty"
	case RecvData:
		return "Data"
	case RecvRetry:
		return "Retry"
	default:
		return "RecvKind(?)"
	}
}

// TryRecv is the result of a non-blocking receive: a value, Empty or Retry.
//
// Retry is the lock-free "optimistic retry" signal. A failed CAS or a slot
// overwritten under a reader is not an error; it is an instruction to run
// the whole operation again, usually after a spin or backoff.
//
// The zero TryRecv is Empty.
//
// Example:
//
//	sw := spin.Wait{}
//	for {
//	    r := q.TryDequeue()
//	    if v, ok := r.Value(); ok {
//	        process(v)
//	        break
//	    }
//	    if r.IsEmpty() {
//	        break
//	    }
//	    sw.Once() // Retry
//	}
type TryRecv[T any] struct {
	value T
	kind  RecvKind
}

// Data returns a TryRecv holding v.
func Data[T any](v T) TryRecv[T] {
	return TryRecv[T]{value: v, kind: RecvData}
}

// Empty returns the Empty outcome.
func Empty[T any]() TryRecv[T] {
	return TryRecv[T]{kind: RecvEmpty}
}

// Retry returns the Retry outcome.
func Retry[T any]() TryRecv[T] {
	return TryRecv[T]{kind: RecvRetry}
}

// Kind returns the outcome kind.
func (r TryRecv[T]) Kind() RecvKind {
	return r.kind
}

// Value returns the received value and true, or the zero value and false
// for Empty and Retry.
func (r TryRecv[T]) Value() (T, bool) {
	return r.value, r.kind == RecvData
}

// IsData reports whether a value was received.
func (r TryRecv[T]) IsData() bool { return r.kind == RecvData }

// IsEmpty reports whether the queue was empty.
func (r TryRecv[T]) IsEmpty() bool { return r.kind == RecvEmpty }

// IsRetry reports whether the receive lost a race.
func (r TryRecv[T]) IsRetry() bool { return r.kind == RecvRetry }

// Err maps the outcome onto the package's semantic errors:
// nil for Data, [ErrWouldBlock] for Empty, [ErrRetry] for Retry.
func (r TryRecv[T]) Err() error {
	switch r.kind {
	case RecvData:
		return nil
	case RecvRetry:
		return ErrRetry
	default:
		return ErrWouldBlock
	}
}

// String formats the outcome for debugging.
func (r TryRecv[T]) String() string {
	if r.kind == RecvData {
		return fmt.Sprintf("Data(%v)", r.value)
	}
	return r.kind.String()
}

// MapRecv applies f to the value of a Data outcome.
// Empty and Retry pass through unchanged.
func MapRecv[T, U any](r TryRecv[T], f func(T) U) TryRecv[U] {
	if r.kind == RecvData {
		return Data(f(r.value))
	}
	return TryRecv[U]{kind: r.kind}
}
