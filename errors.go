// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the bounded queue is full (backpressure)
// For Dequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrRetry indicates a non-blocking receive lost a race to a concurrent
// operation. It is returned by [TryRecv.Err] for Retry outcomes.
//
// Like ErrWouldBlock it is a control flow signal: run the operation again.
var ErrRetry = errors.New("circbuf: lost race to a concurrent operation")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsRetry reports whether err is, or wraps, ErrRetry.
func IsRetry(err error) bool {
	return errors.Is(err, ErrRetry)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// ErrRetry is semantic; everything else delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return IsRetry(err) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// ErrRetry is a non-failure; everything else delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return IsRetry(err) || iox.IsNonFailure(err)
}
