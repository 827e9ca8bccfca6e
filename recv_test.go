// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf_test

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"testing"

	"code.hybscloud.com/circbuf"
	"code.hybscloud.com/iox"
)

func TestTryRecvOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		r       circbuf.TryRecv[int]
		kind    circbuf.RecvKind
		value   int
		ok      bool
		err     error
		display string
	}{
		{"Data", circbuf.Data(7), circbuf.RecvData, 7, true, nil, "Data(7)"},
		{"Empty", circbuf.Empty[int](), circbuf.RecvEmpty, 0, false, circbuf.ErrWouldBlock, "Empty"},
		{"Retry", circbuf.Retry[int](), circbuf.RecvRetry, 0, false, circbuf.ErrRetry, "Retry"},
		{"Zero", circbuf.TryRecv[int]{}, circbuf.RecvEmpty, 0, false, circbuf.ErrWouldBlock, "Empty"},
	}

	for tt := range slices.Values(tests) {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.Kind() != tt.kind {
				t.Fatalf("Kind: got %v, want %v", tt.r.Kind(), tt.kind)
			}
			v, ok := tt.r.Value()
			if v != tt.value || ok != tt.ok {
				t.Fatalf("Value: got (%d, %v), want (%d, %v)", v, ok, tt.value, tt.ok)
			}
			if tt.r.IsData() != (tt.kind == circbuf.RecvData) ||
				tt.r.IsEmpty() != (tt.kind == circbuf.RecvEmpty) ||
				tt.r.IsRetry() != (tt.kind == circbuf.RecvRetry) {
				t.Fatalf("Is*: inconsistent with kind %v", tt.kind)
			}
			if err := tt.r.Err(); !errors.Is(err, tt.err) || (tt.err == nil) != (err == nil) {
				t.Fatalf("Err: got %v, want %v", err, tt.err)
			}
			if s := tt.r.String(); s != tt.display {
				t.Fatalf("String: got %q, want %q", s, tt.display)
			}
		})
	}
}

func TestMapRecv(t *testing.T) {
	itoa := func(v int) string { return strconv.Itoa(v * 2) }

	if v, ok := circbuf.MapRecv(circbuf.Data(21), itoa).Value(); !ok || v != "42" {
		t.Fatalf("MapRecv(Data): got (%q, %v), want (\"42\", true)", v, ok)
	}
	if r := circbuf.MapRecv(circbuf.Empty[int](), itoa); !r.IsEmpty() {
		t.Fatalf("MapRecv(Empty): got %v", r)
	}
	if r := circbuf.MapRecv(circbuf.Retry[int](), itoa); !r.IsRetry() {
		t.Fatalf("MapRecv(Retry): got %v", r)
	}

	called := false
	circbuf.MapRecv(circbuf.Retry[int](), func(int) int { called = true; return 0 })
	if called {
		t.Fatal("MapRecv(Retry) called f")
	}
}

func TestRecvKindString(t *testing.T) {
	if s := circbuf.RecvKind(99).String(); s != "RecvKind(?)" {
		t.Fatalf("String: got %q", s)
	}
}

// =============================================================================
// Error Classification
// =============================================================================

func TestErrorClassification(t *testing.T) {
	wrappedRetry := fmt.Errorf("dequeue: %w", circbuf.ErrRetry)
	failure := errors.New("boom")

	tests := []struct {
		name                            string
		err                             error
		wouldBlock, retry, sem, nonFail bool
	}{
		{"nil", nil, false, false, false, true},
		{"WouldBlock", circbuf.ErrWouldBlock, true, false, true, true},
		{"Retry", circbuf.ErrRetry, false, true, true, true},
		{"WrappedRetry", wrappedRetry, false, true, true, true},
		{"Failure", failure, false, false, false, false},
	}

	for tt := range slices.Values(tests) {
		t.Run(tt.name, func(t *testing.T) {
			if got := circbuf.IsWouldBlock(tt.err); got != tt.wouldBlock {
				t.Errorf("IsWouldBlock: got %v, want %v", got, tt.wouldBlock)
			}
			if got := circbuf.IsRetry(tt.err); got != tt.retry {
				t.Errorf("IsRetry: got %v, want %v", got, tt.retry)
			}
			if got := circbuf.IsSemantic(tt.err); got != tt.sem {
				t.Errorf("IsSemantic: got %v, want %v", got, tt.sem)
			}
			if got := circbuf.IsNonFailure(tt.err); got != tt.nonFail {
				t.Errorf("IsNonFailure: got %v, want %v", got, tt.nonFail)
			}
		})
	}

	if !errors.Is(circbuf.ErrWouldBlock, iox.ErrWouldBlock) {
		t.Fatal("ErrWouldBlock must alias iox.ErrWouldBlock")
	}
}
