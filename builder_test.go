// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf_test

import (
	"testing"

	"code.hybscloud.com/circbuf"
)

// =============================================================================
// Builder Algorithm Selection
// =============================================================================

func TestBuilderSelectsSPSC(t *testing.T) {
	q := circbuf.Build[int](circbuf.New(7).SingleProducer().SingleConsumer())
	if _, ok := q.(*circbuf.SPSC[int]); !ok {
		t.Fatalf("Build(SP+SC): got %T, want *SPSC[int]", q)
	}
	if q.Cap() != 8 {
		t.Fatalf("Cap: got %d, want 8", q.Cap())
	}
}

func TestBuilderSelectsSPMC(t *testing.T) {
	q := circbuf.Build[int](circbuf.New(7).SingleProducer())
	if _, ok := q.(*circbuf.SPMC[int]); !ok {
		t.Fatalf("Build(SP): got %T, want *SPMC[int]", q)
	}
}

func TestBuilderSelectsMPMC(t *testing.T) {
	for _, b := range []*circbuf.Builder{circbuf.New(7), circbuf.New(7).SingleConsumer()} {
		q := circbuf.Build[int](b)
		if _, ok := q.(*circbuf.MPMC[int]); !ok {
			t.Fatalf("Build: got %T, want *MPMC[int]", q)
		}
	}
}

func TestBuilderUnbounded(t *testing.T) {
	queues := map[string]circbuf.Queue[int]{
		"SPSC": circbuf.Build[int](circbuf.New(2).SingleProducer().SingleConsumer().Unbounded()),
		"SPMC": circbuf.Build[int](circbuf.New(2).SingleProducer().Unbounded()),
	}
	for name, q := range queues {
		for i := range 10 {
			v := i
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("%s: Enqueue(%d): %v", name, i, err)
			}
		}
		if q.Cap() != 16 {
			t.Fatalf("%s: Cap: got %d, want 16", name, q.Cap())
		}
	}
}

func TestBuilderTyped(t *testing.T) {
	spsc := circbuf.BuildSPSC[int](circbuf.New(4).SingleProducer().SingleConsumer())
	spmc := circbuf.BuildSPMC[int](circbuf.New(4).SingleProducer())
	mpmc := circbuf.BuildMPMC[int](circbuf.New(4))

	for name, q := range map[string]circbuf.Queue[int]{"SPSC": spsc, "SPMC": spmc, "MPMC": mpmc} {
		v := 42
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("%s: Enqueue: %v", name, err)
		}
		if got, err := q.Dequeue(); err != nil || got != 42 {
			t.Fatalf("%s: Dequeue: got (%d, %v), want 42", name, got, err)
		}
	}
}

// =============================================================================
// Builder Panics
// =============================================================================

func expectBuilderPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestBuilderPanics(t *testing.T) {
	expectBuilderPanic(t, "New(1)", func() { circbuf.New(1) })
	expectBuilderPanic(t, "BuildSPSC without constraints", func() {
		circbuf.BuildSPSC[int](circbuf.New(4))
	})
	expectBuilderPanic(t, "BuildSPSC with SingleProducer only", func() {
		circbuf.BuildSPSC[int](circbuf.New(4).SingleProducer())
	})
	expectBuilderPanic(t, "BuildSPMC without constraints", func() {
		circbuf.BuildSPMC[int](circbuf.New(4))
	})
	expectBuilderPanic(t, "BuildSPMC with SingleConsumer", func() {
		circbuf.BuildSPMC[int](circbuf.New(4).SingleProducer().SingleConsumer())
	})
	expectBuilderPanic(t, "BuildMPMC with SingleProducer", func() {
		circbuf.BuildMPMC[int](circbuf.New(4).SingleProducer())
	})
	expectBuilderPanic(t, "BuildMPMC with Unbounded", func() {
		circbuf.BuildMPMC[int](circbuf.New(4).Unbounded())
	})
	expectBuilderPanic(t, "Build MPMC with Unbounded", func() {
		circbuf.Build[int](circbuf.New(4).SingleConsumer().Unbounded())
	})
}
