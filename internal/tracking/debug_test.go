package tracking

import (
	"bytes"
	"strings"
	"testing"
)

// The tests in this file swap package-level loggers and must not run in
// parallel with each other.

func TestSetLogWriters_Disable(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriters(&buf, &buf, &buf)
	SetLogWriters(nil, nil, nil)

	if opsLogger != nil || diagLogger != nil || traceLogger != nil {
		t.Fatal("all loggers should be nil after SetLogWriters(nil, nil, nil)")
	}
}

func TestOpsf_ClassMismatchLogged(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(&ops, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	track := NewTrack(5, Detection{ObjectClass: ClassCar, BoundingBox: box(0, 0, 10, 10), Score: 1}, 1, Params{})
	if err := track.AddMatchedDetection(Detection{ObjectClass: ClassBicycle}); err == nil {
		t.Fatal("expected class mismatch error")
	}

	output := ops.String()
	if !strings.Contains(output, "track 5: rejected bicycle detection") {
		t.Errorf("expected rejection in ops log, got %q", output)
	}
	if !strings.Contains(output, "[tracking]") {
		t.Errorf("expected '[tracking]' prefix, got %q", output)
	}
}

func TestTracef_Mutations(t *testing.T) {
	var trace bytes.Buffer
	SetLogWriters(nil, nil, &trace)
	defer SetLogWriters(nil, nil, nil)

	track := NewTrack(9, Detection{ObjectClass: ClassCar, BoundingBox: box(0, 0, 10, 10), Score: 1}, 1, Params{})
	_ = track.AddMatchedDetection(Detection{ObjectClass: ClassCar, BoundingBox: box(1, 0, 10, 10), Score: 1})
	track.SkipOneDetection()

	output := trace.String()
	for _, want := range []string{"track 9 founded", "track 9 matched", "track 9 extrapolated"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in trace log, got %q", want, output)
		}
	}
}

func TestDiagf_Termination(t *testing.T) {
	var diag bytes.Buffer
	SetLogWriters(nil, &diag, nil)
	defer SetLogWriters(nil, nil, nil)

	track := NewTrack(2, Detection{ObjectClass: ClassCar, BoundingBox: box(0, 0, 10, 10), Score: 1}, 1, Params{})
	track.SkipOneDetection()
	if !track.ShouldTerminate() {
		t.Fatal("expected termination for a fresh track after a miss")
	}
	if !strings.Contains(diag.String(), "exceeded extrapolation budget") {
		t.Errorf("expected budget message in diag log, got %q", diag.String())
	}
}

func TestLoggersDisabledDoNotPanic(t *testing.T) {
	SetLogWriters(nil, nil, nil)
	opsf("silently discarded: %d", 1)
	diagf("no-op %d", 2)
	tracef("no-op %d", 3)
}
