package metrics

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record("generate", 3000, 20*time.Millisecond)
	w.Record("classify", 1000, 30*time.Millisecond)
	w.Record("render", 0, 50*time.Millisecond)
	snap := w.Snapshot()
	if math.Abs(snap.PointsPerSec-40000) > 1 {
		t.Fatalf("unexpected throughput %.2f", snap.PointsPerSec)
	}
	if snap.Total != 100*time.Millisecond {
		t.Fatalf("expected total 100ms, got %s", snap.Total)
	}
	if len(snap.Stages) != 3 || snap.Stages[1].Name != "classify" {
		t.Fatalf("unexpected stages %v", snap.Stages)
	}
	if w.stages != nil || w.points != 0 || w.total != 0 {
		t.Fatalf("window was not reset")
	}
}

func TestEmptyWindowSnapshot(t *testing.T) {
	var w Window
	snap := w.Snapshot()
	if snap.PointsPerSec != 0 || snap.Total != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
