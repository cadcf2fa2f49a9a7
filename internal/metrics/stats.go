package metrics

import "time"

// Window accumulates stage timings across a run.
type Window struct {
	stages []Stage
	total  time.Duration
	points int
}

// Stage is the wall time spent in one named pipeline step.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Record adds a new measurement to the window. points is the number of
// points the stage processed and may be zero.
func (w *Window) Record(name string, points int, d time.Duration) {
	w.stages = append(w.stages, Stage{Name: name, Duration: d})
	w.total += d
	w.points += points
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{
		Stages: w.stages,
		Total:  w.total,
	}
	if w.total > 0 {
		snap.PointsPerSec = float64(w.points) / w.total.Seconds()
	}

	w.stages = nil
	w.total = 0
	w.points = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Stages       []Stage
	Total        time.Duration
	PointsPerSec float64
}
