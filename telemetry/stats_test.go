package telemetry

import (
	"math"
	"testing"
)

func TestSummarizeSpeeds(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    SpeedSummary
	}{
		{"empty", nil, SpeedSummary{}},
		{"single", []float64{5}, SpeedSummary{Mean: 5, P50: 5, P90: 5}},
		{"unsorted", []float64{8, 0, 4}, SpeedSummary{Mean: 4, P50: 4, P90: 8}},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, SpeedSummary{Mean: 5.5, P50: 5, P90: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeSpeeds(tt.samples)
			if math.Abs(got.Mean-tt.want.Mean) > 1e-9 || got.P50 != tt.want.P50 || got.P90 != tt.want.P90 {
				t.Errorf("SummarizeSpeeds(%v) = %+v, want %+v", tt.samples, got, tt.want)
			}
		})
	}

	in := []float64{3, 1, 2}
	SummarizeSpeeds(in)
	if in[0] != 3 {
		t.Error("input was reordered")
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	c.Record(NewRollbackEvent(1, 7, false, 0, 0))
	c.Record(NewRollbackEvent(2, 7, true, 0, 0))
	c.Record(NewRollbackEvent(3, 7, true, 0, 0))
	c.Record(NewJumpEvent(3, 7, -16))
	c.Record(NewPurgeEvent(4, 3))
	c.Record(NewBushSlowEvent(4, 7))
	c.RecordTick(true, true, 8)
	c.RecordTick(false, false, 0)

	if c.ShouldFlush(9) {
		t.Error("window should not be full at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should be full at tick 10")
	}

	s := c.Flush(10, "run", WorldCounts{Colliders: 5, Bodies: 1})
	if s.RollbacksX != 1 || s.RollbacksY != 2 || s.Jumps != 1 || s.Purged != 3 {
		t.Errorf("counts = %+v", s)
	}
	if s.BushTicks != 1 || s.BushIn != 1 {
		t.Errorf("bush ticks = %d, entries = %d, want 1 and 1", s.BushTicks, s.BushIn)
	}
	if s.GroundedFrac != 0.5 {
		t.Errorf("grounded = %v, want 0.5", s.GroundedFrac)
	}
	if s.SpeedMean != 4 {
		t.Errorf("speed mean = %v, want 4", s.SpeedMean)
	}
	if s.Colliders != 5 || s.RunID != "run" {
		t.Errorf("world counts not copied: %+v", s)
	}

	next := c.Flush(20, "run", WorldCounts{})
	if next.WindowStartTick != 10 || next.RollbacksY != 0 || next.GroundedFrac != 0 {
		t.Errorf("collector did not reset: %+v", next)
	}
}

func TestEventNames(t *testing.T) {
	for ev := EventRollbackX; ev <= EventPurge; ev++ {
		if ev.String() == "unknown" {
			t.Errorf("event %d has no name", ev)
		}
	}
	rec := NewDeathEvent(5, 1, 10, 20).Record("abc")
	if rec.Type != "death" || rec.RunID != "abc" || rec.X != 10 {
		t.Errorf("record = %+v", rec)
	}
}
