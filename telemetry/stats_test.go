package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(std-0.30277) > 0.001 {
		t.Errorf("std = %v, want ~0.30277", std)
	}
	if math.Abs(p10-0.1) > 0.001 {
		t.Errorf("p10 = %v, want 0.1", p10)
	}
	if math.Abs(p50-0.5) > 0.001 {
		t.Errorf("p50 = %v, want 0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.001 {
		t.Errorf("p90 = %v, want 0.9", p90)
	}
}

func TestComputeSpeedStatsUnsortedInput(t *testing.T) {
	mean1, std1, p10a, p50a, p90a := ComputeSpeedStats([]float64{3, 1, 2})
	mean2, std2, p10b, p50b, p90b := ComputeSpeedStats([]float64{1, 2, 3})

	if mean1 != mean2 || std1 != std2 || p10a != p10b || p50a != p50b || p90a != p90b {
		t.Error("stats depend on input order")
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeSpeedStats(nil)

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 1.0/60) // one-second windows at 60 ticks/sec

	if got := c.WindowDurationTicks(); got != 60 {
		t.Fatalf("window duration = %d ticks, want 60", got)
	}
	if c.ShouldFlush(59) {
		t.Error("flush requested before window elapsed")
	}
	if !c.ShouldFlush(60) {
		t.Error("flush not requested after window elapsed")
	}

	c.RecordConflicts(3)
	c.RecordCollision()
	c.RecordCollision()
	c.RecordBlockedAxes(2)
	c.RecordTileSteps(7)
	c.RecordOffGridRecovery()

	stats := c.Flush(60, 12, 4, []float64{1, 1, 1})
	if stats.Conflicts != 3 || stats.Collisions != 2 || stats.BlockedAxes != 2 {
		t.Errorf("counters = %+v, want conflicts 3, collisions 2, blocked 2", stats)
	}
	if stats.TileSteps != 7 || stats.OffGridRecovers != 1 {
		t.Errorf("counters = %+v, want steps 7, recoveries 1", stats)
	}
	if stats.ColliderCount != 12 || stats.MoverCount != 4 {
		t.Errorf("counts = %d/%d, want 12/4", stats.ColliderCount, stats.MoverCount)
	}

	// Counters reset after flush
	next := c.Flush(120, 0, 0, nil)
	if next.Conflicts != 0 || next.Collisions != 0 || next.TileSteps != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}
