package telemetry

import "math"

// Collector accumulates physics events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	conflicts       int
	collisions      int
	blockedAxes     int
	tileSteps       int
	offGridRecovers int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// dt is float32, so a one-second window at 60 tps computes 59.9999...
	// ticks; round to the nearest whole tick.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordConflicts adds predicted-occupancy conflicts from one tick.
func (c *Collector) RecordConflicts(n int) {
	c.conflicts += n
}

// RecordCollision records one collision record produced by resolution.
func (c *Collector) RecordCollision() {
	c.collisions++
}

// RecordBlockedAxes adds velocity-axis cancellations from one tick.
func (c *Collector) RecordBlockedAxes(n int) {
	c.blockedAxes += n
}

// RecordTileSteps adds whole-tile transform commits from one tick.
func (c *Collector) RecordTileSteps(n int) {
	c.tileSteps += n
}

// RecordOffGridRecovery records an exact-tile failure recovered to the
// closest tile.
func (c *Collector) RecordOffGridRecovery() {
	c.offGridRecovers++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides current entity counts and the total-velocity
// magnitudes sampled at window end.
func (c *Collector) Flush(currentTick int32, colliderCount, moverCount int, speeds []float64) WindowStats {
	mean, std, p10, p50, p90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		ColliderCount: colliderCount,
		MoverCount:    moverCount,

		Conflicts:       c.conflicts,
		Collisions:      c.collisions,
		BlockedAxes:     c.blockedAxes,
		TileSteps:       c.tileSteps,
		OffGridRecovers: c.offGridRecovers,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.conflicts = 0
	c.collisions = 0
	c.blockedAxes = 0
	c.tileSteps = 0
	c.offGridRecovers = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
