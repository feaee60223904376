package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of the simulation tick pipeline. Phases run in
// declaration order within a tick.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseVelocity
	PhaseCollision
	PhaseMovement
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"input", "velocity", "collision", "movement", "telemetry",
}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// perfSample holds timing for a single tick, one slot per phase.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times the pipeline phases over a rolling window of ticks.
type PerfCollector struct {
	windowSize  int
	samples     []perfSample
	writeIndex  int
	sampleCount int

	current    [numPhases]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	active     Phase
	inPhase    bool

	// Frame pacing, graphics mode only
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]perfSample, windowSize),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = [numPhases]time.Duration{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing the given
// one.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	if p.inPhase {
		p.current[p.active] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.active = phase
	p.inPhase = true
}

// EndTick closes the running phase and pushes the tick into the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.inPhase {
		p.current[p.active] += now.Sub(p.phaseStart)
		p.inPhase = false
	}

	p.samples[p.writeIndex] = perfSample{
		tick:   now.Sub(p.tickStart),
		phases: p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame marks a rendered frame; the gap to the previous mark is the
// frame duration.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds window-aggregated timing figures.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per-phase average duration and share of the tick, indexed by Phase.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}
	stats := PerfStats{FrameDuration: p.frameDuration, FPS: fps}
	if p.sampleCount == 0 {
		return stats
	}

	var totalTick time.Duration
	var phaseSum [numPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.tick
		if i == 0 || s.tick < stats.MinTickDuration {
			stats.MinTickDuration = s.tick
		}
		if s.tick > stats.MaxTickDuration {
			stats.MaxTickDuration = s.tick
		}
		for ph := Phase(0); ph < numPhases; ph++ {
			phaseSum[ph] += s.phases[ph]
		}
	}

	stats.AvgTickDuration = totalTick / time.Duration(p.sampleCount)
	for ph := Phase(0); ph < numPhases; ph++ {
		stats.PhaseAvg[ph] = phaseSum[ph] / time.Duration(p.sampleCount)
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs the window through slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the flat CSV row for a perf window.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	VelocityPct  float64 `csv:"velocity_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for CSV export.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		VelocityPct:  s.PhasePct[PhaseVelocity],
		CollisionPct: s.PhasePct[PhaseCollision],
		MovementPct:  s.PhasePct[PhaseMovement],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
