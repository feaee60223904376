package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Entity counts at window end
	ColliderCount int `csv:"colliders"`
	MoverCount    int `csv:"movers"`

	// Events during window
	Conflicts       int `csv:"conflicts"`        // predicted tiles with multiple occupants
	Collisions      int `csv:"collisions"`       // collision records produced
	BlockedAxes     int `csv:"blocked_axes"`     // velocity axes canceled
	TileSteps       int `csv:"tile_steps"`       // whole-tile transform commits
	OffGridRecovers int `csv:"offgrid_recovers"` // exact-tile failures recovered to closest

	// Speed distribution (total velocity magnitudes, sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// ComputeSpeedStats calculates mean, standard deviation, and percentiles
// from speed samples.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("colliders", s.ColliderCount),
		slog.Int("movers", s.MoverCount),
		slog.Int("conflicts", s.Conflicts),
		slog.Int("collisions", s.Collisions),
		slog.Int("blocked_axes", s.BlockedAxes),
		slog.Int("tile_steps", s.TileSteps),
		slog.Int("offgrid_recovers", s.OffGridRecovers),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"colliders", s.ColliderCount,
		"movers", s.MoverCount,
		"conflicts", s.Conflicts,
		"collisions", s.Collisions,
		"blocked_axes", s.BlockedAxes,
		"tile_steps", s.TileSteps,
		"offgrid_recovers", s.OffGridRecovers,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
	)
}
