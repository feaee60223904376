package game

import (
	"errors"
	"log/slog"

	"github.com/ZBemo/simple-pirate-sim/telemetry"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// simulationStep runs a single tick: velocity, collision, movement, then
// telemetry. Phases run strictly in order; no phase starts before the
// previous one finished writing.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseVelocity)
	g.velocity.Update(g.world, g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	stats := g.collision.Update(g.world, g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	steps := g.movement.Update(g.world, g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordConflicts(stats.Conflicts)
	g.collector.RecordBlockedAxes(stats.Blocked)
	g.collector.RecordTileSteps(steps)
	g.recordCollisions()
	g.recoverOffGrid()
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// recordCollisions counts this tick's collision records and streams them to
// the output manager when one is configured.
func (g *Game) recordCollisions() {
	query := g.colliderFilter.Query()
	for query.Next() {
		col := query.Get()
		if col.Collision == nil {
			continue
		}
		g.collector.RecordCollision()

		if g.outputManager != nil {
			rec := telemetry.NewCollisionRecord(
				g.tick,
				uint32(query.Entity().ID()),
				col.Collision.Tile,
				col.Collision.Blocked,
				len(col.Collision.Others),
			)
			if err := g.outputManager.WriteCollision(rec); err != nil {
				slog.Error("failed to write collision record", "error", err)
			}
		}
	}
}

// recoverOffGrid snaps the player back onto the lattice if its transform has
// drifted off a grid-aligned position. Movement commits whole cells only, so
// a failure here means some other writer moved the transform.
func (g *Game) recoverOffGrid() {
	tr := g.transformMap.Get(g.player)
	if _, err := g.stretch.Tile(tr.Translation); err != nil {
		var offGrid *tilegrid.OffGridError
		if errors.As(err, &offGrid) {
			tr.Translation = g.stretch.World(offGrid.ToClosest())
			g.collector.RecordOffGridRecovery()
			slog.Warn("player off grid, recovered",
				"tick", g.tick,
				"tile", offGrid.ToClosest(),
			)
		}
	}
}

// flushTelemetry closes out the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	colliderCount := 0
	query := g.colliderFilter.Query()
	for query.Next() {
		colliderCount++
	}

	moverCount := 0
	var speeds []float64
	vels := g.velocityFilter.Query()
	for vels.Next() {
		total := vels.Get()
		if total.Value.IsZero() {
			continue
		}
		moverCount++
		speeds = append(speeds, float64(g.stretch.ScaleVec(total.Value).Length()))
	}

	stats := g.collector.Flush(g.tick, colliderCount, moverCount, speeds)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
