package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// MovementSystem integrates relative velocity into each entity's ticker and
// commits whole-tile steps to the transform. Sub-tile remainders stay
// buffered in the ticker between ticks, so every axis component is in
// (-1, 1) once the flush finishes.
type MovementSystem struct {
	filter   ecs.Filter3[components.Transform, components.Ticker, components.RelativeVelocity]
	totalMap *ecs.Map[components.TotalVelocity]

	stretch tilegrid.Stretch
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World, stretch tilegrid.Stretch) *MovementSystem {
	return &MovementSystem{
		filter:   *ecs.NewFilter3[components.Transform, components.Ticker, components.RelativeVelocity](w),
		totalMap: ecs.NewMap[components.TotalVelocity](w),
		stretch:  stretch,
	}
}

// Update runs the movement system. It returns the number of whole-tile
// steps committed, for telemetry.
//
// Axes flush in the fixed order z, y, x. The order is arbitrary but kept
// stable for determinism. After the flush, an entity whose total velocity is
// exactly zero has its ticker cleared, dropping any buffered sub-tile
// progress; velocities that merely pass near zero keep theirs.
func (s *MovementSystem) Update(w *ecs.World, dt float32) int {
	steps := 0
	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		tr, ticker, rel := query.Get()

		ticker.Value = ticker.Value.Add(rel.Value.Scale(dt))

		steps += stepAxis(&ticker.Value.Z, &tr.Translation.Z, 1)
		steps += stepAxis(&ticker.Value.Y, &tr.Translation.Y, float32(s.stretch.Y))
		steps += stepAxis(&ticker.Value.X, &tr.Translation.X, float32(s.stretch.X))

		if !s.totalMap.Has(entity) || s.totalMap.Get(entity).Value.IsZero() {
			ticker.Value = tilegrid.Vec3{}
		}
	}
	return steps
}

// stepAxis moves pos by one grid cell per whole unit buffered in t, leaving
// the fractional remainder behind. It returns the number of steps taken.
func stepAxis(t, pos *float32, cell float32) int {
	steps := 0
	for *t >= 1 {
		*pos += cell
		*t--
		steps++
	}
	for *t <= -1 {
		*pos -= cell
		*t++
		steps++
	}
	return steps
}
