// Package systems contains ECS systems for the simulation.
package systems

import (
	"fmt"
	"math"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// groundEpsilon is the z tolerance when deciding whether a downward cast hit
// counts as the tile an entity is standing on.
const groundEpsilon = 1e-3

// VelocitySystem computes per-tick velocities in four phases: rebuild each
// entity's relative velocity from its movement goal, gravity, and maintained
// velocity; propagate totals root-to-leaf through the parent hierarchy; let
// grounded entities borrow the velocity of whatever they stand on; then decay
// maintained velocities toward zero.
type VelocitySystem struct {
	velFilter        ecs.Filter2[components.RelativeVelocity, components.TotalVelocity]
	groundFilter     ecs.Filter3[components.VelocityFromGround, components.Transform, components.TotalVelocity]
	colliderFilter   ecs.Filter2[components.Collider, components.Transform]
	maintainedFilter ecs.Filter1[components.MaintainedVelocity]

	goalMap       *ecs.Map[components.MovementGoal]
	weightMap     *ecs.Map[components.Weight]
	maintainedMap *ecs.Map[components.MaintainedVelocity]
	relMap        *ecs.Map[components.RelativeVelocity]
	totalMap      *ecs.Map[components.TotalVelocity]
	parentMap     *ecs.Map[components.Parent]
	childrenMap   *ecs.Map[components.Children]
	tickerMap     *ecs.Map[components.Ticker]

	stretch tilegrid.Stretch
	gravity tilegrid.Vec3
	decay   float32
	// parallelMin is the root count at which subtree propagation moves to
	// one goroutine per root. Subtrees are disjoint, so the writes never
	// overlap. Zero disables the parallel path.
	parallelMin int
}

// groundBody is the cast payload for the ground-velocity phase.
type groundBody struct {
	entity ecs.Entity
	total  tilegrid.Vec3
}

// NewVelocitySystem creates a new velocity system.
func NewVelocitySystem(w *ecs.World, stretch tilegrid.Stretch, gravity tilegrid.Vec3, decay float32, parallelMin int) *VelocitySystem {
	return &VelocitySystem{
		velFilter:        *ecs.NewFilter2[components.RelativeVelocity, components.TotalVelocity](w),
		groundFilter:     *ecs.NewFilter3[components.VelocityFromGround, components.Transform, components.TotalVelocity](w),
		colliderFilter:   *ecs.NewFilter2[components.Collider, components.Transform](w),
		maintainedFilter: *ecs.NewFilter1[components.MaintainedVelocity](w),
		goalMap:          ecs.NewMap[components.MovementGoal](w),
		weightMap:        ecs.NewMap[components.Weight](w),
		maintainedMap:    ecs.NewMap[components.MaintainedVelocity](w),
		relMap:           ecs.NewMap[components.RelativeVelocity](w),
		totalMap:         ecs.NewMap[components.TotalVelocity](w),
		parentMap:        ecs.NewMap[components.Parent](w),
		childrenMap:      ecs.NewMap[components.Children](w),
		tickerMap:        ecs.NewMap[components.Ticker](w),
		stretch:          stretch,
		gravity:          gravity,
		decay:            decay,
		parallelMin:      parallelMin,
	}
}

// Update runs the velocity system.
func (s *VelocitySystem) Update(w *ecs.World, dt float32) {
	s.applyRelative()
	s.propagate()
	s.borrowGround()
	s.decayMaintained(dt)
}

// applyRelative rebuilds relative velocities from scratch and zeroes totals.
// Stale values never survive a tick.
func (s *VelocitySystem) applyRelative() {
	query := s.velFilter.Query()
	for query.Next() {
		entity := query.Entity()
		rel, total := query.Get()

		v := tilegrid.Vec3{}
		if s.goalMap.Has(entity) {
			v = v.Add(s.goalMap.Get(entity).Value)
		}
		if s.weightMap.Has(entity) {
			v = v.Add(s.gravity.Scale(s.weightMap.Get(entity).Value))
		}
		if s.maintainedMap.Has(entity) {
			v = v.Add(s.maintainedMap.Get(entity).Value)
		}
		rel.Value = v
		total.Value = tilegrid.Vec3{}
	}
}

// propagate walks the hierarchy root-to-leaf so every total velocity is the
// sum of the entity's relative velocity and all its ancestors'.
func (s *VelocitySystem) propagate() {
	var roots []ecs.Entity
	query := s.velFilter.Query()
	for query.Next() {
		entity := query.Entity()
		rel, total := query.Get()
		if s.parentMap.Has(entity) {
			continue
		}
		total.Value = rel.Value
		if s.childrenMap.Has(entity) {
			roots = append(roots, entity)
		}
	}

	if s.parallelMin > 0 && len(roots) >= s.parallelMin {
		var wg sync.WaitGroup
		for _, root := range roots {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.propagateChildren(root, s.totalMap.Get(root).Value)
			}()
		}
		wg.Wait()
		return
	}
	for _, root := range roots {
		s.propagateChildren(root, s.totalMap.Get(root).Value)
	}
}

func (s *VelocitySystem) propagateChildren(parent ecs.Entity, parentTotal tilegrid.Vec3) {
	for _, child := range s.childrenMap.Get(parent).All {
		if !s.parentMap.Has(child) || s.parentMap.Get(child).Entity != parent {
			panic(fmt.Sprintf("velocity: entity %v listed as child of %v but does not point back to it", child, parent))
		}
		childTotal := parentTotal
		if s.relMap.Has(child) {
			childTotal = childTotal.Add(s.relMap.Get(child).Value)
		}
		if s.totalMap.Has(child) {
			s.totalMap.Get(child).Value = childTotal
		}
		if s.childrenMap.Has(child) {
			s.propagateChildren(child, childTotal)
		}
	}
}

// borrowGround casts straight down from each grounded entity and, when a
// collider sits within one tile below it, adds that collider's total velocity
// to the entity's own total and relative velocity. Riding a moving deck moves
// you with it.
func (s *VelocitySystem) borrowGround() {
	var candidates []Candidate[groundBody]
	colliders := s.colliderFilter.Query()
	for colliders.Next() {
		entity := colliders.Entity()
		_, tr := colliders.Get()
		body := groundBody{entity: entity}
		if s.totalMap.Has(entity) {
			body.total = s.totalMap.Get(entity).Value
		}
		candidates = append(candidates, Candidate[groundBody]{
			Data: body,
			Tile: s.stretch.Closest(tr.Translation),
		})
	}

	down := tilegrid.Vec3{Z: -1}
	query := s.groundFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, tr, total := query.Get()

		origin := CastOrigin{Tile: s.stretch.Closest(tr.Translation)}
		if s.tickerMap.Has(entity) {
			origin.Ticker = s.tickerMap.Get(entity).Value
		}

		var (
			best     groundBody
			bestDist float32
			found    bool
		)
		for h := range Cast(origin, down, s.stretch, candidates, true) {
			if h.Data.entity == entity {
				continue
			}
			if math.Abs(float64(float32(h.Tile.Z)-tr.Translation.Z)) >= 1+groundEpsilon {
				continue
			}
			if !found || h.Distance < bestDist {
				best, bestDist, found = h.Data, h.Distance, true
			}
		}
		if !found {
			continue
		}

		total.Value = total.Value.Add(best.total)
		if s.relMap.Has(entity) {
			rel := s.relMap.Get(entity)
			rel.Value = rel.Value.Add(best.total)
		}
	}
}

// decayMaintained steps every maintained velocity axis toward zero at the
// configured rate.
func (s *VelocitySystem) decayMaintained(dt float32) {
	step := s.decay * dt
	query := s.maintainedFilter.Query()
	for query.Next() {
		m := query.Get()
		m.Value.X = decayAxis(m.Value.X, step)
		m.Value.Y = decayAxis(m.Value.Y, step)
		m.Value.Z = decayAxis(m.Value.Z, step)
	}
}

func decayAxis(v, step float32) float32 {
	switch {
	case v > step:
		return v - step
	case v < -step:
		return v + step
	default:
		return 0
	}
}
