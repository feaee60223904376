package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// CollisionStats summarizes one collision pass for telemetry.
type CollisionStats struct {
	// Conflicts is the number of tiles predicted to hold more than one
	// collider.
	Conflicts int
	// Blocked is the number of velocity axes canceled across all entities.
	Blocked int
}

// predictedEntry is one collider's predicted occupancy for the coming tick.
type predictedEntry struct {
	entity      ecs.Entity
	constraints components.Constraints
	current     tilegrid.IVec3
	predicted   tilegrid.IVec3
	ticker      tilegrid.Vec3
}

// CollisionSystem predicts where every collider will be after the coming
// movement step and cancels velocity axes that would push an entity into a
// solid plane. The occupancy map is rebuilt from scratch every tick; nothing
// is carried over.
type CollisionSystem struct {
	colliderFilter ecs.Filter1[components.Collider]

	colliderMap  *ecs.Map[components.Collider]
	transformMap *ecs.Map[components.Transform]
	totalMap     *ecs.Map[components.TotalVelocity]
	relMap       *ecs.Map[components.RelativeVelocity]
	tickerMap    *ecs.Map[components.Ticker]

	stretch tilegrid.Stretch

	entries []predictedEntry
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World, stretch tilegrid.Stretch) *CollisionSystem {
	return &CollisionSystem{
		colliderFilter: *ecs.NewFilter1[components.Collider](w),
		colliderMap:    ecs.NewMap[components.Collider](w),
		transformMap:   ecs.NewMap[components.Transform](w),
		totalMap:       ecs.NewMap[components.TotalVelocity](w),
		relMap:         ecs.NewMap[components.RelativeVelocity](w),
		tickerMap:      ecs.NewMap[components.Ticker](w),
		stretch:        stretch,
	}
}

// Update rebuilds the predicted occupancy map and resolves it.
func (s *CollisionSystem) Update(w *ecs.World, dt float32) CollisionStats {
	s.build(dt)
	return s.resolve(dt)
}

// build predicts each collider's tile after the coming step: the current
// tile plus the whole-tile part of total velocity times dt plus the buffered
// ticker residual, truncated toward zero. A collider without a transform is
// a programming error.
func (s *CollisionSystem) build(dt float32) {
	s.entries = s.entries[:0]
	query := s.colliderFilter.Query()
	for query.Next() {
		entity := query.Entity()
		col := query.Get()
		col.Collision = nil

		if !s.transformMap.Has(entity) {
			panic(fmt.Sprintf("collision: collider on entity %v has no transform", entity))
		}
		current := s.stretch.Closest(s.transformMap.Get(entity).Translation)

		offset := tilegrid.Vec3{}
		ticker := tilegrid.Vec3{}
		if s.tickerMap.Has(entity) {
			ticker = s.tickerMap.Get(entity).Value
			offset = ticker
		}
		if s.totalMap.Has(entity) {
			offset = offset.Add(s.totalMap.Get(entity).Value.Scale(dt))
		}

		s.entries = append(s.entries, predictedEntry{
			entity:      entity,
			constraints: col.Constraints,
			current:     current,
			predicted:   current.Add(offset.Trunc()),
			ticker:      ticker,
		})
	}
}

// resolve casts each moving collider along its total velocity over every
// other collider's predicted tile. The nearest obstruction (with ties within
// distEpsilon merged) contributes its solid planes; any axis pushing into a
// solid plane is zeroed in both total and relative velocity. Sensors show up
// in the collision record but never block.
func (s *CollisionSystem) resolve(dt float32) CollisionStats {
	var stats CollisionStats

	occupancy := make(map[tilegrid.IVec3]int, len(s.entries))
	for _, e := range s.entries {
		occupancy[e.predicted]++
	}
	for _, n := range occupancy {
		if n > 1 {
			stats.Conflicts++
		}
	}

	candidates := make([]Candidate[int], len(s.entries))
	for i, e := range s.entries {
		candidates[i] = Candidate[int]{Data: i, Tile: e.predicted}
	}

	for i, e := range s.entries {
		if !s.totalMap.Has(e.entity) {
			continue
		}
		total := s.totalMap.Get(e.entity)
		if total.Value.IsZero() {
			continue
		}

		origin := CastOrigin{Tile: e.current, Ticker: e.ticker}
		var (
			minDist float32
			found   bool
		)
		// First pass: nearest obstruction along the path.
		for h := range Cast(origin, total.Value, s.stretch, candidates, true) {
			if h.Data == i {
				continue
			}
			if !found || h.Distance < minDist {
				minDist, found = h.Distance, true
			}
		}
		if !found {
			continue
		}
		if maxRange := s.stretch.ScaleVec(total.Value).Length() * dt; minDist > maxRange {
			continue
		}

		// Second pass: merge every obstruction tied for nearest.
		var (
			blockedNeg tilegrid.BVec3
			blockedPos tilegrid.BVec3
			others     []ecs.Entity
			hitTile    tilegrid.IVec3
		)
		for h := range Cast(origin, total.Value, s.stretch, candidates, true) {
			if h.Data == i || h.Distance > minDist+distEpsilon {
				continue
			}
			other := s.entries[h.Data]
			blockedNeg = blockedNeg.Or(other.constraints.NegSolid)
			blockedPos = blockedPos.Or(other.constraints.PosSolid)
			others = append(others, other.entity)
			hitTile = h.Tile
		}

		sign := total.Value.Sign()
		canceled := tilegrid.BVec3{
			X: (sign.X > 0 && blockedNeg.X) || (sign.X < 0 && blockedPos.X),
			Y: (sign.Y > 0 && blockedNeg.Y) || (sign.Y < 0 && blockedPos.Y),
			Z: (sign.Z > 0 && blockedNeg.Z) || (sign.Z < 0 && blockedPos.Z),
		}

		col := s.colliderMap.Get(e.entity)
		col.Collision = &components.EntityCollision{
			Tile:    hitTile,
			Blocked: canceled,
			Others:  others,
		}

		if !canceled.Any() {
			continue
		}
		if canceled.X {
			total.Value.X = 0
			stats.Blocked++
		}
		if canceled.Y {
			total.Value.Y = 0
			stats.Blocked++
		}
		if canceled.Z {
			total.Value.Z = 0
			stats.Blocked++
		}
		if s.relMap.Has(e.entity) {
			rel := s.relMap.Get(e.entity)
			if canceled.X {
				rel.Value.X = 0
			}
			if canceled.Y {
				rel.Value.Y = 0
			}
			if canceled.Z {
				rel.Value.Z = 0
			}
		}
	}

	return stats
}
