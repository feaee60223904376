package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// Constraints describe how a collider participates in conflicts: which of
// its half-planes are solid (block motion into them) and which axes it may
// be displaced along to resolve a conflict.
type Constraints struct {
	// PosSolid marks the positive half-plane of each axis solid.
	PosSolid tilegrid.BVec3
	// NegSolid marks the negative half-plane of each axis solid.
	NegSolid tilegrid.BVec3
	// MoveAlong is advisory only; resolution does not consult it yet.
	MoveAlong tilegrid.BVec3
}

// Collider archetypes.
var (
	// Wall is solid on every plane and immovable.
	Wall = Constraints{
		PosSolid: tilegrid.BVec3{X: true, Y: true, Z: true},
		NegSolid: tilegrid.BVec3{X: true, Y: true, Z: true},
	}
	// Floor blocks only motion downward onto it.
	Floor = Constraints{
		PosSolid: tilegrid.BVec3{Z: true},
	}
	// Entity is solid on every plane and movable.
	Entity = Constraints{
		PosSolid:  tilegrid.BVec3{X: true, Y: true, Z: true},
		NegSolid:  tilegrid.BVec3{X: true, Y: true, Z: true},
		MoveAlong: tilegrid.BVec3{X: true, Y: true, Z: true},
	}
	// Sensor never blocks anything.
	Sensor = Constraints{}
)

// EntityCollision describes one resolved conflict, for observability only.
type EntityCollision struct {
	// Tile is the predicted tile the conflict happened at.
	Tile tilegrid.IVec3
	// Blocked marks the axes whose velocity was cancelled.
	Blocked tilegrid.BVec3
	// Others are the entities present at the conflicting tile.
	Others []ecs.Entity
}

// Collider makes an entity participate in collision prediction and
// resolution. Every collider-bearing entity must also have a Transform.
// Constraints are fixed once attached.
type Collider struct {
	Constraints Constraints

	// Collision holds the most recent tick's resolved conflict, or nil.
	// Written by the collision system only.
	Collision *EntityCollision
}

// NewCollider returns a Collider with the given constraints.
func NewCollider(c Constraints) Collider {
	return Collider{Constraints: c}
}
