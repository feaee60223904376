// Package components defines the ECS components of the simulation.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// Name is a display name, used by diagnostics and logging only.
type Name struct {
	Value string
}

// Transform is an entity's continuous world position. The physics engine
// reads it everywhere and mutates it only in whole-tile steps during
// movement finalization.
type Transform struct {
	Translation tilegrid.Vec3
}

// MovementGoal is the velocity an external controller requests for an
// entity, in tiles per second. The engine assumes whoever set the goal has
// validated it.
type MovementGoal struct {
	Value tilegrid.Vec3
}

// Weight scales the gravity term added to an entity's relative velocity
// each tick.
type Weight struct {
	Value float32
}

// MaintainedVelocity persists across ticks and decays toward zero by a
// fixed constant per axis per tick.
type MaintainedVelocity struct {
	Value tilegrid.Vec3
}

// VelocityFromGround marks an entity that borrows the total velocity of
// whatever it stands on, so that standing on a moving deck carries it along.
type VelocityFromGround struct{}

// RelativeVelocity is the velocity an entity generates on its own, in tiles
// per second. Fully overwritten by the velocity system every tick.
type RelativeVelocity struct {
	Value tilegrid.Vec3
}

// TotalVelocity is RelativeVelocity plus the parent's TotalVelocity,
// recursively. Equal to RelativeVelocity for entities without a parent.
// Only meaningful between the velocity and movement phases of a tick.
type TotalVelocity struct {
	Value tilegrid.Vec3
}

// Ticker buffers sub-tile displacement until a whole tile's worth has
// accumulated. Each component stays in (-1, 1) after a tick's flush.
//
// A ticker resets to zero whenever its entity's total velocity is exactly
// zero. That discards sub-tile progress when velocity transiently passes
// through zero; kept for compatibility with established behavior.
type Ticker struct {
	Value tilegrid.Vec3
}

// Parent links an entity to the entity it moves with. The hierarchy must be
// acyclic with exactly one parent per child; the velocity system panics on
// traversal if that is violated.
type Parent struct {
	Entity ecs.Entity
}

// Children lists an entity's direct children for root-to-leaf traversal.
type Children struct {
	All []ecs.Entity
}

// WalkSpeed is a controlled entity's movement-goal magnitude in tiles per
// second.
type WalkSpeed struct {
	Value float32
}

// PlayerController marks the entity driven by keyboard input.
type PlayerController struct{}
