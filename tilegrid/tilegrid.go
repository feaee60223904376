// Package tilegrid maps between the continuous world space entities are
// rendered in and the discrete tile space the simulation reasons in.
//
// A Stretch defines the world-space dimensions of a single tile. A position
// is "on grid" when its x and y are exact multiples of the stretch and its z
// is a whole number; z tiles are always one world unit tall. There is one
// Stretch per world, fixed at startup.
package tilegrid

import (
	"fmt"
	"math"
)

// maxExact is the largest tile coordinate magnitude that converts to a
// float32 world coordinate without precision loss.
const maxExact = 1 << 24

// Stretch is the per-world tile cell size. Z cells are always one unit.
type Stretch struct {
	X, Y uint8
}

// NewStretch returns a Stretch with the given x and y cell sizes.
func NewStretch(x, y uint8) Stretch {
	return Stretch{X: x, Y: y}
}

// Closest returns the tile whose cell contains or is nearest to the world
// position t. This is an indexing operation, not a containment test; it
// always succeeds.
func (s Stretch) Closest(t Vec3) IVec3 {
	return IVec3{
		X: int32(t.X) / int32(s.X),
		Y: int32(t.Y) / int32(s.Y),
		Z: int32(t.Z),
	}
}

// Tile converts an on-grid world position to its tile coordinate. It fails
// with an *OffGridError if t is not integral or x, y are not exact multiples
// of the stretch; call OffGridError.ToClosest to recover.
func (s Stretch) Tile(t Vec3) (IVec3, error) {
	rounded := Vec3{
		float32(math.Round(float64(t.X))),
		float32(math.Round(float64(t.Y))),
		float32(math.Round(float64(t.Z))),
	}
	if rounded != t || int32(t.X)%int32(s.X) != 0 || int32(t.Y)%int32(s.Y) != 0 {
		return IVec3{}, &OffGridError{Position: t, Stretch: s}
	}
	return s.Closest(t), nil
}

// World converts a tile coordinate to the world position of that tile.
//
// Panics if any coordinate is outside the range float32 can represent
// exactly; a world that large is beyond what the engine supports.
func (s Stretch) World(t IVec3) Vec3 {
	if abs32(t.X) >= maxExact || abs32(t.Y) >= maxExact || abs32(t.Z) >= maxExact {
		panic(fmt.Sprintf("tilegrid: tile %v exceeds exact float32 range", t))
	}
	return Vec3{
		X: float32(t.X) * float32(s.X),
		Y: float32(t.Y) * float32(s.Y),
		Z: float32(t.Z),
	}
}

// ScaleVec scales a tile-space vector into world space component-wise.
func (s Stretch) ScaleVec(v Vec3) Vec3 {
	return Vec3{v.X * float32(s.X), v.Y * float32(s.Y), v.Z}
}

// OffGridError reports a world position that does not lie on the tile grid.
type OffGridError struct {
	Position Vec3
	Stretch  Stretch
}

func (e *OffGridError) Error() string {
	return fmt.Sprintf("position %v is not on the (%d,%d) grid",
		e.Position, e.Stretch.X, e.Stretch.Y)
}

// ToClosest returns the nearest tile to the off-grid position, for callers
// that want to recover rather than fail.
func (e *OffGridError) ToClosest() IVec3 {
	return e.Stretch.Closest(e.Position)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
