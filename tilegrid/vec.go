package tilegrid

import (
	"fmt"
	"math"
)

// Vec3 is a position or velocity in continuous world space.
type Vec3 struct {
	X, Y, Z float32
}

// IVec3 is a discrete tile coordinate.
type IVec3 struct {
	X, Y, Z int32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance returns the euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Trunc returns v with each component truncated toward zero.
func (v Vec3) Trunc() IVec3 {
	return IVec3{int32(v.X), int32(v.Y), int32(v.Z)}
}

// Round returns the nearest tile coordinate to v.
func (v Vec3) Round() IVec3 {
	return IVec3{
		int32(math.Round(float64(v.X))),
		int32(math.Round(float64(v.Y))),
		int32(math.Round(float64(v.Z))),
	}
}

// Sign returns the per-axis sign of v as -1, 0, or 1.
func (v Vec3) Sign() IVec3 {
	return IVec3{signf(v.X), signf(v.Y), signf(v.Z)}
}

// String formats v as "[x, y, z]".
func (v Vec3) String() string {
	return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}

// Add returns t + o.
func (t IVec3) Add(o IVec3) IVec3 {
	return IVec3{t.X + o.X, t.Y + o.Y, t.Z + o.Z}
}

// Sub returns t - o.
func (t IVec3) Sub(o IVec3) IVec3 {
	return IVec3{t.X - o.X, t.Y - o.Y, t.Z - o.Z}
}

// Vec3 converts t to continuous coordinates without grid scaling.
func (t IVec3) Vec3() Vec3 {
	return Vec3{float32(t.X), float32(t.Y), float32(t.Z)}
}

// IsZero reports whether every component is zero.
func (t IVec3) IsZero() bool {
	return t.X == 0 && t.Y == 0 && t.Z == 0
}

// String formats t as "[x, y, z]".
func (t IVec3) String() string {
	return fmt.Sprintf("[%d, %d, %d]", t.X, t.Y, t.Z)
}

// BVec3 is a per-axis boolean mask.
type BVec3 struct {
	X, Y, Z bool
}

// Or returns the per-axis union of b and o.
func (b BVec3) Or(o BVec3) BVec3 {
	return BVec3{b.X || o.X, b.Y || o.Y, b.Z || o.Z}
}

// Any reports whether at least one axis is set.
func (b BVec3) Any() bool {
	return b.X || b.Y || b.Z
}

func signf(f float32) int32 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
