package systems

import (
	"iter"

	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// distEpsilon is the slack used when comparing world-space cast distances.
// Hits closer together than this are treated as equally distant.
const distEpsilon = 1e-4

// Candidate pairs caller data with the tile it occupies, for casting.
type Candidate[D any] struct {
	Data D
	Tile tilegrid.IVec3
}

// Hit is one candidate lying on a cast ray.
type Hit[D any] struct {
	Data D
	Tile tilegrid.IVec3
	// Distance from the cast origin to the candidate, in world units.
	Distance float32
}

// CastOrigin is where a tile cast starts: a tile plus the sub-tile residual
// already buffered in the entity's ticker.
type CastOrigin struct {
	Tile   tilegrid.IVec3
	Ticker tilegrid.Vec3
}

// Cast yields every candidate whose tile lies on the ray from origin along
// dir. The sequence is lazy, makes one pass over candidates per iteration,
// mutates nothing, and can be re-ranged freely.
//
// The direction is snapped to whole-tile steps (per-axis truncation toward
// zero) when that leaves a nonzero vector, so rays follow the discrete
// lattice; purely sub-tile directions are used as given. A candidate on the
// origin tile is reported at distance zero only when includeOrigin is set.
// Every other candidate is accepted when projecting its straight-line
// distance along the ray lands, rounded to the nearest tile, back on the
// candidate's tile; anything off the ray is skipped silently.
func Cast[D any](
	origin CastOrigin,
	dir tilegrid.Vec3,
	stretch tilegrid.Stretch,
	candidates []Candidate[D],
	includeOrigin bool,
) iter.Seq[Hit[D]] {
	if snapped := dir.Trunc(); !snapped.IsZero() {
		dir = snapped.Vec3()
	}

	rayOrigin := stretch.World(origin.Tile).Add(stretch.ScaleVec(origin.Ticker))
	rayDir := stretch.ScaleVec(dir).Normalize()

	return func(yield func(Hit[D]) bool) {
		for _, c := range candidates {
			if c.Tile == origin.Tile {
				if includeOrigin && !yield(Hit[D]{Data: c.Data, Tile: c.Tile}) {
					return
				}
				continue
			}

			tileWorld := stretch.World(c.Tile)
			distance := rayOrigin.Distance(tileWorld)
			projected := rayOrigin.Add(rayDir.Scale(distance))
			projTile := tilegrid.Vec3{
				X: projected.X / float32(stretch.X),
				Y: projected.Y / float32(stretch.Y),
				Z: projected.Z,
			}.Round()

			if projTile != c.Tile {
				continue
			}
			if !yield(Hit[D]{Data: c.Data, Tile: c.Tile, Distance: distance}) {
				return
			}
		}
	}
}
