// Package telemetry provides physics health tracking and CSV export.
package telemetry

import "github.com/ZBemo/simple-pirate-sim/tilegrid"

// CollisionRecord is one resolved collision, flattened for CSV export.
type CollisionRecord struct {
	Tick     int32  `csv:"tick"`
	EntityID uint32 `csv:"entity"`
	TileX    int32  `csv:"tile_x"`
	TileY    int32  `csv:"tile_y"`
	TileZ    int32  `csv:"tile_z"`
	BlockedX bool   `csv:"blocked_x"`
	BlockedY bool   `csv:"blocked_y"`
	BlockedZ bool   `csv:"blocked_z"`
	Others   int    `csv:"others"` // entities involved besides the mover
}

// NewCollisionRecord flattens a resolved collision for export.
func NewCollisionRecord(tick int32, entityID uint32, tile tilegrid.IVec3, blocked tilegrid.BVec3, others int) CollisionRecord {
	return CollisionRecord{
		Tick:     tick,
		EntityID: entityID,
		TileX:    tile.X,
		TileY:    tile.Y,
		TileZ:    tile.Z,
		BlockedX: blocked.X,
		BlockedY: blocked.Y,
		BlockedZ: blocked.Z,
		Others:   others,
	}
}
