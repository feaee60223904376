package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

type collisionWorld struct {
	w        *ecs.World
	mover    *ecs.Map5[components.Collider, components.Transform, components.RelativeVelocity, components.TotalVelocity, components.Ticker]
	obstacle *ecs.Map2[components.Collider, components.Transform]
	totalMap *ecs.Map[components.TotalVelocity]
	relMap   *ecs.Map[components.RelativeVelocity]
	colMap   *ecs.Map[components.Collider]
}

func newCollisionWorld() *collisionWorld {
	w := ecs.NewWorld()
	return &collisionWorld{
		w:        w,
		mover:    ecs.NewMap5[components.Collider, components.Transform, components.RelativeVelocity, components.TotalVelocity, components.Ticker](w),
		obstacle: ecs.NewMap2[components.Collider, components.Transform](w),
		totalMap: ecs.NewMap[components.TotalVelocity](w),
		relMap:   ecs.NewMap[components.RelativeVelocity](w),
		colMap:   ecs.NewMap[components.Collider](w),
	}
}

func (cw *collisionWorld) spawnMover(at, vel tilegrid.Vec3) ecs.Entity {
	col := components.NewCollider(components.Entity)
	return cw.mover.NewEntity(
		&col,
		&components.Transform{Translation: at},
		&components.RelativeVelocity{Value: vel},
		&components.TotalVelocity{Value: vel},
		&components.Ticker{},
	)
}

func (cw *collisionWorld) spawnObstacle(at tilegrid.Vec3, c components.Constraints) ecs.Entity {
	col := components.NewCollider(c)
	return cw.obstacle.NewEntity(&col, &components.Transform{Translation: at})
}

func TestWallBlocksDiagonal(t *testing.T) {
	cw := newCollisionWorld()
	mover := cw.spawnMover(tilegrid.Vec3{}, tilegrid.Vec3{X: 1, Y: 1})
	wall := cw.spawnObstacle(tilegrid.Vec3{X: 1, Y: 1}, components.Wall)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	stats := sys.Update(cw.w, 1)

	if got := cw.totalMap.Get(mover).Value; !got.IsZero() {
		t.Errorf("total after wall hit = %v, want zero", got)
	}
	if got := cw.relMap.Get(mover).Value; !got.IsZero() {
		t.Errorf("relative after wall hit = %v, want zero", got)
	}
	if stats.Conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", stats.Conflicts)
	}
	if stats.Blocked != 2 {
		t.Errorf("blocked axes = %d, want 2", stats.Blocked)
	}

	ev := cw.colMap.Get(mover).Collision
	if ev == nil {
		t.Fatal("mover has no collision record")
	}
	if want := (tilegrid.BVec3{X: true, Y: true}); ev.Blocked != want {
		t.Errorf("blocked mask = %v, want %v", ev.Blocked, want)
	}
	if len(ev.Others) != 1 || ev.Others[0] != wall {
		t.Errorf("others = %v, want [%v]", ev.Others, wall)
	}

	// Keep pushing diagonally across further ticks; the mover must never
	// end up on the wall's tile.
	movement := NewMovementSystem(cw.w, tilegrid.NewStretch(1, 1))
	trMap := ecs.NewMap[components.Transform](cw.w)
	wallTile := tilegrid.IVec3{X: 1, Y: 1}
	for tick := 0; tick < 5; tick++ {
		cw.relMap.Get(mover).Value = tilegrid.Vec3{X: 1, Y: 1}
		cw.totalMap.Get(mover).Value = tilegrid.Vec3{X: 1, Y: 1}
		sys.Update(cw.w, 1)
		movement.Update(cw.w, 1)

		moverTile := tilegrid.NewStretch(1, 1).Closest(trMap.Get(mover).Translation)
		if moverTile == wallTile {
			t.Fatalf("tick %d: mover reached the wall tile %v", tick, wallTile)
		}
	}
}

func TestFloorBlocksOnlyFromAbove(t *testing.T) {
	cw := newCollisionWorld()
	faller := cw.spawnMover(tilegrid.Vec3{Z: 1}, tilegrid.Vec3{Z: -1})
	riser := cw.spawnMover(tilegrid.Vec3{X: 3, Z: -1}, tilegrid.Vec3{Z: 1})
	cw.spawnObstacle(tilegrid.Vec3{}, components.Floor)
	cw.spawnObstacle(tilegrid.Vec3{X: 3}, components.Floor)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	sys.Update(cw.w, 1)

	if got := cw.totalMap.Get(faller).Value; !got.IsZero() {
		t.Errorf("falling entity total = %v, want zero (floor blocks from above)", got)
	}
	if got, want := cw.totalMap.Get(riser).Value, (tilegrid.Vec3{Z: 1}); got != want {
		t.Errorf("rising entity total = %v, want %v (floor is passable from below)", got, want)
	}
}

func TestEntityBlocksVertically(t *testing.T) {
	cw := newCollisionWorld()
	faller := cw.spawnMover(tilegrid.Vec3{Z: 1}, tilegrid.Vec3{Z: -1})
	cw.spawnObstacle(tilegrid.Vec3{}, components.Entity)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	sys.Update(cw.w, 1)

	if got := cw.totalMap.Get(faller).Value; !got.IsZero() {
		t.Errorf("total = %v, want zero (entities are solid on all planes)", got)
	}
}

func TestSensorRecordsWithoutBlocking(t *testing.T) {
	cw := newCollisionWorld()
	mover := cw.spawnMover(tilegrid.Vec3{}, tilegrid.Vec3{X: 1})
	sensor := cw.spawnObstacle(tilegrid.Vec3{X: 1}, components.Sensor)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	stats := sys.Update(cw.w, 1)

	if got, want := cw.totalMap.Get(mover).Value, (tilegrid.Vec3{X: 1}); got != want {
		t.Errorf("total = %v, want %v (sensors never block)", got, want)
	}
	if stats.Blocked != 0 {
		t.Errorf("blocked axes = %d, want 0", stats.Blocked)
	}

	ev := cw.colMap.Get(mover).Collision
	if ev == nil {
		t.Fatal("sensor overlap not recorded")
	}
	if len(ev.Others) != 1 || ev.Others[0] != sensor {
		t.Errorf("others = %v, want [%v]", ev.Others, sensor)
	}
	if ev.Blocked.Any() {
		t.Errorf("blocked mask = %v, want all false", ev.Blocked)
	}
}

func TestDistantObstructionIgnored(t *testing.T) {
	cw := newCollisionWorld()
	mover := cw.spawnMover(tilegrid.Vec3{}, tilegrid.Vec3{X: 1})
	cw.spawnObstacle(tilegrid.Vec3{X: 5}, components.Wall)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	sys.Update(cw.w, 1.0/60)

	if got, want := cw.totalMap.Get(mover).Value, (tilegrid.Vec3{X: 1}); got != want {
		t.Errorf("total = %v, want %v (wall out of reach this tick)", got, want)
	}
	if cw.colMap.Get(mover).Collision != nil {
		t.Error("collision recorded for obstruction out of reach")
	}
}

func TestCollisionRecordClearedEachTick(t *testing.T) {
	cw := newCollisionWorld()
	mover := cw.spawnMover(tilegrid.Vec3{}, tilegrid.Vec3{X: 1})
	cw.spawnObstacle(tilegrid.Vec3{X: 1}, components.Wall)

	sys := NewCollisionSystem(cw.w, tilegrid.NewStretch(1, 1))
	sys.Update(cw.w, 1)
	if cw.colMap.Get(mover).Collision == nil {
		t.Fatal("expected collision on first tick")
	}

	// velocity was canceled, second tick has nothing to resolve
	sys.Update(cw.w, 1)
	if cw.colMap.Get(mover).Collision != nil {
		t.Error("stale collision record survived a tick")
	}
}

func TestColliderWithoutTransformPanics(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Collider](w)
	col := components.NewCollider(components.Wall)
	mapper.NewEntity(&col)

	sys := NewCollisionSystem(w, tilegrid.NewStretch(1, 1))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for collider without transform")
		}
	}()
	sys.Update(w, 1)
}
