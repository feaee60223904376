package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ZBemo/simple-pirate-sim/components"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
	"github.com/ZBemo/simple-pirate-sim/ui"
)

// Tile colors by collider archetype.
var (
	seaColor    = rl.Color{R: 18, G: 38, B: 60, A: 255}
	wallColor   = rl.Color{R: 120, G: 96, B: 60, A: 255}
	floorColor  = rl.Color{R: 168, G: 136, B: 88, A: 255}
	playerColor = rl.Color{R: 240, G: 220, B: 90, A: 255}
	mobileColor = rl.Color{R: 150, G: 170, B: 190, A: 255}
)

// viewPos maps a world position into camera space. World +y points north, so
// it flips to screen-up.
func viewPos(t tilegrid.Vec3) (float32, float32) {
	return t.X, -t.Y
}

// Draw renders the world and HUD.
func (g *Game) Draw() {
	// Camera tracks the player between frames
	vx, vy := viewPos(g.transformMap.Get(g.player).Translation)
	g.camera.Follow(vx, vy)

	rl.BeginDrawing()
	rl.ClearBackground(seaColor)

	g.drawTiles()
	g.drawEntityCollision(g.colliderMap.Get(g.player).Collision)
	g.drawHUD()
	g.consoleUI.Draw(int32(g.screenWidth), int32(g.screenHeight))

	rl.EndDrawing()
}

// drawTiles renders every transform-bearing entity as a colored cell at its
// tile, layered by z around the player's level. Tiles above the focus level
// are hidden; lower decks dim with depth.
func (g *Game) drawTiles() {
	focusZ := g.stretch.Closest(g.transformMap.Get(g.player).Translation).Z
	cellW := float32(g.stretch.X) * g.camera.Zoom
	cellH := float32(g.stretch.Y) * g.camera.Zoom
	halfExtent := float32(g.stretch.X)
	if float32(g.stretch.Y) > halfExtent {
		halfExtent = float32(g.stretch.Y)
	}

	// Lower z draws first so upper decks paint over the hold.
	for layer := focusZ - 3; layer <= focusZ; layer++ {
		query := g.transformFilter.Query()
		for query.Next() {
			entity := query.Entity()
			tr := query.Get()
			tile := g.stretch.Closest(tr.Translation)
			if tile.Z != layer {
				continue
			}

			vx, vy := viewPos(tr.Translation)
			if !g.camera.IsVisible(vx, vy, halfExtent) {
				continue
			}

			color := mobileColor
			if entity == g.player {
				color = playerColor
			} else if g.colliderMap.Has(entity) {
				if g.colliderMap.Get(entity).Constraints.PosSolid.X {
					color = wallColor
				} else {
					color = floorColor
				}
			}

			// Dim by depth below the focus level
			if depth := focusZ - layer; depth > 0 {
				fade := 1 - 0.25*float32(depth)
				color.R = uint8(float32(color.R) * fade)
				color.G = uint8(float32(color.G) * fade)
				color.B = uint8(float32(color.B) * fade)
			}

			sx, sy := g.camera.WorldToScreen(vx, vy)
			rl.DrawRectangle(int32(sx), int32(sy-cellH), int32(cellW), int32(cellH), color)
		}
	}
}

// drawHUD renders the status line and widgets, applying any control changes
// made through them.
func (g *Game) drawHUD() {
	colliderCount := 0
	colliders := g.colliderFilter.Query()
	for colliders.Next() {
		colliderCount++
	}
	entityCount := 0
	transforms := g.transformFilter.Query()
	for transforms.Next() {
		entityCount++
	}

	playerTile := g.stretch.Closest(g.transformMap.Get(g.player).Translation)

	result := g.hud.Draw(ui.HUDData{
		Title:          "Simple Pirate Sim",
		Tick:           g.tick,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		EntityCount:    entityCount,
		ColliderCount:  colliderCount,
		PlayerTile:     fmt.Sprint(playerTile),
		FocusZ:         playerTile.Z,
		StepsPerUpdate: g.stepsPerUpdate,
		ScreenWidth:    int32(g.screenWidth),
		ScreenHeight:   int32(g.screenHeight),
	})
	g.paused = result.Paused
	g.stepsPerUpdate = result.StepsPerUpdate

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"WAXD+QEZC: Move | SPACE: Pause | < >: Speed | Arrows: Pan | +/-: Zoom | /: Console")
}

// drawEntityCollision is a debug aid: outlines the most recent collision
// tile recorded on an entity.
func (g *Game) drawEntityCollision(col *components.EntityCollision) {
	if col == nil {
		return
	}
	world := g.stretch.World(col.Tile)
	vx, vy := viewPos(world)
	sx, sy := g.camera.WorldToScreen(vx, vy)
	cellW := float32(g.stretch.X) * g.camera.Zoom
	cellH := float32(g.stretch.Y) * g.camera.Zoom
	rl.DrawRectangleLines(int32(sx), int32(sy-cellH), int32(cellW), int32(cellH), rl.Red)
}
