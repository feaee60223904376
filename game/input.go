package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ZBemo/simple-pirate-sim/config"
	"github.com/ZBemo/simple-pirate-sim/tilegrid"
)

// handleInput processes keyboard input for one frame.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Console toggle: '/' opens, Escape closes. The pending '/' character is
	// drained so it does not land in the input line.
	if !g.consoleUI.IsOpen() && rl.IsKeyPressed(rl.KeySlash) {
		g.consoleUI.Toggle()
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		}
	} else if g.consoleUI.IsOpen() && rl.IsKeyPressed(rl.KeyEscape) {
		g.consoleUI.Toggle()
	}

	if g.consoleUI.IsOpen() {
		// The console swallows all keyboard input while open.
		g.consoleUI.HandleInput(g.registry.Dispatch)
		g.goalMap.Get(g.player).Value = tilegrid.Vec3{}
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handlePlayerInput()
	g.handleCameraInput()
}

// handlePlayerInput maps the 8-direction movement keys onto the player's
// movement goal. The goal clears when no key is held.
func (g *Game) handlePlayerInput() {
	diag := float32(config.Cfg().Player.DiagonalFactor)

	var dir tilegrid.Vec3
	switch {
	case rl.IsKeyDown(rl.KeyW):
		dir = tilegrid.Vec3{Y: 1}
	case rl.IsKeyDown(rl.KeyX):
		dir = tilegrid.Vec3{Y: -1}
	case rl.IsKeyDown(rl.KeyA):
		dir = tilegrid.Vec3{X: -1}
	case rl.IsKeyDown(rl.KeyD):
		dir = tilegrid.Vec3{X: 1}
	case rl.IsKeyDown(rl.KeyQ):
		dir = tilegrid.Vec3{X: -diag, Y: diag}
	case rl.IsKeyDown(rl.KeyE):
		dir = tilegrid.Vec3{X: diag, Y: diag}
	case rl.IsKeyDown(rl.KeyZ):
		dir = tilegrid.Vec3{X: -diag, Y: -diag}
	case rl.IsKeyDown(rl.KeyC):
		dir = tilegrid.Vec3{X: diag, Y: -diag}
	}

	walk := g.walkMap.Get(g.player).Value
	g.goalMap.Get(g.player).Value = dir.Scale(walk)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Center(viewPos(g.transformMap.Get(g.player).Translation))
	}
}
