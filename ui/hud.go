package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int32
	FPS            int32
	Paused         bool
	EntityCount    int
	ColliderCount  int
	PlayerTile     string
	FocusZ         int32
	StepsPerUpdate int
	ScreenWidth    int32
	ScreenHeight   int32
}

// HUDResult carries control state changed through the HUD widgets.
type HUDResult struct {
	Paused         bool
	StepsPerUpdate int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD and its widgets, returning any control changes made
// through them this frame.
func (h *HUD) Draw(data HUDData) HUDResult {
	r := h.renderer
	x := r.Theme.Padding
	y := r.DrawHeader(x, 10, data.Title)

	y = r.DrawLabel(x, y, fmt.Sprintf("Tick: %d | FPS: %d | Entities: %d | Colliders: %d",
		data.Tick, data.FPS, data.EntityCount, data.ColliderCount))
	y = r.DrawLabel(x, y, fmt.Sprintf("Player: %s | Deck: %d | Speed: %dx",
		data.PlayerTile, data.FocusZ, data.StepsPerUpdate))

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	r.DrawStatus(x, y, statusText)

	result := HUDResult{Paused: data.Paused, StepsPerUpdate: data.StepsPerUpdate}

	// Widget strip along the top right
	buttonX := float32(data.ScreenWidth) - 260
	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: buttonX, Y: 10, Width: 80, Height: 24}, pauseLabel) {
		result.Paused = !result.Paused
	}

	speed := gui.SliderBar(
		rl.Rectangle{X: buttonX + 90, Y: 10, Width: 120, Height: 24},
		"", fmt.Sprintf("%dx", data.StepsPerUpdate),
		float32(data.StepsPerUpdate), 1, 10,
	)
	result.StepsPerUpdate = int(speed + 0.5)
	if result.StepsPerUpdate < 1 {
		result.StepsPerUpdate = 1
	}

	return result
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
