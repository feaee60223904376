package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Renderer draws the themed primitives shared by the HUD and the console.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with a border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawHeader draws a title line and returns the y below it.
func (r *Renderer) DrawHeader(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.HeaderFontSize+4, rl.White)
	return y + r.Theme.LineHeight + 9
}

// DrawLabel draws one line of muted text and returns the y below it.
func (r *Renderer) DrawLabel(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	return y + r.Theme.LineHeight + 4
}

// DrawStatus draws an emphasized status line and returns the y below it.
func (r *Renderer) DrawStatus(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 4
}
