package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxScrollback bounds console history so long sessions don't grow without
// limit.
const maxScrollback = 200

// ConsoleOverlay is the developer console: a text input line with a
// scrollback of dispatched commands and their output.
type ConsoleOverlay struct {
	renderer *Renderer

	open       bool
	input      []rune
	scrollback []string
}

// NewConsoleOverlay creates a closed console overlay.
func NewConsoleOverlay() *ConsoleOverlay {
	return &ConsoleOverlay{renderer: NewRenderer()}
}

// IsOpen reports whether the console is accepting input.
func (c *ConsoleOverlay) IsOpen() bool {
	return c.open
}

// Toggle opens or closes the console, clearing any half-typed input.
func (c *ConsoleOverlay) Toggle() {
	c.open = !c.open
	c.input = c.input[:0]
}

// HandleInput consumes typed characters and editing keys. When a line is
// submitted it is passed to dispatch and the result lands in the scrollback.
func (c *ConsoleOverlay) HandleInput(dispatch func(line string) string) {
	if !c.open {
		return
	}

	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if ch >= 32 {
			c.input = append(c.input, ch)
		}
	}

	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.input) > 0 {
		c.input = c.input[:len(c.input)-1]
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		line := strings.TrimSpace(string(c.input))
		c.input = c.input[:0]
		if line == "" {
			return
		}
		c.append("> " + line)
		for _, out := range strings.Split(dispatch(line), "\n") {
			c.append(out)
		}
	}
}

// append adds a line to the scrollback, dropping the oldest past the cap.
func (c *ConsoleOverlay) append(line string) {
	c.scrollback = append(c.scrollback, line)
	if len(c.scrollback) > maxScrollback {
		c.scrollback = c.scrollback[len(c.scrollback)-maxScrollback:]
	}
}

// Draw renders the console over the top half of the screen.
func (c *ConsoleOverlay) Draw(screenWidth, screenHeight int32) {
	if !c.open {
		return
	}

	r := c.renderer
	height := screenHeight / 2
	r.DrawPanel(0, 0, screenWidth, height)

	lineHeight := r.Theme.LineHeight
	inputY := height - lineHeight - r.Theme.Padding

	// Scrollback above the input line, newest at the bottom
	visible := int((inputY - r.Theme.Padding) / lineHeight)
	start := len(c.scrollback) - visible
	if start < 0 {
		start = 0
	}
	y := inputY - lineHeight*int32(len(c.scrollback)-start)
	for _, line := range c.scrollback[start:] {
		r.DrawLabel(r.Theme.Padding, y, line)
		y += lineHeight
	}

	// Input line
	rl.DrawRectangle(0, inputY-2, screenWidth, lineHeight+4, r.Theme.InputBg)
	rl.DrawText("> "+string(c.input)+"_", r.Theme.Padding, inputY, r.Theme.FontSize, r.Theme.InputText)
}
