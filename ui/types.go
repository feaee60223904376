// Package ui renders the HUD and the developer console overlay.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	InputBg        rl.Color
	InputText      rl.Color
	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		InputBg:        rl.Color{R: 10, G: 12, B: 15, A: 255},
		InputText:      rl.Color{R: 180, G: 220, B: 180, A: 255},
		Padding:        10,
		LineHeight:     16,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
