package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette (Tokyo Night)
var (
	colorBackground = colorful.Color{R: 26 / 255.0, G: 27 / 255.0, B: 38 / 255.0}
	colorText       = colorful.Color{R: 192 / 255.0, G: 202 / 255.0, B: 245 / 255.0}
	colorDim        = colorful.Color{R: 86 / 255.0, G: 95 / 255.0, B: 137 / 255.0}
	colorHealthy    = colorful.Color{R: 158 / 255.0, G: 206 / 255.0, B: 106 / 255.0}
	colorWounded    = colorful.Color{R: 247 / 255.0, G: 118 / 255.0, B: 142 / 255.0}
	colorDie        = colorful.Color{R: 224 / 255.0, G: 175 / 255.0, B: 104 / 255.0}
	colorAccent     = colorful.Color{R: 122 / 255.0, G: 162 / 255.0, B: 247 / 255.0}
)

// particleColors is the start color of each particle id, unknown ids use colorText
var particleColors = map[string]colorful.Color{
	"spark": {R: 1, G: 0.85, B: 0.3},
	"blood": {R: 0.85, G: 0.1, B: 0.15},
	"star":  {R: 1, G: 1, B: 0.6},
	"dust":  {R: 0.6, G: 0.55, B: 0.45},
}

var particleGlyphs = map[string]rune{
	"spark": '*',
	"blood": '•',
	"star":  '✦',
	"dust":  '.',
}

// toTcell converts a colorful color to a tcell RGB color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// style returns a foreground style over the arena background
func style(fg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(colorBackground))
}

// healthColor blends from wounded to healthy by the remaining ratio
func healthColor(ratio float64) colorful.Color {
	return colorWounded.BlendLab(colorHealthy, clamp01(ratio))
}

// fade blends c toward the background as t goes from 0 to 1
func fade(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorBackground, clamp01(t))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
