package segregation

import (
	"image/color"
	"math"
)

// Palette exposes the colours used for rendering the world: index 0 is
// the vacant colour, indices 1..AgentTypes map to the agent type tags in
// the display buffer.
func (w *World) Palette() []color.RGBA {
	return BuildPalette(w.cfg.AgentTypes)
}

// BuildPalette returns a near-black vacant colour followed by one hue per
// agent type, spread evenly around the colour wheel.
func BuildPalette(types int) []color.RGBA {
	palette := make([]color.RGBA, types+1)
	palette[0] = color.RGBA{R: 18, G: 18, B: 18, A: 255}
	for t := 0; t < types; t++ {
		hue := float64(t) / float64(types) * 360
		palette[t+1] = hsvToRGBA(hue, 0.55, 0.90)
	}
	return palette
}

func hsvToRGBA(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
