package sand

import (
	"image/color"

	"sandflow/internal/terrain"
)

var sandPalette = buildSandPalette()

// Palette exposes the color palette used for rendering the terrain.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, int(terrain.Silt)+1)
	for i := range palette {
		palette[i] = materialColor(terrain.Material(i))
	}
	return palette
}

func materialColor(m terrain.Material) color.RGBA {
	switch m {
	case terrain.Bedrock:
		return color.RGBA{R: 38, G: 36, B: 42, A: 255}
	case terrain.Rock:
		return color.RGBA{R: 128, G: 126, B: 130, A: 255}
	case terrain.Water:
		return color.RGBA{R: 52, G: 110, B: 210, A: 255}
	case terrain.Sand:
		return color.RGBA{R: 214, G: 184, B: 120, A: 255}
	case terrain.Silt:
		return color.RGBA{R: 162, G: 140, B: 108, A: 255}
	case terrain.Empty:
		fallthrough
	default:
		return color.RGBA{R: 12, G: 12, B: 16, A: 255}
	}
}
