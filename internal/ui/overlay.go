//go:build ebiten

package ui

import (
	"image/color"

	"sandflow/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type tierProvider interface {
	ChunkTiers() ([]uint8, int, int)
	ChunkPixelSize() int
}

type focusProvider interface {
	Focus() (int, int)
}

// Overlay tints each chunk by its scheduling tier so the warm/idle/frozen
// partition is visible while the sim runs. Toggled with T.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool

	pixel *ebiten.Image
}

// NewOverlay constructs a tier overlay for the provided simulation.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale < 1 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update processes overlay key toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.show = !o.show
	}
}

// tier values mirror sand.Tier: 0 frozen, 1 idle, 2 full.
var tierTints = []color.RGBA{
	{R: 90, G: 120, B: 220, A: 70},
	{R: 230, G: 200, B: 60, A: 55},
	{R: 0, G: 0, B: 0, A: 0},
}

// Draw paints the tier tints and a focus marker over the simulation view.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(tierProvider)
	if !ok {
		return
	}
	tiers, cw, ch := provider.ChunkTiers()
	if cw == 0 || ch == 0 {
		return
	}
	span := float64(provider.ChunkPixelSize() * o.scale)

	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			tier := tiers[cy*cw+cx]
			if int(tier) >= len(tierTints) {
				continue
			}
			tint := tierTints[tier]
			if tint.A == 0 {
				continue
			}
			o.fillRect(screen, float64(cx)*span, float64(cy)*span, span, span, tint)
		}
	}

	if fp, ok := o.sim.(focusProvider); ok {
		fx, fy := fp.Focus()
		border := color.RGBA{R: 250, G: 250, B: 250, A: 200}
		x := float64(fx) * span
		y := float64(fy) * span
		o.fillRect(screen, x, y, span, 1, border)
		o.fillRect(screen, x, y+span-1, span, 1, border)
		o.fillRect(screen, x, y, 1, span, border)
		o.fillRect(screen, x+span-1, y, 1, span, border)
	}
}

func (o *Overlay) fillRect(dst *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(o.pixel, op)
}
