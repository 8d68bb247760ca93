//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"sandflow/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the simulation view and
// lets the user adjust the exposed controls: Tab selects, -/= nudge.
type HUD struct {
	sim     core.Sim
	width   int
	offsetX int

	controls []core.ParameterControl
	selected int

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	pixel *ebiten.Image
}

// NewHUD constructs a HUD of the given panel width, anchored at offsetX.
func NewHUD(sim core.Sim, width, offsetX int) *HUD {
	h := &HUD{sim: sim, width: width, offsetX: offsetX}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = provider.ParameterControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update processes control selection and adjustment keys.
func (h *HUD) Update() {
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		dir = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		dir = 1
	}
	if dir != 0 {
		h.adjust(h.controls[h.selected], dir)
	}
}

func (h *HUD) adjust(ctrl core.ParameterControl, dir int) {
	current, ok := h.currentValue(ctrl.Key)
	if !ok {
		return
	}
	next := current + ctrl.Step*float64(dir)
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			h.intSetter.SetIntParameter(ctrl.Key, int(next))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil {
			h.floatSetter.SetFloatParameter(ctrl.Key, next)
		}
	}
}

func (h *HUD) currentValue(key string) (float64, bool) {
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return 0, false
	}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			if p.Key != key {
				continue
			}
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// Draw renders the panel background, parameter groups, and control cursor.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.width <= 0 {
		return
	}
	bounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(h.width), float64(bounds.Dy()))
	op.GeoM.Translate(float64(h.offsetX), 0)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 18, G: 18, B: 24, A: 235})
	screen.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	x := h.offsetX + 8
	y := 16

	text.Draw(screen, h.sim.Name(), face, x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	y += 20

	provider, ok := h.sim.(parameterProvider)
	if ok {
		for _, group := range provider.Parameters().Groups {
			text.Draw(screen, group.Name, face, x, y, color.RGBA{R: 170, G: 190, B: 230, A: 255})
			y += 14
			for _, p := range group.Params {
				line := fmt.Sprintf("%s: %s", p.Label, p.Value)
				text.Draw(screen, line, face, x+6, y, color.RGBA{R: 210, G: 210, B: 210, A: 255})
				y += 13
			}
			y += 6
		}
	}

	if len(h.controls) > 0 {
		text.Draw(screen, "Controls (Tab, -/=)", face, x, y, color.RGBA{R: 170, G: 230, B: 190, A: 255})
		y += 14
		for i, ctrl := range h.controls {
			marker := "  "
			if i == h.selected {
				marker = "> "
			}
			value := "--"
			if v, ok := h.currentValue(ctrl.Key); ok {
				if ctrl.Type == core.ParamTypeInt {
					value = strconv.Itoa(int(v))
				} else {
					value = strconv.FormatFloat(v, 'f', 4, 64)
				}
			}
			text.Draw(screen, marker+ctrl.Label+" = "+value, face, x+6, y, color.RGBA{R: 210, G: 210, B: 210, A: 255})
			y += 13
		}
	}
}
