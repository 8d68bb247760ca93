//go:build ebiten

package app

import (
	"image/color"
	"time"

	"sandflow/internal/core"
	"sandflow/internal/render"
	"sandflow/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type focusController interface {
	Focus() (int, int)
	SetFocus(cx, cy int)
}

// Game adapts a core simulation to the ebiten.Game interface. Rendering runs
// at the display rate; the simulation is paced separately by a FixedStep so
// the tick rate stays tied to the configured TPS, not the frame rate.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	fixed   *core.FixedStep

	palette []color.RGBA

	scale    int
	panel    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.Panel, size.W*cfg.Scale),
		fixed:   core.NewFixedStep(cfg.TPS),
		scale:   cfg.Scale,
		panel:   cfg.Panel,
		seed:    cfg.Seed,
	}
	if provider, ok := sim.(paletteProvider); ok {
		g.palette = provider.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if fc, ok := g.sim.(focusController); ok {
		fx, fy := fc.Focus()
		moved := false
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			fx--
			moved = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			fx++
			moved = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
			fy--
			moved = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
			fy++
			moved = true
		}
		if moved {
			fc.SetFocus(fx, fy)
		}
	}

	g.overlay.Update()
	g.hud.Update()

	step := g.fixed.ShouldStep()
	if g.tickOnce {
		step = true
		g.tickOnce = false
	} else if g.paused {
		step = false
	}
	if step {
		g.sim.Step()
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}
