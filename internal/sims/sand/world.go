package sand

import (
	"sandflow/internal/core"
	"sandflow/internal/terrain"

	pcore "sandflow/pkg/core"
)

// World wires a terrain store and a chunk manager into a runnable sim: it
// seeds destructible terrain from the seed, derives a per-tick priority map
// from a movable focus chunk, and hands it to the manager.
type World struct {
	cfg Config

	chunksX int
	chunksY int

	store *terrain.Store
	mgr   *Manager

	focusX int
	focusY int

	priorities map[ChunkKey]float64
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand world configured from the provided options.
// Dimensions are rounded up to whole chunks so the horizontal wrap lands on
// a chunk boundary.
func NewWithConfig(cfg Config) *World {
	cfg.Params = cfg.Params.normalized()
	cs := cfg.Params.ChunkSize
	if cfg.Width <= 0 {
		cfg.Width = cs
	}
	if cfg.Height <= 0 {
		cfg.Height = cs
	}
	chunksX := (cfg.Width + cs - 1) / cs
	chunksY := (cfg.Height + cs - 1) / cs
	cfg.Width = chunksX * cs
	cfg.Height = chunksY * cs

	store := terrain.NewStore(cfg.Width, cfg.Height, terrain.DefaultRegistry())
	w := &World{
		cfg:        cfg,
		chunksX:    chunksX,
		chunksY:    chunksY,
		store:      store,
		mgr:        NewManager(cfg.Params, store),
		focusX:     chunksX / 2,
		focusY:     chunksY / 2,
		priorities: make(map[ChunkKey]float64, chunksX*chunksY),
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions in cells.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the terrain material buffer for rendering.
func (w *World) Cells() []uint8 { return w.store.Cells() }

// Store exposes the terrain collaborator.
func (w *World) Store() *terrain.Store { return w.store }

// Manager exposes the chunk manager for tools and tests.
func (w *World) Manager() *Manager { return w.mgr }

// ChunkPixelSize reports the side length of a chunk in cells.
func (w *World) ChunkPixelSize() int { return w.cfg.Params.ChunkSize }

// ChunkGridSize reports the world dimensions in chunks.
func (w *World) ChunkGridSize() (int, int) { return w.chunksX, w.chunksY }

// Focus returns the chunk coordinates priorities are measured from.
func (w *World) Focus() (int, int) { return w.focusX, w.focusY }

// SetFocus moves the priority origin. X wraps around the chunk grid; Y is
// clamped.
func (w *World) SetFocus(cx, cy int) {
	w.focusX = (cx%w.chunksX + w.chunksX) % w.chunksX
	if cy < 0 {
		cy = 0
	}
	if cy >= w.chunksY {
		cy = w.chunksY - 1
	}
	w.focusY = cy
}

// ChunkTiers returns a row-major grid of scheduling tiers for every chunk
// coordinate, for the debug overlay.
func (w *World) ChunkTiers() ([]uint8, int, int) {
	tiers := make([]uint8, w.chunksX*w.chunksY)
	for _, st := range w.mgr.Status() {
		if st.Key.X < 0 || st.Key.X >= w.chunksX || st.Key.Y < 0 || st.Key.Y >= w.chunksY {
			continue
		}
		tiers[st.Key.Y*w.chunksX+st.Key.X] = uint8(st.Tier)
	}
	return tiers, w.chunksX, w.chunksY
}

// Reset regenerates the terrain deterministically and drops all chunk state.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	rng := pcore.NewRNG(effective)

	w.store.Reset()
	w.seedBedrockFloor()
	w.sprinkleRock(rng)
	w.carveBasins(rng)
	w.raiseDunes(rng)

	w.mgr.Reset()
	w.focusX = w.chunksX / 2
	w.focusY = w.chunksY / 2
}

// Step advances the world one tick: global tick, priority map from the
// focus chunk, then one manager pass.
func (w *World) Step() {
	w.store.Advance()

	clear(w.priorities)
	for cy := 0; cy < w.chunksY; cy++ {
		dy := cy - w.focusY
		if dy < 0 {
			dy = -dy
		}
		for cx := 0; cx < w.chunksX; cx++ {
			dx := cx - w.focusX
			if dx < 0 {
				dx = -dx
			}
			// The world wraps horizontally, so distance does too.
			if wrapped := w.chunksX - dx; wrapped < dx {
				dx = wrapped
			}
			d := dx
			if dy > d {
				d = dy
			}
			w.priorities[ChunkKey{X: cx, Y: cy}] = float64(d)
		}
	}
	w.mgr.UpdateChunks(w.priorities)
}

func (w *World) seedBedrockFloor() {
	h := w.store.Height()
	for row := h - 2; row < h; row++ {
		for col := 0; col < w.store.Width(); col++ {
			w.store.SetPixel(col, row, terrain.Bedrock)
		}
	}
}

func (w *World) sprinkleRock(rng *pcore.RNG) {
	chance := w.cfg.Params.RockChance
	if chance <= 0 {
		return
	}
	// Rock only below the midline, leaving headroom for basins and dunes.
	for row := w.store.Height() / 2; row < w.store.Height()-2; row++ {
		for col := 0; col < w.store.Width(); col++ {
			if rng.Float64() < chance {
				w.store.SetPixel(col, row, terrain.Rock)
			}
		}
	}
}

func (w *World) carveBasins(rng *pcore.RNG) {
	w.stampDiscs(rng, w.cfg.Params.BasinCount,
		w.cfg.Params.BasinRadiusMin, w.cfg.Params.BasinRadiusMax, terrain.Water)
}

func (w *World) raiseDunes(rng *pcore.RNG) {
	w.stampDiscs(rng, w.cfg.Params.DuneCount,
		w.cfg.Params.DuneRadiusMin, w.cfg.Params.DuneRadiusMax, terrain.Sand)
}

// stampDiscs paints filled discs of material at random positions, skipping
// bedrock so the floor stays intact.
func (w *World) stampDiscs(rng *pcore.RNG, count, minR, maxR int, mat terrain.Material) {
	if count <= 0 {
		return
	}
	if minR < 1 {
		minR = 1
	}
	if maxR < minR {
		maxR = minR
	}
	width := w.store.Width()
	height := w.store.Height()
	for i := 0; i < count; i++ {
		cx := rng.IntN(width)
		cy := rng.IntN(height - 2)
		radius := rng.IntBetween(minR, maxR)
		r2 := radius * radius
		for dy := -radius; dy <= radius; dy++ {
			row := cy + dy
			if row < 0 || row >= height-2 {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > r2 {
					continue
				}
				col := w.store.WrapX(cx + dx)
				if w.store.Pixel(col, row) == terrain.Bedrock {
					continue
				}
				w.store.SetPixel(col, row, mat)
			}
		}
	}
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
