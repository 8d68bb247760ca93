package sand

import (
	"math"
	"slices"

	"sandflow/internal/terrain"
)

// Terrain is the narrow surface the simulation consumes from the world's
// pixel store. A nil Terrain makes ingestion and write-back no-ops: the
// collaborator is treated as not yet available, never as a fault.
type Terrain interface {
	Width() int
	Height() int
	Pixel(col, row int) terrain.Material
	SetPixel(col, row int, m terrain.Material)
	MarkDirty(col, row int)
	Kind(m terrain.Material) terrain.Kind
	Tick() int64
}

// WrapFunc maps a world column coordinate onto the world's toroidal width.
// It must return a non-negative result for negative inputs.
type WrapFunc func(col int) int

func defaultWrap(width int) WrapFunc {
	if width <= 0 {
		return func(col int) int { return col }
	}
	return func(col int) int { return (col%width + width) % width }
}

// Tier describes the scheduling cost a chunk was assigned this tick.
type Tier uint8

const (
	TierFrozen Tier = iota
	TierIdle
	TierFull
)

// Chunk approximates settling of stacked granular/liquid material inside one
// fixed-size square region of the terrain. Each column is represented as a
// continuous height bounded by the number of simulable cells it holds.
type Chunk struct {
	X, Y int

	size int
	b    *basis

	heights []float64
	// next is the owned scratch buffer for the solver, allocated once so
	// no step allocates.
	next []float64

	colMat  []terrain.Material
	colCap  []int
	colRows [][]int
	mask    []uint64

	volume    float64
	hasLiquid bool
	warm      bool

	rate           float64
	tier           Tier
	lastUpdateTick int64
}

func newChunk(x, y int, b *basis, rate float64) *Chunk {
	size := b.size
	words := (size*size + 63) / 64
	return &Chunk{
		X:       x,
		Y:       y,
		size:    size,
		b:       b,
		heights: make([]float64, size),
		next:    make([]float64, size),
		colMat:  make([]terrain.Material, size),
		colCap:  make([]int, size),
		colRows: make([][]int, size),
		mask:    make([]uint64, words),
		rate:    rate,
	}
}

// Size returns the chunk's column count.
func (c *Chunk) Size() int { return c.size }

// Heights exposes the live column height field.
func (c *Chunk) Heights() []float64 { return c.heights }

// Capacities exposes the per-column simulable cell counts.
func (c *Chunk) Capacities() []int { return c.colCap }

// Materials exposes the per-column dominant material ids.
func (c *Chunk) Materials() []terrain.Material { return c.colMat }

// Volume returns the total material held by the chunk.
func (c *Chunk) Volume() float64 { return c.volume }

// Warm reports whether the chunk holds live, terrain-ingested data.
func (c *Chunk) Warm() bool { return c.warm }

// HasLiquid reports whether any column can hold simulable material.
func (c *Chunk) HasLiquid() bool { return c.hasLiquid }

// Tier reports the scheduling tier assigned on the most recent manager tick.
func (c *Chunk) Tier() Tier { return c.tier }

// LastUpdateTick returns the terrain tick of the last write-back.
func (c *Chunk) LastUpdateTick() int64 { return c.lastUpdateTick }

// MaskBit reports whether the cell at chunk-relative (x, y) was simulable at
// ingestion time.
func (c *Chunk) MaskBit(x, y int) bool {
	i := y*c.size + x
	return c.mask[i/64]&(1<<uint(i%64)) != 0
}

func (c *Chunk) setMaskBit(x, y int) {
	i := y*c.size + x
	c.mask[i/64] |= 1 << uint(i%64)
}

// ingest rebuilds the column field from the terrain. A cell is simulable iff
// its material is neither Empty nor Bedrock and its kind is liquid or
// granular. Columns start fully packed: height equals capacity.
func (c *Chunk) ingest(t Terrain, wrap WrapFunc) {
	if t == nil {
		return
	}
	baseX := c.X * c.size
	baseY := c.Y * c.size

	for i := range c.mask {
		c.mask[i] = 0
	}
	c.volume = 0
	totalCap := 0

	counts := make(map[terrain.Material]int)
	for x := 0; x < c.size; x++ {
		clear(counts)
		rows := c.colRows[x][:0]
		col := wrap(baseX + x)
		for y := 0; y < c.size; y++ {
			mat := t.Pixel(col, baseY+y)
			if mat == terrain.Empty || mat == terrain.Bedrock {
				continue
			}
			switch t.Kind(mat) {
			case terrain.KindLiquid, terrain.KindGranular:
			default:
				continue
			}
			rows = append(rows, y)
			c.setMaskBit(x, y)
			counts[mat]++
		}
		c.colRows[x] = rows
		capacity := len(rows)
		c.colCap[x] = capacity
		c.heights[x] = float64(capacity)
		c.volume += float64(capacity)
		totalCap += capacity
		c.colMat[x] = dominantMaterial(counts)
	}

	c.hasLiquid = totalCap > 0
	c.warm = c.hasLiquid
}

// dominantMaterial picks the most frequent simulable material in a column.
// Ambiguous ties and empty columns fall back to Water.
func dominantMaterial(counts map[terrain.Material]int) terrain.Material {
	best := terrain.Water
	bestN := 0
	tied := false
	for mat, n := range counts {
		switch {
		case n > bestN:
			best, bestN = mat, n
			tied = false
		case n == bestN && n > 0 && mat != best:
			tied = true
		}
	}
	if bestN == 0 || tied {
		return terrain.Water
	}
	return best
}

// apply writes the continuous height field back into discrete terrain cells.
// Offsets below the rounded fill rank take the column material; the rest are
// cleared. Only cells that actually change are written and marked dirty.
func (c *Chunk) apply(t Terrain, wrap WrapFunc) {
	if t == nil {
		return
	}
	baseX := c.X * c.size
	baseY := c.Y * c.size

	for x := 0; x < c.size; x++ {
		rows := c.colRows[x]
		if len(rows) == 0 {
			continue
		}
		fill := int(math.Round(c.heights[x]))
		if fill < 0 {
			fill = 0
		}
		if fill > len(rows) {
			fill = len(rows)
		}
		slices.Sort(rows)
		col := wrap(baseX + x)
		mat := c.colMat[x]
		for rank, dy := range rows {
			row := baseY + dy
			if rank < fill {
				if t.Pixel(col, row) != mat {
					t.SetPixel(col, row, mat)
					t.MarkDirty(col, row)
				}
			} else if t.Pixel(col, row) != terrain.Empty {
				t.SetPixel(col, row, terrain.Empty)
				t.MarkDirty(col, row)
			}
		}
	}
}
