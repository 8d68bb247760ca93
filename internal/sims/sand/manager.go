package sand

import (
	"slices"
	"strconv"
	"strings"
)

// ChunkKey identifies a chunk by its coordinates in chunk space.
type ChunkKey struct {
	X, Y int
}

// ParseChunkKey parses an "x,y" key as produced by the networking layer.
// It reports false for malformed input instead of failing the tick.
func ParseChunkKey(raw string) (ChunkKey, bool) {
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return ChunkKey{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return ChunkKey{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return ChunkKey{}, false
	}
	return ChunkKey{X: x, Y: y}, true
}

// ChunkStatus is a point-in-time view of one chunk for overlays and tools.
type ChunkStatus struct {
	Key    ChunkKey
	Tier   Tier
	Warm   bool
	Volume float64
}

// Manager tiers chunks into full, idle, and frozen update costs based on an
// externally supplied priority signal, bounding total simulation cost
// independent of world size. It owns chunk creation; chunks never schedule
// themselves.
type Manager struct {
	params Params
	t      Terrain
	wrap   WrapFunc

	bases map[int]*basis
	reg   ChunkRegistry
	ev    Evictor

	tick int64
}

// NewManager builds a manager over the given terrain. The column wrap is
// derived from the terrain width; pass an explicit wrap via NewManagerWrap
// when the world's wrapping differs from plain modulo.
func NewManager(params Params, t Terrain) *Manager {
	return NewManagerWrap(params, t, nil)
}

// NewManagerWrap builds a manager with an injected column wrap function.
func NewManagerWrap(params Params, t Terrain, wrap WrapFunc) *Manager {
	params = params.normalized()
	if wrap == nil {
		width := 0
		if t != nil {
			width = t.Width()
		}
		wrap = defaultWrap(width)
	}
	m := &Manager{
		params: params,
		t:      t,
		wrap:   wrap,
		bases:  make(map[int]*basis),
		reg:    newMapRegistry(),
	}
	if params.MaxResidentChunks > 0 {
		m.ev = NewLRUEvictor(params.MaxResidentChunks, int64(params.BufferRadius)+1)
	}
	return m
}

func (m *Manager) basisFor(size int) *basis {
	if b, ok := m.bases[size]; ok {
		return b
	}
	b := newBasis(size)
	m.bases[size] = b
	return b
}

// GetChunk returns the chunk at the given chunk coordinates, creating it
// lazily on first reference.
func (m *Manager) GetChunk(x, y int) *Chunk {
	return m.chunkFor(ChunkKey{X: x, Y: y})
}

func (m *Manager) chunkFor(key ChunkKey) *Chunk {
	if c, ok := m.reg.Get(key); ok {
		return c
	}
	c := newChunk(key.X, key.Y, m.basisFor(m.params.ChunkSize), m.params.DiffusionRate)
	m.reg.Put(key, c)
	return c
}

// Len reports how many chunks are currently resident.
func (m *Manager) Len() int { return m.reg.Len() }

// UpdateChunks runs one scheduling tick. Lower priority means more
// important: priorities up to MaxComputedPriority run the full solve plus
// terrain write-back, the buffer band beyond it runs the reduced idle
// solve, and everything else (including chunks absent from the map) is
// frozen in place.
func (m *Manager) UpdateChunks(priorities map[ChunkKey]float64) {
	m.tick++
	full := float64(m.params.MaxComputedPriority)
	buffered := full + float64(m.params.BufferRadius)

	processed := make(map[ChunkKey]bool, len(priorities))
	for key, pri := range priorities {
		c := m.chunkFor(key)
		processed[key] = true
		if m.ev != nil {
			m.ev.Touch(key, m.tick)
		}
		switch {
		case pri <= full:
			c.EnsureIngested(m.t, m.wrap)
			c.tier = TierFull
			c.Update(m.t, m.wrap, m.params.FixedTimeStep)
		case pri <= buffered:
			c.EnsureIngested(m.t, m.wrap)
			c.tier = TierIdle
			c.Idle(m.params.FixedTimeStep)
		default:
			c.tier = TierFrozen
			c.Freeze()
		}
	}

	m.reg.Range(func(key ChunkKey, c *Chunk) bool {
		if !processed[key] {
			c.tier = TierFrozen
			c.Freeze()
		}
		return true
	})

	if m.ev != nil {
		m.ev.Sweep(m.reg, m.tick)
	}
}

// UpdateChunksRaw accepts string-keyed priorities from the wire. Malformed
// keys are skipped; they never abort the tick.
func (m *Manager) UpdateChunksRaw(priorities map[string]float64) {
	keyed := make(map[ChunkKey]float64, len(priorities))
	for raw, pri := range priorities {
		key, ok := ParseChunkKey(raw)
		if !ok {
			continue
		}
		keyed[key] = pri
	}
	m.UpdateChunks(keyed)
}

// Status returns a deterministic snapshot of every resident chunk.
func (m *Manager) Status() []ChunkStatus {
	out := make([]ChunkStatus, 0, m.reg.Len())
	m.reg.Range(func(key ChunkKey, c *Chunk) bool {
		out = append(out, ChunkStatus{
			Key:    key,
			Tier:   c.tier,
			Warm:   c.warm,
			Volume: c.volume,
		})
		return true
	})
	slices.SortFunc(out, func(a, b ChunkStatus) int {
		if a.Key.Y != b.Key.Y {
			return a.Key.Y - b.Key.Y
		}
		return a.Key.X - b.Key.X
	})
	return out
}

// Reset drops every chunk. Used on world reload; recreation is safe because
// ingestion is idempotent.
func (m *Manager) Reset() {
	m.reg = newMapRegistry()
	if m.params.MaxResidentChunks > 0 {
		m.ev = NewLRUEvictor(m.params.MaxResidentChunks, int64(m.params.BufferRadius)+1)
	}
	m.tick = 0
}

// SetDiffusionRate updates the decay coefficient for future and resident
// chunks.
func (m *Manager) SetDiffusionRate(rate float64) {
	if rate <= 0 {
		return
	}
	m.params.DiffusionRate = rate
	m.reg.Range(func(_ ChunkKey, c *Chunk) bool {
		c.rate = rate
		return true
	})
}

// SetFixedTimeStep updates the per-tick timestep.
func (m *Manager) SetFixedTimeStep(dt float64) {
	if dt <= 0 {
		return
	}
	m.params.FixedTimeStep = dt
}

// SetMaxComputedPriority updates the full-tier priority cutoff.
func (m *Manager) SetMaxComputedPriority(p int) {
	if p < 0 {
		return
	}
	m.params.MaxComputedPriority = p
}

// SetBufferRadius updates the idle-tier band width.
func (m *Manager) SetBufferRadius(r int) {
	if r < 1 {
		return
	}
	m.params.BufferRadius = r
}
