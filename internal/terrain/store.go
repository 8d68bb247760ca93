package terrain

import "sandflow/internal/core"

// Store is a fixed-size pixel terrain grid. Columns wrap toroidally around
// the world width; rows are bounded, and cells outside the vertical range
// read as Bedrock so nothing simulable leaks past the floor or ceiling.
type Store struct {
	grid *core.ByteGrid
	reg  *Registry

	dirty     []uint8
	dirtyList []int

	tick int64
}

// NewStore allocates a terrain store with the given dimensions and registry.
func NewStore(w, h int, reg *Registry) *Store {
	if reg == nil {
		reg = DefaultRegistry()
	}
	g := core.NewByteGrid(w, h)
	return &Store{
		grid:  g,
		reg:   reg,
		dirty: make([]uint8, g.W*g.H),
	}
}

// Width reports the world's horizontal extent in cells.
func (s *Store) Width() int { return s.grid.W }

// Height reports the world's vertical extent in cells.
func (s *Store) Height() int { return s.grid.H }

// Cells exposes the backing material slice for rendering.
func (s *Store) Cells() []uint8 { return s.grid.Cells() }

// WrapX wraps a column coordinate around the world width.
func (s *Store) WrapX(col int) int { return s.grid.WrapX(col) }

// Kind returns the registered classification for a material.
func (s *Store) Kind(m Material) Kind { return s.reg.Kind(m) }

// Tick returns the current global tick counter.
func (s *Store) Tick() int64 { return s.tick }

// Advance increments the global tick counter and returns the new value.
func (s *Store) Advance() int64 {
	s.tick++
	return s.tick
}

// Pixel reads the material at the given world coordinates. The column wraps;
// out-of-range rows read as Bedrock.
func (s *Store) Pixel(col, row int) Material {
	if !s.grid.InRow(row) {
		return Bedrock
	}
	return Material(s.grid.Cells()[s.grid.Index(s.grid.WrapX(col), row)])
}

// SetPixel writes the material at the given world coordinates. Writes to
// out-of-range rows are dropped.
func (s *Store) SetPixel(col, row int, m Material) {
	if !s.grid.InRow(row) {
		return
	}
	s.grid.Cells()[s.grid.Index(s.grid.WrapX(col), row)] = uint8(m)
}

// MarkDirty queues a mutated cell for downstream consumers. Marking the same
// cell twice before a flush records it once.
func (s *Store) MarkDirty(col, row int) {
	if !s.grid.InRow(row) {
		return
	}
	idx := s.grid.Index(s.grid.WrapX(col), row)
	if s.dirty[idx] != 0 {
		return
	}
	s.dirty[idx] = 1
	s.dirtyList = append(s.dirtyList, idx)
}

// DirtyCount reports how many cells are queued since the last flush.
func (s *Store) DirtyCount() int { return len(s.dirtyList) }

// FlushDirty returns the queued cell indices and clears the queue.
func (s *Store) FlushDirty() []int {
	out := s.dirtyList
	for _, idx := range out {
		s.dirty[idx] = 0
	}
	s.dirtyList = nil
	return out
}

// Fill sets every cell to the provided material without dirty tracking.
// Intended for world generation, not simulation writes.
func (s *Store) Fill(m Material) {
	s.grid.Fill(uint8(m))
}

// Reset clears all cells, the dirty queue, and the tick counter.
func (s *Store) Reset() {
	s.grid.Clear()
	for i := range s.dirty {
		s.dirty[i] = 0
	}
	s.dirtyList = nil
	s.tick = 0
}
