package sand

import (
	"slices"
	"testing"

	"sandflow/internal/terrain"
)

const testChunkSize = 16

// paintColumn fills rows [top, bottom) of a world column with a material.
func paintColumn(s *terrain.Store, col, top, bottom int, m terrain.Material) {
	for row := top; row < bottom; row++ {
		s.SetPixel(col, row, m)
	}
}

func TestIngestBuildsColumnField(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	// Column 2: 5 water cells. Column 3: 2 sand over 3 water. Column 4:
	// 2 sand and 2 water (a tie). Columns 5 and 6: solid, not simulable.
	paintColumn(s, 2, 3, 8, terrain.Water)
	paintColumn(s, 3, 2, 4, terrain.Sand)
	paintColumn(s, 3, 4, 7, terrain.Water)
	paintColumn(s, 4, 1, 3, terrain.Sand)
	paintColumn(s, 4, 3, 5, terrain.Water)
	paintColumn(s, 5, 0, 16, terrain.Rock)
	paintColumn(s, 6, 0, 16, terrain.Bedrock)

	c := newChunk(0, 0, newBasis(testChunkSize), 0.18)
	c.ingest(s, defaultWrap(s.Width()))

	if !c.Warm() || !c.HasLiquid() {
		t.Fatal("chunk with capacity must be warm with liquid")
	}
	if got := c.colCap[2]; got != 5 {
		t.Fatalf("column 2 capacity = %d, want 5", got)
	}
	if got := c.heights[2]; got != 5 {
		t.Fatalf("column 2 height = %g, want capacity (fully packed)", got)
	}
	if got := c.colMat[2]; got != terrain.Water {
		t.Fatalf("column 2 material = %d, want Water", got)
	}
	if got := c.colMat[3]; got != terrain.Water {
		t.Fatalf("column 3 material = %d, want Water (3 beats 2)", got)
	}
	if got := c.colMat[4]; got != terrain.Water {
		t.Fatalf("column 4 material = %d, want Water fallback on tie", got)
	}
	if got := c.colCap[5]; got != 0 {
		t.Fatalf("rock column capacity = %d, want 0", got)
	}
	if got := c.colCap[6]; got != 0 {
		t.Fatalf("bedrock column capacity = %d, want 0", got)
	}
	if got := c.Volume(); got != 5+5+4 {
		t.Fatalf("volume = %g, want total capacity 14", got)
	}
	if !c.MaskBit(2, 3) || c.MaskBit(2, 2) || c.MaskBit(5, 0) {
		t.Fatal("mask bits must flag exactly the simulable cells")
	}
	if !slices.Equal(c.colRows[2], []int{3, 4, 5, 6, 7}) {
		t.Fatalf("column 2 rows = %v, want ascending offsets", c.colRows[2])
	}
}

func TestIngestDeterministic(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	paintColumn(s, 1, 2, 9, terrain.Water)
	paintColumn(s, 7, 5, 11, terrain.Sand)

	c := newChunk(0, 0, newBasis(testChunkSize), 0.18)
	wrap := defaultWrap(s.Width())

	c.ingest(s, wrap)
	heights := slices.Clone(c.heights)
	caps := slices.Clone(c.colCap)
	mats := slices.Clone(c.colMat)

	c.ingest(s, wrap)
	if !slices.Equal(heights, c.heights) {
		t.Fatal("repeat ingest must reproduce heights")
	}
	if !slices.Equal(caps, c.colCap) {
		t.Fatal("repeat ingest must reproduce capacities")
	}
	if !slices.Equal(mats, c.colMat) {
		t.Fatal("repeat ingest must reproduce materials")
	}
}

func TestIngestZeroCapacityChunkStaysCold(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	paintColumn(s, 0, 0, 16, terrain.Rock)

	c := newChunk(0, 0, newBasis(testChunkSize), 0.18)
	c.ingest(s, defaultWrap(s.Width()))

	if c.Warm() || c.HasLiquid() {
		t.Fatal("zero-capacity chunk must not be marked warm")
	}
	if c.Volume() != 0 {
		t.Fatalf("volume = %g, want 0", c.Volume())
	}
}

func TestApplyWritesFillAndClearsRest(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	paintColumn(s, 2, 3, 8, terrain.Water)

	c := newChunk(0, 0, newBasis(testChunkSize), 0.18)
	wrap := defaultWrap(s.Width())
	c.ingest(s, wrap)

	c.heights[2] = 2.6 // rounds to fill 3
	c.apply(s, wrap)

	for _, row := range []int{3, 4, 5} {
		if got := s.Pixel(2, row); got != terrain.Water {
			t.Fatalf("row %d = %d, want Water below fill rank", row, got)
		}
	}
	for _, row := range []int{6, 7} {
		if got := s.Pixel(2, row); got != terrain.Empty {
			t.Fatalf("row %d = %d, want Empty at and beyond fill rank", row, got)
		}
	}
	if got := s.DirtyCount(); got != 2 {
		t.Fatalf("dirty count = %d, want 2 (only mutated cells reported)", got)
	}

	s.FlushDirty()
	c.apply(s, wrap)
	if got := s.DirtyCount(); got != 0 {
		t.Fatalf("second apply marked %d cells, want 0 (no redundant writes)", got)
	}
}

func TestApplyWrapsColumns(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	for col := 48; col < 64; col++ {
		paintColumn(s, col, 4, 10, terrain.Water)
	}

	// Chunk X=-1 spans world columns -16..-1, which wrap onto 48..63.
	c := newChunk(-1, 0, newBasis(testChunkSize), 0.18)
	wrap := defaultWrap(s.Width())
	c.ingest(s, wrap)
	if c.Volume() != 16*6 {
		t.Fatalf("wrapped ingest volume = %g, want 96", c.Volume())
	}

	for x := range c.heights {
		c.heights[x] = 0
	}
	c.apply(s, wrap)
	for col := 48; col < 64; col++ {
		for row := 4; row < 10; row++ {
			if got := s.Pixel(col, row); got != terrain.Empty {
				t.Fatalf("cell (%d,%d) = %d, want Empty after wrapped clear", col, row, got)
			}
		}
	}

	// Chunk X=4 spans 64..79, wrapping onto 0..15.
	s2 := terrain.NewStore(64, 32, nil)
	for col := 0; col < 16; col++ {
		paintColumn(s2, col, 2, 6, terrain.Sand)
	}
	c2 := newChunk(4, 0, newBasis(testChunkSize), 0.18)
	wrap2 := defaultWrap(s2.Width())
	c2.ingest(s2, wrap2)
	if c2.Volume() != 16*4 {
		t.Fatalf("overflow ingest volume = %g, want 64", c2.Volume())
	}
}

func TestUpdateStampsTerrainTick(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	paintColumn(s, 2, 3, 8, terrain.Water)
	s.Advance()
	s.Advance()

	c := newChunk(0, 0, newBasis(testChunkSize), 0.18)
	wrap := defaultWrap(s.Width())
	c.EnsureIngested(s, wrap)
	c.Update(s, wrap, 0.1)

	if got := c.LastUpdateTick(); got != 2 {
		t.Fatalf("lastUpdateTick = %d, want 2", got)
	}
}
