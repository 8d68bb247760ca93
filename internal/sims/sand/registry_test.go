package sand

import (
	"testing"

	"sandflow/internal/terrain"
)

func TestMapRegistryNeverEvictsOnItsOwn(t *testing.T) {
	s := rampedStore(t)
	m := NewManager(testParams(), s)

	for x := 0; x < 8; x++ {
		m.UpdateChunks(map[ChunkKey]float64{{X: x, Y: 0}: 0})
	}
	if m.Len() != 8 {
		t.Fatalf("registry len = %d, want 8 (no evictor configured)", m.Len())
	}
}

func TestLRUEvictorDropsFrozenIdleChunks(t *testing.T) {
	s := terrain.NewStore(64, 32, nil)
	for col := 0; col < 64; col++ {
		paintColumn(s, col, 2, 10, terrain.Water)
	}
	params := testParams()
	params.MaxResidentChunks = 2
	m := NewManager(params, s)

	all := map[ChunkKey]float64{
		{X: 0, Y: 0}: 0,
		{X: 1, Y: 0}: 0,
		{X: 2, Y: 0}: 0,
		{X: 3, Y: 0}: 0,
	}
	m.UpdateChunks(all)
	if m.Len() != 4 {
		t.Fatalf("len = %d, want 4 (warm chunks are never evicted)", m.Len())
	}

	// Narrow the view to one chunk; the other three freeze and age out
	// once they have been idle long enough.
	keep := map[ChunkKey]float64{{X: 0, Y: 0}: 0}
	for i := 0; i < 4; i++ {
		m.UpdateChunks(keep)
	}
	if m.Len() > 2 {
		t.Fatalf("len = %d, want at most MaxResidentChunks (2)", m.Len())
	}
	if _, ok := m.reg.Get(ChunkKey{X: 0, Y: 0}); !ok {
		t.Fatal("the actively referenced chunk must survive eviction")
	}

	// An evicted chunk is recreated and re-ingested on demand.
	m.UpdateChunks(map[ChunkKey]float64{{X: 1, Y: 0}: 0})
	ch, ok := m.reg.Get(ChunkKey{X: 1, Y: 0})
	if !ok {
		t.Fatal("evicted chunk must be recreated on reference")
	}
	if !ch.Warm() || ch.Volume() == 0 {
		t.Fatal("recreated chunk must re-ingest terrain data")
	}
}

func TestLRUEvictorKeepsRecentlySeenChunks(t *testing.T) {
	ev := NewLRUEvictor(1, 3).(*lruEvictor)
	reg := newMapRegistry()

	old := ChunkKey{X: 0, Y: 0}
	fresh := ChunkKey{X: 1, Y: 0}
	b := newBasis(4)
	reg.Put(old, newChunk(0, 0, b, 0.18))
	reg.Put(fresh, newChunk(1, 0, b, 0.18))
	ev.Touch(old, 1)
	ev.Touch(fresh, 9)

	ev.Sweep(reg, 10)
	if _, ok := reg.Get(old); ok {
		t.Fatal("stale frozen chunk must be evicted")
	}
	if _, ok := reg.Get(fresh); !ok {
		t.Fatal("recently seen chunk must be kept even over the bound")
	}
}
