package terrain

import "testing"

func TestRegistryValidation(t *testing.T) {
	if _, err := NewRegistry(map[Material]Kind{Empty: KindEmpty, Bedrock: KindSolid}); err == nil {
		t.Fatal("registry without Water must fail validation")
	}
	if _, err := NewRegistry(map[Material]Kind{
		Empty: KindEmpty, Bedrock: KindSolid, Water: KindSolid,
	}); err == nil {
		t.Fatal("non-liquid Water must fail validation")
	}
	if _, err := NewRegistry(map[Material]Kind{
		Empty: KindEmpty, Bedrock: KindSolid, Water: KindLiquid, Sand: Kind(99),
	}); err == nil {
		t.Fatal("unknown kind must fail validation")
	}

	reg, err := NewRegistry(defaultKinds)
	if err != nil {
		t.Fatalf("default kinds must validate: %v", err)
	}
	if got := reg.Kind(Sand); got != KindGranular {
		t.Fatalf("Sand kind = %d, want KindGranular", got)
	}
	if got := reg.Kind(Material(200)); got != KindSolid {
		t.Fatalf("unregistered material kind = %d, want KindSolid (inert)", got)
	}
}

func TestStoreWrapX(t *testing.T) {
	s := NewStore(32, 16, nil)
	cases := [][2]int{
		{0, 0},
		{31, 31},
		{32, 0},
		{-1, 31},
		{-33, 31},
		{65, 1},
	}
	for _, c := range cases {
		if got := s.WrapX(c[0]); got != c[1] {
			t.Fatalf("WrapX(%d) = %d, want %d", c[0], got, c[1])
		}
	}
}

func TestStorePixelWrapsColumns(t *testing.T) {
	s := NewStore(32, 16, nil)
	s.SetPixel(0, 5, Water)
	if got := s.Pixel(32, 5); got != Water {
		t.Fatalf("Pixel(32, 5) = %d, want Water via wrap", got)
	}
	if got := s.Pixel(-32, 5); got != Water {
		t.Fatalf("Pixel(-32, 5) = %d, want Water via wrap", got)
	}
}

func TestStoreOutOfRangeRows(t *testing.T) {
	s := NewStore(8, 8, nil)
	if got := s.Pixel(3, -1); got != Bedrock {
		t.Fatalf("Pixel above world = %d, want Bedrock", got)
	}
	if got := s.Pixel(3, 8); got != Bedrock {
		t.Fatalf("Pixel below world = %d, want Bedrock", got)
	}
	s.SetPixel(3, -1, Water)
	s.MarkDirty(3, -1)
	if s.DirtyCount() != 0 {
		t.Fatal("out-of-range writes must be dropped")
	}
}

func TestDirtyTrackingDedupes(t *testing.T) {
	s := NewStore(8, 8, nil)
	s.MarkDirty(2, 3)
	s.MarkDirty(2, 3)
	s.MarkDirty(10, 3) // wraps onto (2,3)
	if got := s.DirtyCount(); got != 1 {
		t.Fatalf("dirty count = %d, want 1 after duplicate marks", got)
	}
	s.MarkDirty(4, 4)
	flushed := s.FlushDirty()
	if len(flushed) != 2 {
		t.Fatalf("flushed %d cells, want 2", len(flushed))
	}
	if s.DirtyCount() != 0 {
		t.Fatal("flush must clear the queue")
	}
	s.MarkDirty(2, 3)
	if got := s.DirtyCount(); got != 1 {
		t.Fatalf("dirty count after flush = %d, want 1 (bitmap cleared)", got)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore(8, 8, nil)
	s.SetPixel(1, 1, Sand)
	s.MarkDirty(1, 1)
	s.Advance()
	s.Reset()
	if got := s.Pixel(1, 1); got != Empty {
		t.Fatalf("cell after reset = %d, want Empty", got)
	}
	if s.DirtyCount() != 0 || s.Tick() != 0 {
		t.Fatal("reset must clear dirty queue and tick counter")
	}
}
