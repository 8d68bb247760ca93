package sand

import "testing"

func TestFromMapParsesOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":                     "128",
		"h":                     "96",
		"seed":                  "7",
		"chunk_size":            "32",
		"diffusion_rate":        "0.3",
		"fixed_time_step":       "0.05",
		"max_computed_priority": "4",
		"buffer_radius":         "2",
		"max_resident_chunks":   "16",
	})
	if c.Width != 128 || c.Height != 96 || c.Seed != 7 {
		t.Fatalf("dimensions/seed not applied: %+v", c)
	}
	if c.Params.ChunkSize != 32 || c.Params.DiffusionRate != 0.3 || c.Params.FixedTimeStep != 0.05 {
		t.Fatalf("solver params not applied: %+v", c.Params)
	}
	if c.Params.MaxComputedPriority != 4 || c.Params.BufferRadius != 2 || c.Params.MaxResidentChunks != 16 {
		t.Fatalf("scheduling params not applied: %+v", c.Params)
	}
}

func TestFromMapRejectsInvalidValues(t *testing.T) {
	c := FromMap(map[string]string{
		"chunk_size":     "-5",
		"diffusion_rate": "zero",
		"buffer_radius":  "0",
		"w":              "nope",
	})
	d := DefaultConfig()
	if c.Params.ChunkSize != d.Params.ChunkSize {
		t.Fatalf("invalid chunk_size leaked: %d", c.Params.ChunkSize)
	}
	if c.Params.DiffusionRate != d.Params.DiffusionRate {
		t.Fatalf("invalid diffusion_rate leaked: %g", c.Params.DiffusionRate)
	}
	if c.Params.BufferRadius != d.Params.BufferRadius {
		t.Fatalf("invalid buffer_radius leaked: %d", c.Params.BufferRadius)
	}
	if c.Width != d.Width {
		t.Fatalf("invalid width leaked: %d", c.Width)
	}
}

func TestNormalizedClampsNonsense(t *testing.T) {
	p := Params{
		ChunkSize:           0,
		FixedTimeStep:       -1,
		DiffusionRate:       0,
		MaxComputedPriority: -2,
		BufferRadius:        0,
		MaxResidentChunks:   -1,
	}.normalized()
	if p.ChunkSize != 64 || p.FixedTimeStep <= 0 || p.DiffusionRate != 0.18 {
		t.Fatalf("solver defaults not restored: %+v", p)
	}
	if p.MaxComputedPriority != 0 || p.BufferRadius != 1 || p.MaxResidentChunks != 0 {
		t.Fatalf("scheduling defaults not restored: %+v", p)
	}
}
