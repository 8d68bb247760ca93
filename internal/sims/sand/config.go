package sand

import "strconv"

// Params holds the engine and world-seeding tunables for the sand sim.
type Params struct {
	ChunkSize           int
	FixedTimeStep       float64
	DiffusionRate       float64
	MaxComputedPriority int
	BufferRadius        int
	MaxResidentChunks   int

	RockChance     float64
	BasinCount     int
	BasinRadiusMin int
	BasinRadiusMax int
	DuneCount      int
	DuneRadiusMin  int
	DuneRadiusMax  int
}

// Config controls the sand simulation dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
		Params: Params{
			ChunkSize:           64,
			FixedTimeStep:       1.0 / 30,
			DiffusionRate:       0.18,
			MaxComputedPriority: 2,
			BufferRadius:        1,
			MaxResidentChunks:   0,
			RockChance:          0.04,
			BasinCount:          6,
			BasinRadiusMin:      8,
			BasinRadiusMax:      20,
			DuneCount:           10,
			DuneRadiusMin:       6,
			DuneRadiusMax:       14,
		},
	}
}

// normalized clamps nonsensical values back to usable defaults.
func (p Params) normalized() Params {
	if p.ChunkSize <= 0 {
		p.ChunkSize = 64
	}
	if p.FixedTimeStep <= 0 {
		p.FixedTimeStep = 1.0 / 30
	}
	if p.DiffusionRate <= 0 {
		p.DiffusionRate = 0.18
	}
	if p.MaxComputedPriority < 0 {
		p.MaxComputedPriority = 0
	}
	if p.BufferRadius <= 0 {
		p.BufferRadius = 1
	}
	if p.MaxResidentChunks < 0 {
		p.MaxResidentChunks = 0
	}
	if p.BasinRadiusMax < p.BasinRadiusMin {
		p.BasinRadiusMax = p.BasinRadiusMin
	}
	if p.DuneRadiusMax < p.DuneRadiusMin {
		p.DuneRadiusMax = p.DuneRadiusMin
	}
	return p
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["chunk_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ChunkSize = parsed
		}
	}
	if v, ok := cfg["fixed_time_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.FixedTimeStep = parsed
		}
	}
	if v, ok := cfg["diffusion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.DiffusionRate = parsed
		}
	}
	if v, ok := cfg["max_computed_priority"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxComputedPriority = parsed
		}
	}
	if v, ok := cfg["buffer_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.BufferRadius = parsed
		}
	}
	if v, ok := cfg["max_resident_chunks"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxResidentChunks = parsed
		}
	}
	if v, ok := cfg["rock_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RockChance = parsed
		}
	}
	if v, ok := cfg["basin_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BasinCount = parsed
		}
	}
	if v, ok := cfg["basin_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BasinRadiusMin = parsed
		}
	}
	if v, ok := cfg["basin_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BasinRadiusMax = parsed
		}
	}
	if v, ok := cfg["dune_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DuneCount = parsed
		}
	}
	if v, ok := cfg["dune_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DuneRadiusMin = parsed
		}
	}
	if v, ok := cfg["dune_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DuneRadiusMax = parsed
		}
	}
	c.Params = c.Params.normalized()
	return c
}
