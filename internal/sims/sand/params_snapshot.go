package sand

import (
	"strconv"

	"sandflow/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("chunk_size", "Chunk size", params.ChunkSize),
			},
		},
		{
			Name: "Solver",
			Params: []core.Parameter{
				floatParam("diffusion_rate", "Diffusion rate", params.DiffusionRate),
				floatParam("fixed_time_step", "Fixed time step", params.FixedTimeStep),
			},
		},
		{
			Name: "Scheduling",
			Params: []core.Parameter{
				intParam("max_computed_priority", "Max computed priority", params.MaxComputedPriority),
				intParam("buffer_radius", "Buffer radius", params.BufferRadius),
				intParam("max_resident_chunks", "Max resident chunks", params.MaxResidentChunks),
			},
		},
		{
			Name: "Terrain Seeding",
			Params: []core.Parameter{
				floatParam("rock_chance", "Rock chance", params.RockChance),
				intParam("basin_count", "Basin count", params.BasinCount),
				intParam("basin_radius_min", "Basin radius min", params.BasinRadiusMin),
				intParam("basin_radius_max", "Basin radius max", params.BasinRadiusMax),
				intParam("dune_count", "Dune count", params.DuneCount),
				intParam("dune_radius_min", "Dune radius min", params.DuneRadiusMin),
				intParam("dune_radius_max", "Dune radius max", params.DuneRadiusMax),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD while the
// sim runs.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:    "diffusion_rate",
			Label:  "Diffusion rate",
			Type:   core.ParamTypeFloat,
			Step:   0.02,
			Min:    0.02,
			Max:    1.0,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    "fixed_time_step",
			Label:  "Fixed time step",
			Type:   core.ParamTypeFloat,
			Step:   1.0 / 120,
			Min:    1.0 / 120,
			Max:    1.0,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    "max_computed_priority",
			Label:  "Max computed priority",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    0,
			Max:    16,
			HasMin: true,
			HasMax: true,
		},
		{
			Key:    "buffer_radius",
			Label:  "Buffer radius",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    1,
			Max:    8,
			HasMin: true,
			HasMax: true,
		},
	}
}

// SetFloatParameter updates a float tunable, propagating it to the manager.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "diffusion_rate":
		if value <= 0 {
			return false
		}
		w.cfg.Params.DiffusionRate = value
		w.mgr.SetDiffusionRate(value)
		return true
	case "fixed_time_step":
		if value <= 0 {
			return false
		}
		w.cfg.Params.FixedTimeStep = value
		w.mgr.SetFixedTimeStep(value)
		return true
	}
	return false
}

// SetIntParameter updates an integer tunable, propagating it to the manager.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "max_computed_priority":
		if value < 0 {
			return false
		}
		w.cfg.Params.MaxComputedPriority = value
		w.mgr.SetMaxComputedPriority(value)
		return true
	case "buffer_radius":
		if value < 1 {
			return false
		}
		w.cfg.Params.BufferRadius = value
		w.mgr.SetBufferRadius(value)
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
