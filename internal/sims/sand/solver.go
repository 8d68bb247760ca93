package sand

import "math"

// idleTimeScale slows the solver for buffered-tier chunks that skip
// terrain write-back.
const idleTimeScale = 0.25

// solveSpectral advances the height field by dt: forward cosine transform,
// exact per-mode exponential decay, inverse transform with a hard clamp to
// [0, capacity], then a volume renormalization pass that corrects the mass
// drift the clamp introduces. The decay step is the analytic solution of
// linear diffusion in the eigenbasis, so any dt is stable.
func (c *Chunk) solveSpectral(dt float64) {
	if !c.warm || !c.hasLiquid || c.volume <= 0 {
		return
	}
	b := c.b

	var coef [maxModes]float64
	for k := 0; k < b.modes; k++ {
		row := b.vec[k]
		sum := 0.0
		for x, h := range c.heights {
			sum += h * row[x]
		}
		coef[k] = b.norm[k] * sum * math.Exp(-b.lambda[k]*c.rate*dt)
	}

	newVolume := 0.0
	for x := range c.next {
		h := 0.0
		for k := 0; k < b.modes; k++ {
			h += coef[k] * b.vec[k][x]
		}
		if h < 0 {
			h = 0
		}
		if limit := float64(c.colCap[x]); h > limit {
			h = limit
		}
		c.next[x] = h
		newVolume += h
	}

	// Rescale clamped heights so total volume is approximately conserved,
	// then re-clamp. Residual drift remains possible when many columns sit
	// at capacity simultaneously. Skipped entirely when everything clamped
	// to zero: an empty chunk is a legitimate state, not a fault.
	if newVolume > 0 {
		scale := c.volume / newVolume
		newVolume = 0
		for x := range c.next {
			h := c.next[x] * scale
			if limit := float64(c.colCap[x]); h > limit {
				h = limit
			}
			c.next[x] = h
			newVolume += h
		}
	}

	copy(c.heights, c.next)
	c.volume = newVolume
}

// Update runs a full-tier step: solve, write back to terrain, and stamp the
// terrain tick. Requires a warm chunk with liquid.
func (c *Chunk) Update(t Terrain, wrap WrapFunc, dt float64) {
	if !c.warm || !c.hasLiquid {
		return
	}
	c.solveSpectral(dt)
	c.apply(t, wrap)
	if t != nil {
		c.lastUpdateTick = t.Tick()
	}
}

// Idle runs a buffered-tier step at a quarter of the timestep with no
// terrain write-back, so the world grid is untouched until the chunk
// returns to the full tier.
func (c *Chunk) Idle(dt float64) {
	if !c.warm {
		return
	}
	c.solveSpectral(dt * idleTimeScale)
}

// Freeze marks the chunk stale. No computation happens; the next reference
// must re-ingest before simulation can resume.
func (c *Chunk) Freeze() {
	c.warm = false
}

// EnsureIngested ingests from the terrain unless the chunk is already warm.
func (c *Chunk) EnsureIngested(t Terrain, wrap WrapFunc) {
	if c.warm {
		return
	}
	c.ingest(t, wrap)
}
