package sand

import "slices"

// ChunkRegistry abstracts chunk storage so eviction can be an external
// policy instead of a hidden property of the manager's map.
type ChunkRegistry interface {
	Get(key ChunkKey) (*Chunk, bool)
	Put(key ChunkKey, c *Chunk)
	Range(fn func(ChunkKey, *Chunk) bool)
	Evict(key ChunkKey)
	Len() int
}

type mapRegistry struct {
	chunks map[ChunkKey]*Chunk
}

func newMapRegistry() *mapRegistry {
	return &mapRegistry{chunks: make(map[ChunkKey]*Chunk)}
}

func (r *mapRegistry) Get(key ChunkKey) (*Chunk, bool) {
	c, ok := r.chunks[key]
	return c, ok
}

func (r *mapRegistry) Put(key ChunkKey, c *Chunk) {
	r.chunks[key] = c
}

func (r *mapRegistry) Range(fn func(ChunkKey, *Chunk) bool) {
	for key, c := range r.chunks {
		if !fn(key, c) {
			return
		}
	}
}

func (r *mapRegistry) Evict(key ChunkKey) {
	delete(r.chunks, key)
}

func (r *mapRegistry) Len() int { return len(r.chunks) }

// Evictor decides which chunks to drop after a manager tick. The default
// manager runs without one, matching the never-evict behavior of the core
// engine; dropping is safe for fully-frozen chunks because ingestion is
// idempotent and a re-referenced chunk is rebuilt on demand.
type Evictor interface {
	Touch(key ChunkKey, tick int64)
	Sweep(reg ChunkRegistry, tick int64)
}

// lruEvictor drops the least recently referenced frozen chunks once the
// resident count exceeds maxResident, provided they have been idle for at
// least idleTicks manager ticks.
type lruEvictor struct {
	maxResident int
	idleTicks   int64
	lastSeen    map[ChunkKey]int64
}

// NewLRUEvictor returns an Evictor bounding the registry to maxResident
// chunks. Chunks referenced within idleTicks of the sweep are kept even
// when the bound is exceeded.
func NewLRUEvictor(maxResident int, idleTicks int64) Evictor {
	if maxResident < 1 {
		maxResident = 1
	}
	if idleTicks < 1 {
		idleTicks = 1
	}
	return &lruEvictor{
		maxResident: maxResident,
		idleTicks:   idleTicks,
		lastSeen:    make(map[ChunkKey]int64),
	}
}

func (e *lruEvictor) Touch(key ChunkKey, tick int64) {
	e.lastSeen[key] = tick
}

func (e *lruEvictor) Sweep(reg ChunkRegistry, tick int64) {
	excess := reg.Len() - e.maxResident
	if excess <= 0 {
		return
	}

	type candidate struct {
		key  ChunkKey
		seen int64
	}
	var victims []candidate
	reg.Range(func(key ChunkKey, c *Chunk) bool {
		if c.Warm() {
			return true
		}
		if tick-e.lastSeen[key] < e.idleTicks {
			return true
		}
		victims = append(victims, candidate{key: key, seen: e.lastSeen[key]})
		return true
	})

	slices.SortFunc(victims, func(a, b candidate) int {
		if a.seen != b.seen {
			if a.seen < b.seen {
				return -1
			}
			return 1
		}
		// Stable order for equal timestamps so sweeps are deterministic.
		if a.key.Y != b.key.Y {
			return a.key.Y - b.key.Y
		}
		return a.key.X - b.key.X
	})

	for _, v := range victims {
		if excess <= 0 {
			return
		}
		reg.Evict(v.key)
		delete(e.lastSeen, v.key)
		excess--
	}
}
