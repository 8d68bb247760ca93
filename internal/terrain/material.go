// Package terrain implements the pixel terrain store the sand simulation
// ingests from and writes back into: a material registry with a closed
// classification per id, a row-major cell grid that wraps horizontally, and
// per-cell dirty tracking for renderers and the network layer.
package terrain

import "fmt"

// Material identifies the substance stored in a terrain cell.
type Material uint8

const (
	Empty Material = iota
	Bedrock
	Rock
	Water
	Sand
	Silt
)

// Kind is the closed classification the simulator matches on. Every
// registered material carries exactly one Kind; there is no free-form
// property lookup.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSolid
	KindLiquid
	KindGranular
)

// Registry maps material ids to their Kind. Construction validates the
// mapping once so lookups during simulation are a plain array read.
type Registry struct {
	kinds [256]Kind
	known [256]bool
}

// NewRegistry validates and freezes a material classification. Empty,
// Bedrock, and Water must be present: Empty and Bedrock bound what counts
// as simulable, and Water is the fallback column material.
func NewRegistry(kinds map[Material]Kind) (*Registry, error) {
	r := &Registry{}
	for mat, kind := range kinds {
		if kind > KindGranular {
			return nil, fmt.Errorf("terrain: material %d has unknown kind %d", mat, kind)
		}
		r.kinds[mat] = kind
		r.known[mat] = true
	}
	if !r.known[Empty] || !r.known[Bedrock] || !r.known[Water] {
		return nil, fmt.Errorf("terrain: registry must classify Empty, Bedrock, and Water")
	}
	if r.kinds[Empty] != KindEmpty {
		return nil, fmt.Errorf("terrain: Empty must have KindEmpty")
	}
	if r.kinds[Bedrock] != KindSolid {
		return nil, fmt.Errorf("terrain: Bedrock must have KindSolid")
	}
	if r.kinds[Water] != KindLiquid {
		return nil, fmt.Errorf("terrain: Water must have KindLiquid")
	}
	return r, nil
}

// Kind returns the classification for a material. Unregistered ids are
// treated as solid so they stay inert under simulation.
func (r *Registry) Kind(m Material) Kind {
	if !r.known[m] {
		return KindSolid
	}
	return r.kinds[m]
}

var defaultKinds = map[Material]Kind{
	Empty:   KindEmpty,
	Bedrock: KindSolid,
	Rock:    KindSolid,
	Water:   KindLiquid,
	Sand:    KindGranular,
	Silt:    KindGranular,
}

// DefaultRegistry returns the registry for the built-in material set.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultKinds)
	if err != nil {
		panic(err)
	}
	return r
}
