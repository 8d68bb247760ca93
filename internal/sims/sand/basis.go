package sand

import "math"

// maxModes caps the number of retained cosine modes so solver cost stays
// bounded regardless of chunk size.
const maxModes = 8

// basis holds the truncated cosine eigenbasis for chunks of one size:
// basis vectors, Neumann-Laplacian eigenvalues, and the normalization
// factors that make forward+inverse a round trip over the full mode set.
// It is a pure function of size, computed once and shared read-only across
// every chunk of that size.
type basis struct {
	size  int
	modes int

	vec    [][]float64
	lambda []float64
	norm   []float64
}

func newBasis(size int) *basis {
	if size < 1 {
		size = 1
	}
	modes := maxModes
	if size < modes {
		modes = size
	}
	b := &basis{
		size:   size,
		modes:  modes,
		vec:    make([][]float64, modes),
		lambda: make([]float64, modes),
		norm:   make([]float64, modes),
	}
	for k := 0; k < modes; k++ {
		row := make([]float64, size)
		for x := 0; x < size; x++ {
			row[x] = math.Cos(math.Pi * (float64(x) + 0.5) * float64(k) / float64(size))
		}
		b.vec[k] = row
		// Higher modes decay faster, which is what approximates
		// diffusion smoothing.
		b.lambda[k] = 2 - 2*math.Cos(math.Pi*float64(k)/float64(size))
		if k == 0 {
			b.norm[k] = 1 / float64(size)
		} else {
			b.norm[k] = 2 / float64(size)
		}
	}
	return b
}
