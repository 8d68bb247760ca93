package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Columns wrap toroidally; rows are bounded.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// WrapX applies toroidal wrapping to a column coordinate. The result is
// non-negative for negative inputs.
func (g *ByteGrid) WrapX(x int) int {
	return (x%g.W + g.W) % g.W
}

// InRow reports whether the row coordinate lies inside the grid.
func (g *ByteGrid) InRow(y int) bool { return y >= 0 && y < g.H }

// Fill sets every cell to the provided value.
func (g *ByteGrid) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	g.Fill(0)
}
