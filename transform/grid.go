// Package transform provides the shared sample-grid type and error taxonomy
// used by the wavelet, DCT, denoising and metric packages.
package transform

import "fmt"

// Grid is a 2D array of real-valued samples in row-major order.
// Samples typically hold 8-bit grayscale intensities in [0, 255] but are not
// clamped internally; transforms never mutate a caller's grid in place.
type Grid struct {
	Data   []float64
	Width  int
	Height int
}

// New creates a zero-filled grid of the given extent.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid extent %dx%d", ErrInvalidParameter, width, height)
	}
	return &Grid{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
	}, nil
}

// FromValues creates a grid from row-major values. The slice is copied.
func FromValues(values []float64, width, height int) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d grid", ErrShapeMismatch, len(values), width, height)
	}
	copy(g.Data, values)
	return g, nil
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// Set stores a sample at column x, row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.Width+x] = v
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Data:   make([]float64, len(g.Data)),
		Width:  g.Width,
		Height: g.Height,
	}
	copy(out.Data, g.Data)
	return out
}

// SameShape reports whether both grids have identical extents.
func (g *Grid) SameShape(other *Grid) bool {
	return other != nil && g.Width == other.Width && g.Height == other.Height
}

// Clip returns a copy with every sample clamped into [lo, hi].
func (g *Grid) Clip(lo, hi float64) *Grid {
	out := g.Clone()
	for i, v := range out.Data {
		if v < lo {
			out.Data[i] = lo
		} else if v > hi {
			out.Data[i] = hi
		}
	}
	return out
}

// Crop returns a copy of the top-left width x height region.
func (g *Grid) Crop(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > g.Width || height > g.Height {
		return nil, fmt.Errorf("%w: crop %dx%d from %dx%d", ErrInvalidParameter, width, height, g.Width, g.Height)
	}
	out, _ := New(width, height)
	for y := 0; y < height; y++ {
		copy(out.Data[y*width:(y+1)*width], g.Data[y*g.Width:y*g.Width+width])
	}
	return out, nil
}

// PadEdge returns a copy grown to width x height with bottom/right
// edge-replicated samples. Extents must not shrink.
func (g *Grid) PadEdge(width, height int) (*Grid, error) {
	if width < g.Width || height < g.Height {
		return nil, fmt.Errorf("%w: pad %dx%d to %dx%d", ErrInvalidParameter, g.Width, g.Height, width, height)
	}
	out, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		srcY := y
		if srcY >= g.Height {
			srcY = g.Height - 1
		}
		for x := 0; x < width; x++ {
			srcX := x
			if srcX >= g.Width {
				srcX = g.Width - 1
			}
			out.Data[y*width+x] = g.Data[srcY*g.Width+srcX]
		}
	}
	return out, nil
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []float64 {
	out := make([]float64, g.Width)
	copy(out, g.Data[y*g.Width:(y+1)*g.Width])
	return out
}

// Column returns a copy of column x.
func (g *Grid) Column(x int) []float64 {
	out := make([]float64, g.Height)
	for y := 0; y < g.Height; y++ {
		out[y] = g.Data[y*g.Width+x]
	}
	return out
}

// SetRow overwrites row y.
func (g *Grid) SetRow(y int, row []float64) {
	copy(g.Data[y*g.Width:(y+1)*g.Width], row)
}

// SetColumn overwrites column x.
func (g *Grid) SetColumn(x int, col []float64) {
	for y := 0; y < g.Height; y++ {
		g.Data[y*g.Width+x] = col[y]
	}
}
