// Package dct implements the block-based 2D DCT codec core: per-block
// type-II DCT with orthonormal scaling, JPEG-style quantization tables, and
// the corresponding inverses.
package dct

import (
	"fmt"
	"math"

	"github.com/cocosip/go-image-transform/transform"
)

// CoefficientGrid holds per-block 2D DCT coefficients for a whole image.
// Width/Height are the padded extent (a multiple of BlockSize);
// OrigWidth/OrigHeight the caller's extent, restored on inversion.
type CoefficientGrid struct {
	Data       []float64
	Width      int
	Height     int
	OrigWidth  int
	OrigHeight int
	BlockSize  int
}

// Clone returns a deep copy.
func (c *CoefficientGrid) Clone() *CoefficientGrid {
	out := *c
	out.Data = make([]float64, len(c.Data))
	copy(out.Data, c.Data)
	return &out
}

// basis holds the orthonormal DCT-II basis matrix for one block size:
// basis[u][x] = a(u) * cos((2x+1)*u*pi / 2N).
type basis [][]float64

func newBasis(n int) basis {
	b := make(basis, n)
	for u := 0; u < n; u++ {
		b[u] = make([]float64, n)
		a := math.Sqrt(2.0 / float64(n))
		if u == 0 {
			a = math.Sqrt(1.0 / float64(n))
		}
		for x := 0; x < n; x++ {
			b[u][x] = a * math.Cos(float64(2*x+1)*float64(u)*math.Pi/float64(2*n))
		}
	}
	return b
}

// ForwardBlocks pads the grid bottom/right with edge-replicated samples to a
// multiple of blockSize, then per block subtracts 128 (JPEG centering) and
// applies the separable orthonormal 2D DCT.
func ForwardBlocks(g *transform.Grid, blockSize int) (*CoefficientGrid, error) {
	if blockSize < 2 {
		return nil, fmt.Errorf("%w: block size %d", transform.ErrInvalidParameter, blockSize)
	}
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: empty grid", transform.ErrInsufficientData)
	}

	padW := roundUp(g.Width, blockSize)
	padH := roundUp(g.Height, blockSize)
	padded := g
	if padW != g.Width || padH != g.Height {
		var err error
		padded, err = g.PadEdge(padW, padH)
		if err != nil {
			return nil, err
		}
	}

	out := &CoefficientGrid{
		Data:       make([]float64, padW*padH),
		Width:      padW,
		Height:     padH,
		OrigWidth:  g.Width,
		OrigHeight: g.Height,
		BlockSize:  blockSize,
	}

	b := newBasis(blockSize)
	block := make([]float64, blockSize*blockSize)
	for by := 0; by < padH; by += blockSize {
		for bx := 0; bx < padW; bx += blockSize {
			for y := 0; y < blockSize; y++ {
				for x := 0; x < blockSize; x++ {
					block[y*blockSize+x] = padded.At(bx+x, by+y) - 128
				}
			}
			transformBlock(block, b, blockSize, false)
			for y := 0; y < blockSize; y++ {
				copy(out.Data[(by+y)*padW+bx:(by+y)*padW+bx+blockSize], block[y*blockSize:(y+1)*blockSize])
			}
		}
	}
	return out, nil
}

// InverseBlocks applies the per-block inverse DCT, adds back the 128 level
// shift, crops the padding and clips into the 8-bit sample range.
func InverseBlocks(c *CoefficientGrid) (*transform.Grid, error) {
	if c == nil || len(c.Data) == 0 {
		return nil, fmt.Errorf("%w: empty coefficient grid", transform.ErrInsufficientData)
	}
	n := c.BlockSize
	if n < 2 || c.Width%n != 0 || c.Height%n != 0 {
		return nil, fmt.Errorf("%w: %dx%d coefficients with block size %d",
			transform.ErrInvalidParameter, c.Width, c.Height, n)
	}

	full, err := transform.New(c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	b := newBasis(n)
	block := make([]float64, n*n)
	for by := 0; by < c.Height; by += n {
		for bx := 0; bx < c.Width; bx += n {
			for y := 0; y < n; y++ {
				copy(block[y*n:(y+1)*n], c.Data[(by+y)*c.Width+bx:(by+y)*c.Width+bx+n])
			}
			transformBlock(block, b, n, true)
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					full.Set(bx+x, by+y, block[y*n+x]+128)
				}
			}
		}
	}

	cropped, err := full.Crop(c.OrigWidth, c.OrigHeight)
	if err != nil {
		return nil, err
	}
	return cropped.Clip(0, 255), nil
}

// transformBlock applies the separable 2D DCT (or its inverse) in place:
// B * M * B^T forward, B^T * M * B inverse.
func transformBlock(block []float64, b basis, n int, inverse bool) {
	tmp := make([]float64, n*n)

	// Rows
	for y := 0; y < n; y++ {
		for u := 0; u < n; u++ {
			var s float64
			for x := 0; x < n; x++ {
				if inverse {
					s += b[x][u] * block[y*n+x]
				} else {
					s += b[u][x] * block[y*n+x]
				}
			}
			tmp[y*n+u] = s
		}
	}

	// Columns
	for x := 0; x < n; x++ {
		for u := 0; u < n; u++ {
			var s float64
			for y := 0; y < n; y++ {
				if inverse {
					s += b[y][u] * tmp[y*n+x]
				} else {
					s += b[u][y] * tmp[y*n+x]
				}
			}
			block[u*n+x] = s
		}
	}
}

func roundUp(v, multiple int) int {
	return (v + multiple - 1) / multiple * multiple
}
