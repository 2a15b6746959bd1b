package wavelet

import (
	"fmt"

	"github.com/cocosip/go-image-transform/transform"
)

// Composite arranges all subbands of a pyramid into one displayable grid:
//
//	+--------+--------+
//	|   LL   |   LH   |
//	+--------+--------+
//	|   HL   |   HH   |
//	+--------+--------+
//
// working outward from the coarsest level, with each band min-max normalized
// to 0-255. The result is for visualization only; it is not invertible.
func Composite(p *Pyramid) (*transform.Grid, error) {
	if p == nil || p.LL == nil || len(p.Details) == 0 {
		return nil, fmt.Errorf("%w: empty pyramid", transform.ErrInsufficientData)
	}

	cur := p.LL
	for i := len(p.Details) - 1; i >= 0; i-- {
		lvl := &p.Details[i]
		if !lvl.consistent() || !cur.SameShape(lvl.LH) {
			return nil, fmt.Errorf("%w: subband shapes at level %d", transform.ErrShapeMismatch, i)
		}
		cur = quad(
			normalizeForDisplay(cur),
			normalizeForDisplay(lvl.LH),
			normalizeForDisplay(lvl.HL),
			normalizeForDisplay(lvl.HH),
		)
	}
	return cur, nil
}

// quad stacks four equal-shaped grids into one twice the size.
func quad(tl, tr, bl, br *transform.Grid) *transform.Grid {
	w, h := tl.Width, tl.Height
	out, _ := transform.New(w*2, h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, tl.At(x, y))
			out.Set(x+w, y, tr.At(x, y))
			out.Set(x, y+h, bl.At(x, y))
			out.Set(x+w, y+h, br.At(x, y))
		}
	}
	return out
}

// normalizeForDisplay maps a grid's value range onto 0-255; a flat grid
// becomes all zeros.
func normalizeForDisplay(g *transform.Grid) *transform.Grid {
	min, max := g.Data[0], g.Data[0]
	for _, v := range g.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := g.Clone()
	if max == min {
		for i := range out.Data {
			out.Data[i] = 0
		}
		return out
	}
	scale := 255 / (max - min)
	for i, v := range out.Data {
		out.Data[i] = (v - min) * scale
	}
	return out
}
