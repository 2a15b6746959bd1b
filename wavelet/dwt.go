package wavelet

import (
	"fmt"
	"math/bits"

	"github.com/cocosip/go-image-transform/transform"
)

// MaxLevels returns the deepest decomposition the given extent supports:
// floor(log2(min(width, height))) - 1.
func MaxLevels(width, height int) int {
	m := width
	if height < m {
		m = height
	}
	if m < 2 {
		return 0
	}
	return bits.Len(uint(m)) - 2
}

// Decompose performs a multi-level separable 2D wavelet decomposition of the
// grid. Each level filters rows then columns with the family's analysis
// kernels and downsamples by 2, producing LH/HL/HH detail subbands; the LL
// approximation of one level is the input of the next. Odd extents are
// edge-replicated to even before filtering and the pre-pad extent is
// recorded for reconstruction.
//
// The input grid is never modified.
func Decompose(g *transform.Grid, name string, levels int) (*Pyramid, error) {
	fb, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: empty grid", transform.ErrInsufficientData)
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: levels %d (must be >= 1)", transform.ErrInvalidParameter, levels)
	}
	if max := MaxLevels(g.Width, g.Height); levels > max {
		return nil, fmt.Errorf("%w: levels %d exceeds %d for %dx%d grid",
			transform.ErrInvalidParameter, levels, max, g.Width, g.Height)
	}

	p := &Pyramid{
		Wavelet: fb.Name,
		Details: make([]SubbandSet, 0, levels),
	}

	cur := g
	for level := 0; level < levels; level++ {
		inW, inH := cur.Width, cur.Height

		evenW := inW + inW%2
		evenH := inH + inH%2
		if evenW != inW || evenH != inH {
			cur, err = cur.PadEdge(evenW, evenH)
			if err != nil {
				return nil, err
			}
		}

		ll, lh, hl, hh := analyze2D(cur, fb)
		p.Details = append(p.Details, SubbandSet{
			LH:          lh,
			HL:          hl,
			HH:          hh,
			InputWidth:  inW,
			InputHeight: inH,
		})
		cur = ll
	}
	p.LL = cur
	return p, nil
}

// Reconstruct inverts Decompose: working from the coarsest level to the
// finest, it upsamples and filters with the reconstruction kernels, sums the
// subband contributions, and crops each level back to its recorded input
// extent. An untouched pyramid reconstructs the original grid up to
// floating-point rounding.
func Reconstruct(p *Pyramid, name string) (*transform.Grid, error) {
	fb, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if p == nil || p.LL == nil || len(p.Details) == 0 {
		return nil, fmt.Errorf("%w: empty pyramid", transform.ErrInsufficientData)
	}

	cur := p.LL
	for i := len(p.Details) - 1; i >= 0; i-- {
		lvl := &p.Details[i]
		if !lvl.consistent() {
			return nil, fmt.Errorf("%w: detail subbands of level %d differ in shape", transform.ErrShapeMismatch, i)
		}
		if !cur.SameShape(lvl.LH) {
			return nil, fmt.Errorf("%w: approximation %dx%d vs detail %dx%d at level %d",
				transform.ErrShapeMismatch, cur.Width, cur.Height, lvl.LH.Width, lvl.LH.Height, i)
		}

		full := synthesize2D(cur, lvl.LH, lvl.HL, lvl.HH, fb)
		cur, err = full.Crop(lvl.InputWidth, lvl.InputHeight)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// analyze2D performs one decomposition level on an even-extent grid.
func analyze2D(g *transform.Grid, fb *FilterBank) (ll, lh, hl, hh *transform.Grid) {
	halfW := g.Width / 2
	halfH := g.Height / 2

	// Rows: split each row into low and high halves.
	rowL, _ := transform.New(halfW, g.Height)
	rowH, _ := transform.New(halfW, g.Height)
	for y := 0; y < g.Height; y++ {
		lo, hi := fb.analyze(g.Row(y))
		rowL.SetRow(y, lo)
		rowH.SetRow(y, hi)
	}

	// Columns: low-pass of each half feeds LL/HL, high-pass feeds LH/HH.
	ll, _ = transform.New(halfW, halfH)
	lh, _ = transform.New(halfW, halfH)
	hl, _ = transform.New(halfW, halfH)
	hh, _ = transform.New(halfW, halfH)
	for x := 0; x < halfW; x++ {
		lo, hi := fb.analyze(rowL.Column(x))
		ll.SetColumn(x, lo)
		lh.SetColumn(x, hi)

		lo, hi = fb.analyze(rowH.Column(x))
		hl.SetColumn(x, lo)
		hh.SetColumn(x, hi)
	}
	return ll, lh, hl, hh
}

// synthesize2D inverts analyze2D, returning the even-extent grid.
func synthesize2D(ll, lh, hl, hh *transform.Grid, fb *FilterBank) *transform.Grid {
	halfW := ll.Width
	halfH := ll.Height
	fullH := halfH * 2
	fullW := halfW * 2

	rowL, _ := transform.New(halfW, fullH)
	rowH, _ := transform.New(halfW, fullH)
	for x := 0; x < halfW; x++ {
		rowL.SetColumn(x, fb.synthesize(ll.Column(x), lh.Column(x)))
		rowH.SetColumn(x, fb.synthesize(hl.Column(x), hh.Column(x)))
	}

	out, _ := transform.New(fullW, fullH)
	for y := 0; y < fullH; y++ {
		out.SetRow(y, fb.synthesize(rowL.Row(y), rowH.Row(y)))
	}
	return out
}

// analyze splits an even-length signal into low- and high-pass halves.
func (fb *FilterBank) analyze(x []float64) (lo, hi []float64) {
	if fb.lifting {
		return forward97(x)
	}
	n := len(x)
	half := n / 2
	lo = make([]float64, half)
	hi = make([]float64, half)
	for k := 0; k < half; k++ {
		var sl, sh float64
		for j := range fb.DecLo {
			v := x[mod(2*k+1-j, n)]
			sl += fb.DecLo[j] * v
			sh += fb.DecHi[j] * v
		}
		lo[k] = sl
		hi[k] = sh
	}
	return lo, hi
}

// synthesize merges low- and high-pass halves back into an even-length
// signal by upsampling and filtering with the reconstruction kernels.
func (fb *FilterBank) synthesize(lo, hi []float64) []float64 {
	if fb.lifting {
		return inverse97(lo, hi)
	}
	half := len(lo)
	n := half * 2
	m := len(fb.RecLo)
	out := make([]float64, n)
	for k := 0; k < half; k++ {
		for j := 0; j < m; j++ {
			t := mod(2*k+2-m+j, n)
			out[t] += lo[k]*fb.RecLo[j] + hi[k]*fb.RecHi[j]
		}
	}
	return out
}

// mod is the positive remainder; kernels are short so i is never far below 0.
func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
