package wavelet

import (
	"github.com/cocosip/go-image-transform/transform"
)

// SubbandSet holds the three detail subbands of one decomposition level.
// LH is the horizontal detail (low-pass along rows, high-pass along columns),
// HL the vertical detail, HH the diagonal detail. The three grids always
// share one shape: half the (evened) extent of the level's input.
type SubbandSet struct {
	LH *transform.Grid
	HL *transform.Grid
	HH *transform.Grid

	// InputWidth/InputHeight record the pre-pad extent of the grid this
	// level decomposed, so reconstruction can crop the padding back off.
	InputWidth  int
	InputHeight int
}

func (s *SubbandSet) clone() SubbandSet {
	return SubbandSet{
		LH:          s.LH.Clone(),
		HL:          s.HL.Clone(),
		HH:          s.HH.Clone(),
		InputWidth:  s.InputWidth,
		InputHeight: s.InputHeight,
	}
}

// consistent reports whether the three detail grids share one shape.
func (s *SubbandSet) consistent() bool {
	return s.LH != nil && s.LH.SameShape(s.HL) && s.LH.SameShape(s.HH)
}

// Pyramid is a multi-level wavelet decomposition: detail subbands from
// finest (index 0) to coarsest, plus the approximation LL of the coarsest
// level. The approximation exists only at the coarsest level; that the
// structure cannot express anything else is deliberate.
type Pyramid struct {
	Wavelet string
	LL      *transform.Grid
	Details []SubbandSet
}

// NumLevels returns the number of decomposition levels.
func (p *Pyramid) NumLevels() int {
	return len(p.Details)
}

// Level returns the detail subbands at the given level, 0 = finest.
func (p *Pyramid) Level(i int) *SubbandSet {
	return &p.Details[i]
}

// Clone returns a deep copy, so coefficient edits (thresholding, zeroing)
// can leave the original pyramid inspectable.
func (p *Pyramid) Clone() *Pyramid {
	out := &Pyramid{
		Wavelet: p.Wavelet,
		LL:      p.LL.Clone(),
		Details: make([]SubbandSet, len(p.Details)),
	}
	for i := range p.Details {
		out.Details[i] = p.Details[i].clone()
	}
	return out
}
