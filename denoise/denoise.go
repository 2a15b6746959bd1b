// Package denoise removes Gaussian noise from sample grids by wavelet
// coefficient shrinkage: estimate the noise level from the finest diagonal
// subband, derive a threshold, shrink the detail coefficients, reconstruct.
package denoise

import (
	"fmt"
	"math"
	"sort"

	"github.com/cocosip/go-image-transform/transform"
	"github.com/cocosip/go-image-transform/wavelet"
)

// Shrinkage modes.
const (
	ModeSoft = "soft" // shrink towards zero by the threshold
	ModeHard = "hard" // keep or zero
)

// Threshold selection methods. Universal is VisuShrink; sure and bayes are
// fixed empirical scalings of it.
const (
	MethodUniversal = "universal"
	MethodSURE      = "sure"
	MethodBayes     = "bayes"
)

// madToSigma converts a median absolute deviation to a standard deviation
// under a Gaussian noise model.
const madToSigma = 0.6745

// EstimateSigma estimates the noise standard deviation from the median
// absolute deviation of the pyramid's finest diagonal (HH) subband.
func EstimateSigma(p *wavelet.Pyramid) (float64, error) {
	if p == nil || p.NumLevels() == 0 {
		return 0, fmt.Errorf("%w: empty pyramid", transform.ErrInsufficientData)
	}
	hh := p.Level(0).HH
	if hh == nil || len(hh.Data) < 2 {
		return 0, fmt.Errorf("%w: finest HH subband has %d coefficients", transform.ErrInsufficientData, hhLen(hh))
	}

	abs := make([]float64, len(hh.Data))
	for i, v := range hh.Data {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	var median float64
	n := len(abs)
	if n%2 == 1 {
		median = abs[n/2]
	} else {
		median = (abs[n/2-1] + abs[n/2]) / 2
	}
	return median / madToSigma, nil
}

func hhLen(g *transform.Grid) int {
	if g == nil {
		return 0
	}
	return len(g.Data)
}

// Threshold computes a shrinkage threshold for the given noise level and
// sample count. MethodUniversal returns sigma*sqrt(2*ln(n)) (VisuShrink);
// the other methods scale it by a fixed empirical factor.
func Threshold(sigma float64, sampleCount int, method string) (float64, error) {
	if sampleCount < 1 {
		return 0, fmt.Errorf("%w: sample count %d", transform.ErrInvalidParameter, sampleCount)
	}
	universal := sigma * math.Sqrt(2*math.Log(float64(sampleCount)))
	switch method {
	case MethodUniversal:
		return universal, nil
	case MethodSURE:
		return universal * 0.8, nil
	case MethodBayes:
		return universal * 0.6, nil
	default:
		return 0, fmt.Errorf("%w: threshold method %q", transform.ErrInvalidParameter, method)
	}
}

// Apply returns a new pyramid with every detail coefficient shrunk by the
// threshold; the coarsest LL approximation is never touched. The input
// pyramid is left intact so it can still be inspected or compared.
func Apply(p *wavelet.Pyramid, threshold float64, mode string) (*wavelet.Pyramid, error) {
	if p == nil || p.NumLevels() == 0 {
		return nil, fmt.Errorf("%w: empty pyramid", transform.ErrInsufficientData)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold %g", transform.ErrInvalidParameter, threshold)
	}
	if mode != ModeSoft && mode != ModeHard {
		return nil, fmt.Errorf("%w: shrinkage mode %q", transform.ErrInvalidParameter, mode)
	}

	out := p.Clone()
	for i := range out.Details {
		lvl := out.Level(i)
		shrinkGrid(lvl.LH, threshold, mode)
		shrinkGrid(lvl.HL, threshold, mode)
		shrinkGrid(lvl.HH, threshold, mode)
	}
	return out, nil
}

func shrinkGrid(g *transform.Grid, t float64, mode string) {
	for i, c := range g.Data {
		g.Data[i] = shrink(c, t, mode)
	}
}

func shrink(c, t float64, mode string) float64 {
	if mode == ModeHard {
		if math.Abs(c) >= t {
			return c
		}
		return 0
	}
	// soft
	mag := math.Abs(c) - t
	if mag <= 0 {
		return 0
	}
	if c < 0 {
		return -mag
	}
	return mag
}
