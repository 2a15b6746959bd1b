package denoise

import (
	"math"

	"github.com/cocosip/go-image-transform/transform"
	"github.com/cocosip/go-image-transform/wavelet"
)

// Options tunes the blind denoising pipeline. The zero value selects the
// universal threshold computed from the estimated noise level, soft
// shrinkage, and the defaults below.
type Options struct {
	// Threshold overrides the computed threshold when set (> 0 or
	// explicitly forced with HasThreshold).
	Threshold    float64
	HasThreshold bool

	// Mode is ModeSoft (default) or ModeHard.
	Mode string

	// Method selects the threshold formula (default MethodUniversal).
	Method string
}

// Result is the outcome of a denoising run.
type Result struct {
	Denoised *transform.Grid

	// Sigma is the noise standard deviation estimated from the noisy
	// grid's own finest HH subband.
	Sigma float64

	// ThresholdUsed is the shrinkage threshold actually applied.
	ThresholdUsed float64

	// SNRImprovement estimates, in dB, how much noise power the shrinkage
	// removed (sigma^2 against the residual variance).
	SNRImprovement float64
}

// Denoise runs the blind denoising pipeline on a (presumed noisy) grid:
// decompose, estimate sigma from the decomposition's own finest HH subband,
// derive the threshold, shrink, reconstruct, clip to [0, 255]. Sigma is
// never taken from a clean reference; the estimate and the shrinkage see
// the same transform.
func Denoise(g *transform.Grid, waveletName string, levels int, opts Options) (*Result, error) {
	if opts.Mode == "" {
		opts.Mode = ModeSoft
	}
	if opts.Method == "" {
		opts.Method = MethodUniversal
	}

	p, err := wavelet.Decompose(g, waveletName, levels)
	if err != nil {
		return nil, err
	}

	sigma, err := EstimateSigma(p)
	if err != nil {
		return nil, err
	}

	threshold := opts.Threshold
	if !opts.HasThreshold {
		threshold, err = Threshold(sigma, len(g.Data), opts.Method)
		if err != nil {
			return nil, err
		}
	}

	shrunk, err := Apply(p, threshold, opts.Mode)
	if err != nil {
		return nil, err
	}

	rec, err := wavelet.Reconstruct(shrunk, waveletName)
	if err != nil {
		return nil, err
	}
	denoised := rec.Clip(0, 255)

	return &Result{
		Denoised:       denoised,
		Sigma:          sigma,
		ThresholdUsed:  threshold,
		SNRImprovement: snrImprovement(g, denoised, sigma),
	}, nil
}

// snrImprovement compares the assumed noise power before shrinkage (sigma^2)
// with the variance of the removed residual.
func snrImprovement(noisy, denoised *transform.Grid, sigma float64) float64 {
	n := float64(len(noisy.Data))
	var mean float64
	for i := range noisy.Data {
		mean += noisy.Data[i] - denoised.Data[i]
	}
	mean /= n

	var variance float64
	for i := range noisy.Data {
		d := noisy.Data[i] - denoised.Data[i] - mean
		variance += d * d
	}
	variance /= n
	if variance < 1e-10 {
		variance = 1e-10
	}
	return 10 * math.Log10(sigma*sigma/variance)
}
