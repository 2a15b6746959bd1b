// Package compare runs the DCT and wavelet compression pipelines
// side-by-side at a matched quality setting and reports paired
// reconstructions and metrics. It composes the transform packages and owns
// no algorithm of its own.
package compare

import (
	"fmt"

	"github.com/cocosip/go-image-transform/dct"
	"github.com/cocosip/go-image-transform/denoise"
	"github.com/cocosip/go-image-transform/metrics"
	"github.com/cocosip/go-image-transform/transform"
	"github.com/cocosip/go-image-transform/wavelet"
)

// thresholdPerQualityStep maps one JPEG quality step onto the wavelet
// shrinkage threshold: threshold = (100 - quality) * 0.3.
const thresholdPerQualityStep = 0.3

// Defaults for the wavelet side.
const (
	DefaultWavelet = "db4"
	DefaultLevels  = 3
)

// Options selects the wavelet side of the comparison.
type Options struct {
	Wavelet string // default db4
	Levels  int    // default 3
}

// Side is one half of a comparison: the reconstruction, its metrics against
// the original, and the fraction of coefficients that survived (the
// coefficient-dropping stand-in for a bit rate).
type Side struct {
	Reconstructed *transform.Grid
	Report        *metrics.Report
	NonzeroRatio  float64
}

// Result pairs the two pipelines at one quality setting.
type Result struct {
	Quality          int
	WaveletName      string
	ThresholdApplied float64
	DCT              Side
	Wavelet          Side
}

// Compression compresses the grid with both pipelines at the given quality
// (1-100): JPEG-style quantized block DCT, and soft wavelet thresholding
// with the threshold derived from the same quality.
func Compression(g *transform.Grid, quality int, opts Options) (*Result, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%w: quality %d (must be 1-100)", transform.ErrInvalidParameter, quality)
	}
	if opts.Wavelet == "" {
		opts.Wavelet = DefaultWavelet
	}
	if opts.Levels == 0 {
		opts.Levels = DefaultLevels
	}

	dctSide, err := dctPipeline(g, quality)
	if err != nil {
		return nil, fmt.Errorf("dct pipeline: %w", err)
	}

	threshold := float64(100-quality) * thresholdPerQualityStep
	wavSide, err := waveletPipeline(g, opts, threshold)
	if err != nil {
		return nil, fmt.Errorf("wavelet pipeline: %w", err)
	}

	return &Result{
		Quality:          quality,
		WaveletName:      opts.Wavelet,
		ThresholdApplied: threshold,
		DCT:              *dctSide,
		Wavelet:          *wavSide,
	}, nil
}

func dctPipeline(g *transform.Grid, quality int) (*Side, error) {
	coeffs, err := dct.ForwardBlocks(g, dct.TableSize)
	if err != nil {
		return nil, err
	}
	table, err := dct.BuildQuantizationTable(quality)
	if err != nil {
		return nil, err
	}
	quantized, err := dct.Quantize(coeffs, table)
	if err != nil {
		return nil, err
	}
	restored, err := dct.Dequantize(quantized, table)
	if err != nil {
		return nil, err
	}
	rec, err := dct.InverseBlocks(restored)
	if err != nil {
		return nil, err
	}
	report, err := metrics.Compare(g, rec)
	if err != nil {
		return nil, err
	}
	return &Side{
		Reconstructed: rec,
		Report:        report,
		NonzeroRatio:  nonzeroRatio(quantized.Data),
	}, nil
}

func waveletPipeline(g *transform.Grid, opts Options, threshold float64) (*Side, error) {
	p, err := wavelet.Decompose(g, opts.Wavelet, opts.Levels)
	if err != nil {
		return nil, err
	}
	shrunk, err := denoise.Apply(p, threshold, denoise.ModeSoft)
	if err != nil {
		return nil, err
	}
	rec, err := wavelet.Reconstruct(shrunk, opts.Wavelet)
	if err != nil {
		return nil, err
	}
	rec = rec.Clip(0, 255)

	report, err := metrics.Compare(g, rec)
	if err != nil {
		return nil, err
	}
	return &Side{
		Reconstructed: rec,
		Report:        report,
		NonzeroRatio:  pyramidNonzeroRatio(shrunk),
	}, nil
}

func nonzeroRatio(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	nonzero := 0
	for _, c := range coeffs {
		if c != 0 {
			nonzero++
		}
	}
	return float64(nonzero) / float64(len(coeffs))
}

func pyramidNonzeroRatio(p *wavelet.Pyramid) float64 {
	total := len(p.LL.Data)
	nonzero := 0
	for _, c := range p.LL.Data {
		if c != 0 {
			nonzero++
		}
	}
	for i := 0; i < p.NumLevels(); i++ {
		lvl := p.Level(i)
		for _, g := range []([]float64){lvl.LH.Data, lvl.HL.Data, lvl.HH.Data} {
			total += len(g)
			for _, c := range g {
				if c != 0 {
					nonzero++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(nonzero) / float64(total)
}
