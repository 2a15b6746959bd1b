// Package metrics computes image quality metrics (MSE, MAE, PSNR, SNR, SSIM)
// over pairs of equal-shaped sample grids.
package metrics

import (
	"fmt"
	"math"

	"github.com/cocosip/go-image-transform/transform"
)

// DynamicRange is the default peak sample value for 8-bit grayscale.
const DynamicRange = 255.0

// Report bundles the metrics consumed by the comparison harness and the
// API layer.
type Report struct {
	MSE  float64 `json:"mse"`
	PSNR float64 `json:"psnr"`
	SSIM float64 `json:"ssim"`
	MAE  float64 `json:"mae"`
}

// MSE returns the mean squared difference of two equal-shaped grids.
func MSE(a, b *transform.Grid) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a.Data {
		d := a.Data[i] - b.Data[i]
		sum += d * d
	}
	return sum / float64(len(a.Data)), nil
}

// MAE returns the mean absolute difference of two equal-shaped grids.
func MAE(a, b *transform.Grid) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a.Data {
		sum += math.Abs(a.Data[i] - b.Data[i])
	}
	return sum / float64(len(a.Data)), nil
}

// PSNR returns the peak signal-to-noise ratio in dB. An exact match yields
// +Inf rather than an error.
func PSNR(a, b *transform.Grid, maxVal float64) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(maxVal*maxVal/mse), nil
}

// SNR returns the signal-to-noise ratio of a noisy grid against the clean
// signal, in dB; +Inf when the difference is exactly zero.
func SNR(signal, noisy *transform.Grid) (float64, error) {
	if err := checkPair(signal, noisy); err != nil {
		return 0, err
	}
	var signalPower, noisePower float64
	for i := range signal.Data {
		signalPower += signal.Data[i] * signal.Data[i]
		d := signal.Data[i] - noisy.Data[i]
		noisePower += d * d
	}
	if noisePower == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(signalPower/noisePower), nil
}

// SSIM returns the structural similarity of two grids using global image
// statistics (means, variances, covariance) with stability constants
// C1=(0.01*L)^2 and C2=(0.03*L)^2, L=255. This is the simplified
// whole-image formula, kept deliberately: it produces materially different
// numbers from the canonical sliding-window SSIM, and downstream consumers
// depend on these. See SSIMMap for a local variant.
func SSIM(a, b *transform.Grid) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	c1 := (0.01 * DynamicRange) * (0.01 * DynamicRange)
	c2 := (0.03 * DynamicRange) * (0.03 * DynamicRange)

	n := float64(len(a.Data))
	var mu1, mu2 float64
	for i := range a.Data {
		mu1 += a.Data[i]
		mu2 += b.Data[i]
	}
	mu1 /= n
	mu2 /= n

	var var1, var2, cov float64
	for i := range a.Data {
		d1 := a.Data[i] - mu1
		d2 := b.Data[i] - mu2
		var1 += d1 * d1
		var2 += d2 * d2
		cov += d1 * d2
	}
	var1 /= n
	var2 /= n
	cov /= n

	num := (2*mu1*mu2 + c1) * (2*cov + c2)
	den := (mu1*mu1 + mu2*mu2 + c1) * (var1 + var2 + c2)
	return num / den, nil
}

// Compare computes the full metric report for a reconstruction against its
// reference.
func Compare(a, b *transform.Grid) (*Report, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return nil, err
	}
	psnr, err := PSNR(a, b, DynamicRange)
	if err != nil {
		return nil, err
	}
	ssim, err := SSIM(a, b)
	if err != nil {
		return nil, err
	}
	mae, err := MAE(a, b)
	if err != nil {
		return nil, err
	}
	return &Report{MSE: mse, PSNR: psnr, SSIM: ssim, MAE: mae}, nil
}

// CompressionRatio returns originalSize/compressedSize (higher = more
// compression).
func CompressionRatio(originalSize, compressedSize int) float64 {
	if compressedSize == 0 {
		return math.Inf(1)
	}
	return float64(originalSize) / float64(compressedSize)
}

// BitsPerPixel returns the bit budget per pixel of a compressed payload.
func BitsPerPixel(compressedBytes, width, height int) float64 {
	return float64(compressedBytes*8) / float64(width*height)
}

func checkPair(a, b *transform.Grid) error {
	if a == nil || b == nil || len(a.Data) == 0 {
		return fmt.Errorf("%w: empty grid", transform.ErrInsufficientData)
	}
	if !a.SameShape(b) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", transform.ErrShapeMismatch, a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}
