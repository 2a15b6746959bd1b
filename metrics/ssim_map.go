package metrics

import (
	"fmt"

	"github.com/cocosip/go-image-transform/transform"
)

// SSIMMap computes a per-pixel SSIM map over a sliding box window, for
// visualizing where two images differ structurally. The window is clamped
// at the borders. window must be odd and >= 3.
func SSIMMap(a, b *transform.Grid, window int) (*transform.Grid, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	if window < 3 || window%2 == 0 {
		return nil, fmt.Errorf("%w: window %d (odd, >= 3)", transform.ErrInvalidParameter, window)
	}

	c1 := (0.01 * DynamicRange) * (0.01 * DynamicRange)
	c2 := (0.03 * DynamicRange) * (0.03 * DynamicRange)
	half := window / 2

	out, _ := transform.New(a.Width, a.Height)
	for y := 0; y < a.Height; y++ {
		y0, y1 := clampSpan(y-half, y+half, a.Height)
		for x := 0; x < a.Width; x++ {
			x0, x1 := clampSpan(x-half, x+half, a.Width)

			var mu1, mu2, n float64
			for wy := y0; wy <= y1; wy++ {
				for wx := x0; wx <= x1; wx++ {
					mu1 += a.At(wx, wy)
					mu2 += b.At(wx, wy)
					n++
				}
			}
			mu1 /= n
			mu2 /= n

			var var1, var2, cov float64
			for wy := y0; wy <= y1; wy++ {
				for wx := x0; wx <= x1; wx++ {
					d1 := a.At(wx, wy) - mu1
					d2 := b.At(wx, wy) - mu2
					var1 += d1 * d1
					var2 += d2 * d2
					cov += d1 * d2
				}
			}
			var1 /= n
			var2 /= n
			cov /= n

			num := (2*mu1*mu2 + c1) * (2*cov + c2)
			den := (mu1*mu1 + mu2*mu2 + c1) * (var1 + var2 + c2)
			out.Set(x, y, num/den)
		}
	}
	return out, nil
}

func clampSpan(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	return lo, hi
}
