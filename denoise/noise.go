package denoise

import (
	"fmt"
	"math/rand"

	"github.com/cocosip/go-image-transform/transform"
)

// AddGaussianNoise returns a copy of the grid with zero-mean Gaussian noise
// of the given standard deviation added and samples clipped to [0, 255].
// The generator is passed in explicitly so callers (and tests) control
// reproducibility; there is no process-global RNG state here.
func AddGaussianNoise(g *transform.Grid, sigma float64, rng *rand.Rand) (*transform.Grid, error) {
	if g == nil || len(g.Data) == 0 {
		return nil, fmt.Errorf("%w: empty grid", transform.ErrInsufficientData)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", transform.ErrInvalidParameter)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("%w: sigma %g", transform.ErrInvalidParameter, sigma)
	}

	out := g.Clone()
	for i := range out.Data {
		out.Data[i] += rng.NormFloat64() * sigma
	}
	return out.Clip(0, 255), nil
}
