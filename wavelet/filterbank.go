// Package wavelet implements separable 2D discrete wavelet transforms
// (Mallat algorithm) over a static registry of filter-bank families.
package wavelet

import (
	"fmt"
	"math"
	"sync"

	"github.com/cocosip/go-image-transform/transform"
)

// FilterBank holds the four finite kernels of a wavelet family:
// decomposition low/high-pass and reconstruction low/high-pass.
// Decomposition and reconstruction kernels satisfy the perfect-reconstruction
// condition for the periodized boundary policy used by this package.
//
// Families flagged as lifting are computed by lifting steps instead of
// convolution (the 9/7 path, as in JPEG 2000), and carry no kernels.
type FilterBank struct {
	Name        string
	Description string

	// Lossless marks integer-friendly families (haar, 5/3)
	Lossless bool

	DecLo []float64
	DecHi []float64
	RecLo []float64
	RecHi []float64

	lifting bool
}

// Registry manages the available wavelet families
type Registry struct {
	mu    sync.RWMutex
	banks map[string]*FilterBank
}

var defaultRegistry = &Registry{
	banks: make(map[string]*FilterBank),
}

// Register adds a filter bank under its name and any aliases
func Register(fb *FilterBank, aliases ...string) {
	defaultRegistry.Register(fb, aliases...)
}

// Lookup retrieves a filter bank by name or alias
func Lookup(name string) (*FilterBank, error) {
	return defaultRegistry.Lookup(name)
}

// List returns all registered filter banks (deduplicated)
func List() []*FilterBank {
	return defaultRegistry.List()
}

// Register adds a filter bank under its name and any aliases
func (r *Registry) Register(fb *FilterBank, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.banks[fb.Name] = fb
	for _, alias := range aliases {
		r.banks[alias] = fb
	}
}

// Lookup retrieves a filter bank by name or alias
func (r *Registry) Lookup(name string) (*FilterBank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fb, ok := r.banks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", transform.ErrUnknownWavelet, name)
	}
	return fb, nil
}

// List returns all registered filter banks (deduplicated)
func (r *Registry) List() []*FilterBank {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[*FilterBank]bool)
	banks := make([]*FilterBank, 0)
	for _, fb := range r.banks {
		if !seen[fb] {
			seen[fb] = true
			banks = append(banks, fb)
		}
	}
	return banks
}

// orthogonal builds the four kernels of an orthogonal family from its
// scaling filter h (the reconstruction low-pass), using the alternating-flip
// quadrature-mirror construction.
func orthogonal(name, description string, lossless bool, h []float64) *FilterBank {
	m := len(h)
	fb := &FilterBank{
		Name:        name,
		Description: description,
		Lossless:    lossless,
		DecLo:       make([]float64, m),
		DecHi:       make([]float64, m),
		RecLo:       make([]float64, m),
		RecHi:       make([]float64, m),
	}
	for i := 0; i < m; i++ {
		fb.RecLo[i] = h[i]
		fb.DecLo[i] = h[m-1-i]
		if i%2 == 0 {
			fb.RecHi[i] = h[m-1-i]
		} else {
			fb.RecHi[i] = -h[m-1-i]
		}
		if (m-1-i)%2 == 0 {
			fb.DecHi[i] = h[i]
		} else {
			fb.DecHi[i] = -h[i]
		}
	}
	return fb
}

// db4Scaling is the standard Daubechies-4 (8 tap) scaling filter.
var db4Scaling = []float64{
	0.23037781330885523,
	0.7148465705525415,
	0.6308807679295904,
	-0.02798376941698385,
	-0.18703481171888114,
	0.030841381835986965,
	0.032883011666982945,
	-0.010597401784997278,
}

func init() {
	s2 := math.Sqrt2
	s3 := math.Sqrt(3)

	Register(orthogonal("haar", "Haar wavelet (simplest, good for education)", true,
		[]float64{1 / s2, 1 / s2}), "db1")

	Register(orthogonal("db2", "Daubechies 2", false, []float64{
		(1 + s3) / (4 * s2),
		(3 + s3) / (4 * s2),
		(3 - s3) / (4 * s2),
		(1 - s3) / (4 * s2),
	}))

	Register(orthogonal("db4", "Daubechies 4 (good general purpose)", false, db4Scaling))

	// LeGall 5/3 biorthogonal bank, sqrt(2)-normalized. Kernels are padded to
	// even length with the leading zero placing the low-pass center on even
	// samples and the high-pass center on odd samples (JPEG 2000 phase).
	Register(&FilterBank{
		Name:        "bior2.2",
		Description: "Integer 5/3 wavelet (lossless, used in JPEG2000)",
		Lossless:    true,
		DecLo:       []float64{0, -s2 / 8, s2 / 4, 3 * s2 / 4, s2 / 4, -s2 / 8},
		DecHi:       []float64{0, s2 / 4, -s2 / 2, s2 / 4, 0, 0},
		RecLo:       []float64{0, s2 / 4, s2 / 2, s2 / 4, 0, 0},
		RecHi:       []float64{0, s2 / 8, s2 / 4, -3 * s2 / 4, s2 / 4, s2 / 8},
	}, "5/3")

	Register(&FilterBank{
		Name:        "cdf97",
		Description: "CDF 9/7 wavelet (lossy, high quality, used in JPEG2000)",
		lifting:     true,
	}, "9/7")
}
