package wavelet

import (
	"errors"
	"math"
	"testing"

	"github.com/cocosip/go-image-transform/transform"
)

func TestLookupByNameAndAlias(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"haar", "haar"},
		{"db1", "haar"},
		{"db2", "db2"},
		{"db4", "db4"},
		{"bior2.2", "bior2.2"},
		{"5/3", "bior2.2"},
		{"cdf97", "cdf97"},
		{"9/7", "cdf97"},
	}
	for _, tt := range tests {
		fb, err := Lookup(tt.query)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", tt.query, err)
			continue
		}
		if fb.Name != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.query, fb.Name, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("db17"); !errors.Is(err, transform.ErrUnknownWavelet) {
		t.Errorf("got error %v, want ErrUnknownWavelet", err)
	}
}

func TestListDeduplicates(t *testing.T) {
	names := make(map[string]bool)
	for _, fb := range List() {
		if names[fb.Name] {
			t.Errorf("family %q listed twice", fb.Name)
		}
		names[fb.Name] = true
	}
	for _, want := range []string{"haar", "db2", "db4", "bior2.2", "cdf97"} {
		if !names[want] {
			t.Errorf("family %q not listed", want)
		}
	}
}

// TestKernelNormalization checks that every convolution family's low-pass
// analysis kernel sums to sqrt(2) (unit DC gain through the downsampler)
// and the high-pass kernel sums to zero (no DC leakage).
func TestKernelNormalization(t *testing.T) {
	for _, fb := range List() {
		if fb.DecLo == nil {
			continue // lifting families carry no kernels
		}
		var lo, hi float64
		for _, v := range fb.DecLo {
			lo += v
		}
		for _, v := range fb.DecHi {
			hi += v
		}
		if math.Abs(lo-math.Sqrt2) > 1e-12 {
			t.Errorf("%s: DecLo sums to %v, want sqrt(2)", fb.Name, lo)
		}
		if math.Abs(hi) > 1e-12 {
			t.Errorf("%s: DecHi sums to %v, want 0", fb.Name, hi)
		}
	}
}
