package dct

import (
	"errors"
	"math"
	"testing"

	"github.com/cocosip/go-image-transform/transform"
)

func TestQuality50IsBaseTable(t *testing.T) {
	q, err := BuildQuantizationTable(50)
	if err != nil {
		t.Fatalf("BuildQuantizationTable failed: %v", err)
	}
	for i, base := range baseLuminanceTable {
		if q.Entries[i] != base {
			t.Errorf("entry %d = %d, want base %d", i, q.Entries[i], base)
		}
	}
}

// TestTableMonotonicity checks that lowering quality never shrinks a divisor.
func TestTableMonotonicity(t *testing.T) {
	prev, err := BuildQuantizationTable(100)
	if err != nil {
		t.Fatal(err)
	}
	for quality := 99; quality >= 1; quality-- {
		q, err := BuildQuantizationTable(quality)
		if err != nil {
			t.Fatalf("quality %d: %v", quality, err)
		}
		for i := range q.Entries {
			if q.Entries[i] < prev.Entries[i] {
				t.Fatalf("entry %d shrank from %d to %d between quality %d and %d",
					i, prev.Entries[i], q.Entries[i], quality+1, quality)
			}
			if q.Entries[i] < 1 || q.Entries[i] > 255 {
				t.Fatalf("entry %d = %d outside [1, 255] at quality %d", i, q.Entries[i], quality)
			}
		}
		prev = q
	}
}

func TestBuildQuantizationTableErrors(t *testing.T) {
	for _, quality := range []int{0, -5, 101} {
		if _, err := BuildQuantizationTable(quality); !errors.Is(err, transform.ErrInvalidParameter) {
			t.Errorf("quality %d: got %v, want ErrInvalidParameter", quality, err)
		}
	}
}

func TestQuantizeDequantize(t *testing.T) {
	g := randomGrid(t, 64, 64, 10)
	coeffs, err := ForwardBlocks(g, 8)
	if err != nil {
		t.Fatalf("ForwardBlocks failed: %v", err)
	}

	q, err := BuildQuantizationTable(75)
	if err != nil {
		t.Fatal(err)
	}

	quantized, err := Quantize(coeffs, q)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	for i, v := range quantized.Data {
		if v != math.Trunc(v) {
			t.Fatalf("quantized coefficient %d = %v is not an integer", i, v)
		}
	}
	// Original coefficients must be untouched.
	for i := range coeffs.Data {
		x, y := i%coeffs.Width, i/coeffs.Width
		entry := float64(q.At(x%TableSize, y%TableSize))
		if math.Abs(quantized.Data[i]-math.Round(coeffs.Data[i]/entry)) > 0 {
			t.Fatalf("coefficient %d quantized incorrectly", i)
		}
	}

	restored, err := Dequantize(quantized, q)
	if err != nil {
		t.Fatalf("Dequantize failed: %v", err)
	}
	for i := range restored.Data {
		x, y := i%coeffs.Width, i/coeffs.Width
		entry := float64(q.At(x%TableSize, y%TableSize))
		if math.Abs(restored.Data[i]-coeffs.Data[i]) > entry/2+1e-9 {
			t.Fatalf("coefficient %d off by %v, more than half a step %v",
				i, restored.Data[i]-coeffs.Data[i], entry/2)
		}
	}
}

func TestQuantizeBlockSizeMismatch(t *testing.T) {
	g := randomGrid(t, 32, 32, 11)
	coeffs, err := ForwardBlocks(g, 16)
	if err != nil {
		t.Fatalf("ForwardBlocks failed: %v", err)
	}
	q, err := BuildQuantizationTable(50)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Quantize(coeffs, q); !errors.Is(err, transform.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if _, err := Dequantize(coeffs, q); !errors.Is(err, transform.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}
