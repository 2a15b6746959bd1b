package transform

import (
	"errors"
	"testing"
)

func TestNewErrors(t *testing.T) {
	for _, tt := range []struct{ w, h int }{{0, 4}, {4, 0}, {-1, 8}} {
		if _, err := New(tt.w, tt.h); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("New(%d, %d): got %v, want ErrInvalidParameter", tt.w, tt.h, err)
		}
	}
}

func TestFromValues(t *testing.T) {
	g, err := FromValues([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}
	if g.At(2, 1) != 6 || g.At(0, 0) != 1 {
		t.Errorf("row-major order broken: got %v, %v", g.At(0, 0), g.At(2, 1))
	}

	if _, err := FromValues([]float64{1, 2, 3}, 2, 2); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("short slice: got %v, want ErrShapeMismatch", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := FromValues([]float64{1, 2, 3, 4}, 2, 2)
	c := g.Clone()
	c.Set(0, 0, 99)
	if g.At(0, 0) != 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestClip(t *testing.T) {
	g, _ := FromValues([]float64{-10, 0, 128, 300}, 4, 1)
	c := g.Clip(0, 255)
	want := []float64{0, 0, 128, 255}
	for i, v := range want {
		if c.Data[i] != v {
			t.Errorf("sample %d = %v, want %v", i, c.Data[i], v)
		}
	}
	if g.Data[0] != -10 {
		t.Error("Clip mutated the original")
	}
}

func TestCrop(t *testing.T) {
	g, _ := FromValues([]float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, 3, 3)

	c, err := g.Crop(2, 2)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	want := []float64{1, 2, 4, 5}
	for i, v := range want {
		if c.Data[i] != v {
			t.Errorf("sample %d = %v, want %v", i, c.Data[i], v)
		}
	}

	if _, err := g.Crop(4, 2); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("oversized crop: got %v, want ErrInvalidParameter", err)
	}
}

func TestPadEdge(t *testing.T) {
	g, _ := FromValues([]float64{
		1, 2,
		3, 4,
	}, 2, 2)

	p, err := g.PadEdge(4, 3)
	if err != nil {
		t.Fatalf("PadEdge failed: %v", err)
	}
	want := []float64{
		1, 2, 2, 2,
		3, 4, 4, 4,
		3, 4, 4, 4,
	}
	for i, v := range want {
		if p.Data[i] != v {
			t.Errorf("sample %d = %v, want %v", i, p.Data[i], v)
		}
	}

	if _, err := g.PadEdge(1, 2); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("shrinking pad: got %v, want ErrInvalidParameter", err)
	}
}

func TestRowColumnAccess(t *testing.T) {
	g, _ := FromValues([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 3, 2)

	row := g.Row(1)
	if row[0] != 4 || row[2] != 6 {
		t.Errorf("Row(1) = %v", row)
	}
	col := g.Column(2)
	if col[0] != 3 || col[1] != 6 {
		t.Errorf("Column(2) = %v", col)
	}

	// Returned slices are copies.
	row[0] = 99
	if g.At(0, 1) != 4 {
		t.Error("Row returned a live view into the grid")
	}

	g.SetRow(0, []float64{7, 8, 9})
	g.SetColumn(0, []float64{10, 11})
	if g.At(0, 0) != 10 || g.At(2, 0) != 9 || g.At(0, 1) != 11 {
		t.Errorf("SetRow/SetColumn left grid %v", g.Data)
	}
}
