package dct

import (
	"fmt"
	"math"

	"github.com/cocosip/go-image-transform/transform"
)

// TableSize is the quantization table extent; tables are always 8x8 as in
// baseline JPEG, so quantization requires an 8-sample block size.
const TableSize = 8

// baseLuminanceTable is the standard JPEG luminance quantization table
// (ITU-T T.81 Annex K.1).
var baseLuminanceTable = [TableSize * TableSize]int32{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// QuantTable is an 8x8 table of positive integer divisors in row-major order.
type QuantTable struct {
	Entries [TableSize * TableSize]int32
	Quality int
}

// At returns the divisor at column x, row y.
func (q *QuantTable) At(x, y int) int32 {
	return q.Entries[y*TableSize+x]
}

// BuildQuantizationTable scales the base luminance table by a quality factor.
// Quality 50 returns the base table unchanged; lower quality never yields a
// smaller divisor than a higher quality for the same entry.
func BuildQuantizationTable(quality int) (*QuantTable, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%w: quality %d (must be 1-100)", transform.ErrInvalidParameter, quality)
	}

	var scale int32
	if quality < 50 {
		scale = int32(5000 / quality)
	} else {
		scale = int32(200 - 2*quality)
	}

	q := &QuantTable{Quality: quality}
	for i, base := range baseLuminanceTable {
		val := (base*scale + 50) / 100
		if val < 1 {
			val = 1
		}
		if val > 255 {
			val = 255
		}
		q.Entries[i] = val
	}
	return q, nil
}

// Quantize divides every coefficient by its per-frequency table entry and
// rounds to the nearest integer. The result is a new, integer-valued
// coefficient grid.
func Quantize(c *CoefficientGrid, q *QuantTable) (*CoefficientGrid, error) {
	if err := checkQuantArgs(c, q); err != nil {
		return nil, err
	}
	out := c.Clone()
	forEachBlockEntry(out, q, func(i int, entry int32) {
		out.Data[i] = math.Round(out.Data[i] / float64(entry))
	})
	return out, nil
}

// Dequantize multiplies quantized coefficients back by the table entries.
func Dequantize(c *CoefficientGrid, q *QuantTable) (*CoefficientGrid, error) {
	if err := checkQuantArgs(c, q); err != nil {
		return nil, err
	}
	out := c.Clone()
	forEachBlockEntry(out, q, func(i int, entry int32) {
		out.Data[i] *= float64(entry)
	})
	return out, nil
}

func checkQuantArgs(c *CoefficientGrid, q *QuantTable) error {
	if c == nil || len(c.Data) == 0 {
		return fmt.Errorf("%w: empty coefficient grid", transform.ErrInsufficientData)
	}
	if q == nil {
		return fmt.Errorf("%w: nil quantization table", transform.ErrInvalidParameter)
	}
	if c.BlockSize != TableSize {
		return fmt.Errorf("%w: block size %d with %dx%d table",
			transform.ErrInvalidParameter, c.BlockSize, TableSize, TableSize)
	}
	return nil
}

// forEachBlockEntry visits every coefficient with the table entry for its
// position inside its block.
func forEachBlockEntry(c *CoefficientGrid, q *QuantTable, fn func(i int, entry int32)) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			fn(y*c.Width+x, q.At(x%TableSize, y%TableSize))
		}
	}
}
