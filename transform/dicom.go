package transform

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// GridFromFrame converts one monochrome frame of a DICOM pixel-data object
// into a sample grid. Supported layouts are single-component frames with
// 8 or 16 bits allocated; 16-bit samples are read little-endian as DICOM
// native pixel data is.
func GridFromFrame(pd imagetypes.PixelData, frame int) (*Grid, error) {
	if pd == nil {
		return nil, fmt.Errorf("%w: nil pixel data", ErrInvalidParameter)
	}
	info := pd.GetFrameInfo()
	if info == nil {
		return nil, fmt.Errorf("%w: missing frame info", ErrInvalidParameter)
	}
	if info.SamplesPerPixel != 1 {
		return nil, fmt.Errorf("%w: %d samples per pixel (monochrome only)", ErrInvalidParameter, info.SamplesPerPixel)
	}

	width := int(info.Width)
	height := int(info.Height)
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}

	raw, err := pd.GetFrame(frame)
	if err != nil {
		return nil, fmt.Errorf("get frame %d: %w", frame, err)
	}

	switch info.BitsAllocated {
	case 8:
		if len(raw) < width*height {
			return nil, fmt.Errorf("%w: frame holds %d bytes, need %d", ErrShapeMismatch, len(raw), width*height)
		}
		for i := 0; i < width*height; i++ {
			g.Data[i] = float64(raw[i])
		}
	case 16:
		if len(raw) < width*height*2 {
			return nil, fmt.Errorf("%w: frame holds %d bytes, need %d", ErrShapeMismatch, len(raw), width*height*2)
		}
		for i := 0; i < width*height; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
			if info.PixelRepresentation != 0 {
				g.Data[i] = float64(int16(v))
			} else {
				g.Data[i] = float64(v)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d bits allocated", ErrInvalidParameter, info.BitsAllocated)
	}
	return g, nil
}

// GridToFrame serializes a grid as an unsigned native pixel-data frame with
// the given bit depth (8 or 16). Samples are rounded and clamped to the
// range the depth can hold.
func GridToFrame(g *Grid, bitsAllocated int) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidParameter)
	}
	n := g.Width * g.Height

	switch bitsAllocated {
	case 8:
		out := make([]byte, n)
		for i, v := range g.Data {
			out[i] = byte(clampRound(v, 0, 255))
		}
		return out, nil
	case 16:
		out := make([]byte, n*2)
		for i, v := range g.Data {
			binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(clampRound(v, 0, 65535)))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d bits allocated", ErrInvalidParameter, bitsAllocated)
	}
}

func clampRound(v, lo, hi float64) float64 {
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
