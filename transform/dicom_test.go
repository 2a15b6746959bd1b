package transform

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// testPixelData is a minimal imagetypes.PixelData for the frame bridge tests.
type testPixelData struct {
	frames    [][]byte
	frameInfo *imagetypes.FrameInfo
}

func (p *testPixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, errors.New("frame index out of range")
	}
	return p.frames[frameIndex], nil
}

func (p *testPixelData) AddFrame(frameData []byte) error {
	p.frames = append(p.frames, frameData)
	return nil
}

func (p *testPixelData) FrameCount() int {
	return len(p.frames)
}

func (p *testPixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

func (p *testPixelData) IsEncapsulated() bool {
	return false
}

func monoFrameInfo(width, height uint16, bits uint16, signed uint16) *imagetypes.FrameInfo {
	return &imagetypes.FrameInfo{
		Width:                     width,
		Height:                    height,
		BitsAllocated:             bits,
		BitsStored:                bits,
		HighBit:                   bits - 1,
		SamplesPerPixel:           1,
		PixelRepresentation:       signed,
		PhotometricInterpretation: "MONOCHROME2",
	}
}

func TestGridFromFrame8Bit(t *testing.T) {
	pd := &testPixelData{frameInfo: monoFrameInfo(4, 2, 8, 0)}
	raw := []byte{0, 50, 100, 150, 200, 250, 255, 1}
	if err := pd.AddFrame(raw); err != nil {
		t.Fatal(err)
	}

	g, err := GridFromFrame(pd, 0)
	if err != nil {
		t.Fatalf("GridFromFrame failed: %v", err)
	}
	if g.Width != 4 || g.Height != 2 {
		t.Fatalf("grid is %dx%d, want 4x2", g.Width, g.Height)
	}
	for i, b := range raw {
		if g.Data[i] != float64(b) {
			t.Errorf("sample %d = %v, want %d", i, g.Data[i], b)
		}
	}
}

func TestGridFromFrame16Bit(t *testing.T) {
	values := []uint16{0, 1024, 4095, 65535}
	raw := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(raw[i*2:i*2+2], v)
	}

	t.Run("unsigned", func(t *testing.T) {
		pd := &testPixelData{frameInfo: monoFrameInfo(2, 2, 16, 0)}
		pd.AddFrame(raw)
		g, err := GridFromFrame(pd, 0)
		if err != nil {
			t.Fatalf("GridFromFrame failed: %v", err)
		}
		for i, v := range values {
			if g.Data[i] != float64(v) {
				t.Errorf("sample %d = %v, want %d", i, g.Data[i], v)
			}
		}
	})

	t.Run("signed", func(t *testing.T) {
		pd := &testPixelData{frameInfo: monoFrameInfo(2, 2, 16, 1)}
		pd.AddFrame(raw)
		g, err := GridFromFrame(pd, 0)
		if err != nil {
			t.Fatalf("GridFromFrame failed: %v", err)
		}
		// 65535 reads as -1 in two's complement.
		if g.Data[3] != -1 {
			t.Errorf("sample 3 = %v, want -1", g.Data[3])
		}
	})
}

func TestGridFromFrameErrors(t *testing.T) {
	t.Run("nil pixel data", func(t *testing.T) {
		if _, err := GridFromFrame(nil, 0); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})

	t.Run("multi-sample", func(t *testing.T) {
		info := monoFrameInfo(2, 2, 8, 0)
		info.SamplesPerPixel = 3
		pd := &testPixelData{frameInfo: info}
		pd.AddFrame(make([]byte, 12))
		if _, err := GridFromFrame(pd, 0); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})

	t.Run("unsupported depth", func(t *testing.T) {
		pd := &testPixelData{frameInfo: monoFrameInfo(2, 2, 32, 0)}
		pd.AddFrame(make([]byte, 16))
		if _, err := GridFromFrame(pd, 0); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})

	t.Run("short frame", func(t *testing.T) {
		pd := &testPixelData{frameInfo: monoFrameInfo(4, 4, 8, 0)}
		pd.AddFrame(make([]byte, 7))
		if _, err := GridFromFrame(pd, 0); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("got %v, want ErrShapeMismatch", err)
		}
	})
}

func TestGridToFrameRoundTrip(t *testing.T) {
	g, err := FromValues([]float64{0, 127.4, 127.6, 255}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("8-bit", func(t *testing.T) {
		raw, err := GridToFrame(g, 8)
		if err != nil {
			t.Fatalf("GridToFrame failed: %v", err)
		}
		want := []byte{0, 127, 128, 255}
		for i, b := range want {
			if raw[i] != b {
				t.Errorf("byte %d = %d, want %d", i, raw[i], b)
			}
		}
	})

	t.Run("16-bit", func(t *testing.T) {
		raw, err := GridToFrame(g, 16)
		if err != nil {
			t.Fatalf("GridToFrame failed: %v", err)
		}
		if got := binary.LittleEndian.Uint16(raw[6:8]); got != 255 {
			t.Errorf("last sample = %d, want 255", got)
		}
	})

	t.Run("clamping", func(t *testing.T) {
		over, _ := FromValues([]float64{-40, 300}, 2, 1)
		raw, err := GridToFrame(over, 8)
		if err != nil {
			t.Fatalf("GridToFrame failed: %v", err)
		}
		if raw[0] != 0 || raw[1] != 255 {
			t.Errorf("clamped to %v, want [0 255]", raw)
		}
	})

	t.Run("bad depth", func(t *testing.T) {
		if _, err := GridToFrame(g, 12); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	})
}
