package segment

import (
	"testing"
)

func solidImage(w, h int, r, g, b byte) []byte {
	img := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		img[i*3+0] = r
		img[i*3+1] = g
		img[i*3+2] = b
	}
	return img
}

// Scenario E (spec.md §8): uniform input mask -> empty band -> output
// identical to input.
func TestScenarioE_UniformMaskEmptyBand(t *testing.T) {
	w, h := 10, 10
	mask := make([]uint8, w*h)
	for i := range mask {
		mask[i] = 1
	}
	img := solidImage(w, h, 200, 200, 200)
	s := New(DefaultConfig())
	res, err := s.Segment(Input{W: w, H: h, Img: img, Mask: mask})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if !res.EmptyBand {
		t.Fatalf("expected EmptyBand for a uniform mask")
	}
	for i := range mask {
		if res.Mask[i] != mask[i] {
			t.Fatalf("expected output identical to input on empty band")
		}
	}
}

// Invariant 6 (spec.md §8): idempotence on a crisp mask -- feeding a
// graph-cut result back in with the same config reproduces it bit-for-bit.
func TestIdempotenceOnCrispMask(t *testing.T) {
	w, h := 12, 12
	mask := make([]uint8, w*h)
	img := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			if x >= 6 {
				mask[i] = 1
			}
			var v byte = 50
			if x >= 6 {
				v = 220
			}
			img[i*3+0], img[i*3+1], img[i*3+2] = v, v, v
		}
	}
	cfg := DefaultConfig()
	cfg.Radius = 4
	cfg.Lambda = 0
	s := New(cfg)
	first, err := s.Segment(Input{W: w, H: h, Img: img, Mask: mask})
	if err != nil {
		t.Fatalf("first Segment: %v", err)
	}
	second, err := s.Segment(Input{W: w, H: h, Img: img, Mask: first.Mask})
	if err != nil {
		t.Fatalf("second Segment: %v", err)
	}
	for i := range first.Mask {
		if first.Mask[i] != second.Mask[i] {
			t.Fatalf("expected idempotent result at pixel %d: %d vs %d", i, first.Mask[i], second.Mask[i])
		}
	}
}

func TestInvalidGeometryRejected(t *testing.T) {
	s := New(DefaultConfig())
	_, err := s.Segment(Input{W: 2, H: 2, Img: make([]byte, 12), Mask: make([]uint8, 4)})
	if err == nil {
		t.Fatalf("expected error for width/height <= 2")
	}
	_, err = s.Segment(Input{W: 5, H: 5, Img: make([]byte, 10), Mask: make([]uint8, 25)})
	if err == nil {
		t.Fatalf("expected error for mismatched image buffer size")
	}
}

func TestMaskIoU(t *testing.T) {
	a := []uint8{1, 1, 0, 0}
	b := []uint8{1, 0, 0, 0}
	if got := MaskIoU(a, b); got != 0.5 {
		t.Fatalf("expected IoU 0.5, got %v", got)
	}
	if got := MaskIoU([]uint8{0, 0}, []uint8{0, 0}); got != 0 {
		t.Fatalf("expected IoU 0 for empty union, got %v", got)
	}
}

func TestGeodesicMethodRuns(t *testing.T) {
	w, h := 9, 9
	mask := make([]uint8, w*h)
	img := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x + y*w
			if x >= 5 {
				mask[i] = 1
			}
			var v byte = 30
			if x >= 5 {
				v = 230
			}
			img[i*3+0], img[i*3+1], img[i*3+2] = v, v, v
		}
	}
	cfg := DefaultConfig()
	cfg.Method = Geodesic
	cfg.Radius = 3
	s := New(cfg)
	res, err := s.Segment(Input{W: w, H: h, Img: img, Mask: mask})
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(res.Mask) != w*h {
		t.Fatalf("expected output mask same size as input")
	}
}
