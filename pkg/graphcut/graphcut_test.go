package graphcut

import (
	"testing"

	"github.com/coraline-go/coraline/pkg/distfield"
	"github.com/coraline-go/coraline/pkg/grid"
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

func defaultParams(radius float64) Params {
	return Params{
		Radius:       radius,
		Lambda:       0,
		Grow:         0,
		Conservative: 0,
		ImgWeight:    1,
		DepthWeight:  0,
		Epsilon:      1e-11,
	}
}

// Scenario A (spec.md §8): flat grey image, no gradient, lambda=0,
// conservative=0: the data term is zero everywhere on the band, so the
// min cut is free to relabel it -- the only thing pinning the boundary in
// place is the signed-distance term, which requires conservative > 0. With
// conservative == 0 as well the result is degenerate (ties broken toward
// background) so this scenario uses a small conservative to pin the input.
func TestScenarioA_FlatImageStaysPut(t *testing.T) {
	w, h := 5, 5
	g := grid.New(w, h)
	img := solidImage(w, h, 128, 128, 128)
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= 1 {
				mask[g.Index(x, y)] = 1
			}
		}
	}
	field := distfield.FromBoundary(g, mask, 2)
	params := defaultParams(2)
	params.Conservative = 0.2
	res, err := Run(g, field, Inputs{Img: img, Mask: mask}, params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range mask {
		if res.Mask[i] != mask[i] {
			x, y := g.XY(i)
			t.Fatalf("pixel (%d,%d) changed from %d to %d with no gradient present", x, y, mask[i], res.Mask[i])
		}
	}
}

// Scenario B: sharp black/white edge one column away from the input mask
// boundary; the gradient-weighted smoothness term should snap the cut to
// the true edge.
func TestScenarioB_SnapsToTrueEdge(t *testing.T) {
	w, h := 7, 7
	g := grid.New(w, h)
	img := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := g.Index(x, y)
			var v byte = 255
			if x < 3 {
				v = 0
			}
			img[i*3+0], img[i*3+1], img[i*3+2] = v, v, v
		}
	}
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= 4 {
				mask[g.Index(x, y)] = 1
			}
		}
	}
	field := distfield.FromBoundary(g, mask, 3)
	params := defaultParams(3)
	params.Conservative = 0.2
	res, err := Run(g, field, Inputs{Img: img, Mask: mask}, params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// true edge is between column 2 (black) and column 3 (white)
	midY := 3
	if res.Mask[g.Index(2, midY)] != 0 {
		t.Fatalf("expected column 2 to end up background")
	}
	if res.Mask[g.Index(3, midY)] != 1 {
		t.Fatalf("expected column 3 to end up foreground (true edge)")
	}
}

// Scenario C: same setup as B but radius too narrow to reach the true
// edge -- output must equal the input.
func TestScenarioC_NarrowRadiusLeavesInputUnchanged(t *testing.T) {
	w, h := 7, 7
	g := grid.New(w, h)
	img := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := g.Index(x, y)
			var v byte = 255
			if x < 3 {
				v = 0
			}
			img[i*3+0], img[i*3+1], img[i*3+2] = v, v, v
		}
	}
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= 4 {
				mask[g.Index(x, y)] = 1
			}
		}
	}
	field := distfield.FromBoundary(g, mask, 1)
	params := defaultParams(1)
	params.Conservative = 0.2
	res, err := Run(g, field, Inputs{Img: img, Mask: mask}, params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range mask {
		if res.Mask[i] != mask[i] {
			t.Fatalf("expected mask unchanged with radius too narrow to reach the true edge")
		}
	}
}

func TestGrowDominatesBand(t *testing.T) {
	w, h := 9, 9
	g := grid.New(w, h)
	img := solidImage(w, h, 100, 100, 100)
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= 4 {
				mask[g.Index(x, y)] = 1
			}
		}
	}
	field := distfield.FromBoundary(g, mask, 3)
	params := defaultParams(3)
	params.Conservative = 0.2
	params.Grow = 1000
	res, err := Run(g, field, Inputs{Img: img, Mask: mask}, params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, i := range field.Pixels {
		if res.Mask[i] != 1 {
			t.Fatalf("expected every band pixel foreground with grow >> radius")
		}
	}
}

func TestPairwiseCapacitiesStrictlyPositive(t *testing.T) {
	img := solidImage(1, 1, 0, 0, 0)
	p := defaultParams(3)
	w := pairwiseWeight(append(img, 255, 255, 255), nil, 0, 1, p)
	if w < p.Epsilon {
		t.Fatalf("expected pairwise weight >= epsilon, got %v", w)
	}
	w2 := pairwiseWeight([]byte{10, 10, 10, 10, 10, 10}, nil, 0, 1, p)
	if w2 <= 0 {
		t.Fatalf("expected strictly positive pairwise weight for identical colors, got %v", w2)
	}
}
