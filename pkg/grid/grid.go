// Package grid implements the 8-connected pixel-grid geometry shared by the
// distance field, graph-cut and geodesic components: linear indexing,
// border-safe neighbor iteration and chamfer step weights.
package grid

import "math"

// Sqrt2 is the chamfer weight for a diagonal grid step.
var Sqrt2 = math.Sqrt2

// Offsets holds the eight neighbor linear-index deltas for a grid of width W,
// in the fixed order: NW, N, NE, W, E, SW, S, SE.
func Offsets(w int) [8]int {
	return [8]int{-w - 1, -w, -w + 1, -1, 1, w - 1, w, w + 1}
}

// Weights holds the chamfer step weight matching each Offsets entry:
// orthogonal moves cost 1, diagonal moves cost sqrt(2).
var Weights = [8]float64{Sqrt2, 1, Sqrt2, 1, 1, Sqrt2, 1, Sqrt2}

// Grid describes a W x H pixel raster and the interior region (the
// one-pixel outer frame excluded) that all traversals are restricted to.
type Grid struct {
	W, H int
}

// New returns a Grid for the given dimensions.
func New(w, h int) Grid {
	return Grid{W: w, H: h}
}

// Index returns the linear pixel index for (x, y).
func (g Grid) Index(x, y int) int {
	return x + y*g.W
}

// XY returns the (x, y) coordinate for a linear pixel index.
func (g Grid) XY(i int) (x, y int) {
	return i % g.W, i / g.W
}

// InInterior reports whether (x, y) lies strictly inside the one-pixel
// border, i.e. 1 <= x <= W-2 and 1 <= y <= H-2. Only interior pixels are
// guaranteed to have all eight neighbors in bounds.
func (g Grid) InInterior(x, y int) bool {
	return x >= 1 && x <= g.W-2 && y >= 1 && y <= g.H-2
}

// IndexInInterior reports the same as InInterior given a linear index.
func (g Grid) IndexInInterior(i int) bool {
	x, y := g.XY(i)
	return g.InInterior(x, y)
}

// EachInteriorNeighbor invokes fn for each of the eight neighbors of the
// interior pixel i, passing the neighbor's linear index and its chamfer
// step weight. The caller must ensure i is an interior pixel (see
// InInterior); this function performs no further bounds checking, matching
// the source's reliance on the scan loop staying inside 1..W-2 / 1..H-2.
func (g Grid) EachInteriorNeighbor(i int, fn func(neighbor int, weight float64)) {
	offs := Offsets(g.W)
	for k := 0; k < 8; k++ {
		fn(i+offs[k], Weights[k])
	}
}

// ForwardNeighbors returns the four "forward" neighbor offsets (E, S, SE,
// SW) used by the graph-cut pairwise term: each undirected edge is visited
// exactly once by considering only these four directions per pixel.
func ForwardNeighbors(w int) [4]int {
	return [4]int{1, w, w + 1, w - 1}
}

// ForwardWeights holds the chamfer weight for each ForwardNeighbors entry.
var ForwardWeights = [4]float64{1, 1, 1 / math.Sqrt2, 1 / math.Sqrt2}

// IsBoundary reports whether pixel i's label differs from any of its eight
// interior neighbors. The caller must restrict scanning to interior pixels.
func (g Grid) IsBoundary(i int, label func(int) uint8) bool {
	p := label(i)
	boundary := false
	g.EachInteriorNeighbor(i, func(n int, _ float64) {
		if label(n) != p {
			boundary = true
		}
	})
	return boundary
}
