// Package distfield computes a bounded 8-connected chamfer distance
// transform from the current mask boundary (or from clip-point seeds),
// yielding the band of "uncertain" pixels within radius R where the
// segmentation boundary may move. See spec.md §4.3.
package distfield

import (
	"math"

	"github.com/coraline-go/coraline/pkg/grid"
)

// Infinity is the sentinel distance for pixels the wave never reached.
const Infinity = math.MaxFloat32

// Field holds the result of a bounded chamfer distance transform: the
// per-pixel distance (capped at R, with local maxima pinned to exactly R)
// and the ordered list of band pixels that were visited.
type Field struct {
	Distance []float64 // len W*H, Infinity for unvisited pixels
	Pixels   []int     // band pixel indices, in visitation order
}

// ClipPoint is an alternate seed for the distance field, restricting the
// band to a neighborhood of (X, Y) instead of growing it from the mask
// boundary.
type ClipPoint struct {
	X, Y int
}

// FromBoundary seeds the wave at every interior pixel whose mask label
// differs from one of its eight neighbors (border mode, the default per
// spec.md §4.3 step 2). mask must have length W*H; labels are interpreted
// as in spec.md §3 (0 = background, 1 = foreground, anything else treated
// as background for the boundary test).
func FromBoundary(g grid.Grid, mask []uint8, radius float64) Field {
	seeds := make([]int, 0, 64)
	label := func(i int) uint8 { return mask[i] }
	for y := 1; y <= g.H-2; y++ {
		for x := 1; x <= g.W-2; x++ {
			i := g.Index(x, y)
			if g.IsBoundary(i, label) {
				seeds = append(seeds, i)
			}
		}
	}
	return run(g, seeds, radius)
}

// FromClipPoints seeds the wave at the given points instead of the mask
// boundary (clip mode per spec.md §4.3 and §9's documented correction of
// the source's clips[i*2+2] off-by-one: each ClipPoint's X and Y are read
// directly, not re-derived from a flattened array with a doubled stride).
// Duplicate points collapse to a single seed.
func FromClipPoints(g grid.Grid, points []ClipPoint, radius float64) Field {
	seen := make(map[int]bool, len(points))
	seeds := make([]int, 0, len(points))
	for _, p := range points {
		i := g.Index(p.X, p.Y)
		if seen[i] {
			continue
		}
		seen[i] = true
		seeds = append(seeds, i)
	}
	return run(g, seeds, radius)
}

func run(g grid.Grid, seeds []int, radius float64) Field {
	n := g.W * g.H
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = Infinity
	}
	for _, s := range seeds {
		dist[s] = 0
	}

	visited := make([]int, 0, len(seeds)*4)
	visited = append(visited, seeds...)
	visitedSet := make(map[int]bool, len(seeds))
	for _, s := range seeds {
		visitedSet[s] = true
	}

	offs := grid.Offsets(g.W)
	wave := seeds
	for r := 0; r < int(radius); r++ {
		if len(wave) == 0 {
			break
		}
		var next []int
		for _, i := range wave {
			d := dist[i]
			for k := 0; k < 8; k++ {
				n := i + offs[k]
				if !g.IndexInInterior(n) {
					continue
				}
				dPrime := d + grid.Weights[k]
				if dPrime > radius {
					continue
				}
				if !visitedSet[n] {
					visitedSet[n] = true
					visited = append(visited, n)
					next = append(next, n)
				}
				if dPrime < dist[n] {
					dist[n] = dPrime
				}
			}
		}
		wave = next
	}

	// Local maxima within the visited set are pinned to exactly radius,
	// per spec.md §4.3 step 4: a pixel whose distance is >= every
	// 8-neighbor's distance is a local maximum.
	for _, i := range visited {
		if isLocalMax(g, dist, i) {
			dist[i] = radius
		}
	}

	return Field{Distance: dist, Pixels: visited}
}

func isLocalMax(g grid.Grid, dist []float64, i int) bool {
	if !g.IndexInInterior(i) {
		return false
	}
	d := dist[i]
	offs := grid.Offsets(g.W)
	for k := 0; k < 8; k++ {
		if d < dist[i+offs[k]] {
			return false
		}
	}
	return true
}
