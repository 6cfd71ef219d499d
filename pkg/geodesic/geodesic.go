// Package geodesic implements the two-source shortest-path alternative to
// the graph-cut solver: a Dijkstra-style wavefront grown from confident
// foreground and confident background, weighted by a scalar field, with
// ties broken deterministically by insertion order. See spec.md §4.6.
package geodesic

import (
	"container/heap"
	"math"

	"github.com/coraline-go/coraline/pkg/grid"
)

// Infinity is the sentinel distance for pixels neither front has reached.
const Infinity = math.MaxFloat32

// Labels used by the retagged mask that geodesic solving expects as input,
// per spec.md §4.6's precondition.
const (
	Unknown    uint8 = 0
	Background uint8 = 1
	Foreground uint8 = 2
)

// Retag converts a plain {0,1} mask plus a distance field into the
// {0 unknown, 1 background, 2 foreground} tagging the geodesic solver
// requires: pixels inside the band (distance < radius) become Unknown,
// confident pixels get background/foreground shifted up by one (matching
// the "+1 tag applied at entry" that Untag maps back out).
func Retag(mask []uint8, distance []float64, radius float64) []uint8 {
	out := make([]uint8, len(mask))
	for i, d := range distance {
		if d < radius {
			out[i] = Unknown
		} else if mask[i] == 1 {
			out[i] = Foreground
		} else {
			out[i] = Background
		}
	}
	return out
}

// Untag converts a {0 unknown, 1 background, 2 foreground} mask, as
// returned by Label, back into the plain {0,1} mask the rest of the system
// uses: Foreground becomes 1, Background and any remaining Unknown become 0.
func Untag(tagged []uint8) []uint8 {
	out := make([]uint8, len(tagged))
	for i, v := range tagged {
		switch v {
		case Foreground:
			out[i] = 1
		case Background, Unknown:
			out[i] = 0
		}
	}
	return out
}

type heapItem struct {
	index int
	dist  float64
	seq   int // insertion index, used as a deterministic tie-break
}

type priorityQueue []heapItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)        { *pq = append(*pq, x.(heapItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Fields holds the two geodesic distance fields grown from confident
// foreground and confident background.
type Fields struct {
	Fore []float64
	Back []float64
}

// Run grows foregeo/backgeo from every interior boundary pixel between a
// confident region and Unknown, relaxing only Unknown neighbors, per
// spec.md §4.6. probs is the scalar field used for the edge cost (in
// practice the color-model-derived field; spec.md §9 notes that the
// original leaves this largely at zero in practice, so it is surfaced here
// as an explicit argument rather than hidden inside the color model).
func Run(g grid.Grid, tagged []uint8, probs []float64) Fields {
	n := g.W * g.H
	fore := make([]float64, n)
	back := make([]float64, n)
	for i := range fore {
		fore[i] = Infinity
		back[i] = Infinity
	}

	pq := &priorityQueue{}
	seq := 0
	push := func(i int, d float64) {
		heap.Push(pq, heapItem{index: i, dist: d, seq: seq})
		seq++
	}

	for y := 1; y <= g.H-2; y++ {
		for x := 1; x <= g.W-2; x++ {
			i := g.Index(x, y)
			if !isBorderToUnknown(g, tagged, i) {
				continue
			}
			switch tagged[i] {
			case Foreground:
				fore[i] = 0
				push(i, 0)
			case Background:
				back[i] = 0
				push(i, 0)
			}
		}
	}

	offs := grid.Offsets(g.W)
	for pq.Len() > 0 {
		next := heap.Pop(pq).(heapItem)
		i := next.index
		fd := fore[i]
		bd := back[i]

		if fd < bd {
			if fd < next.dist {
				continue // stale entry, already improved
			}
			for k := 0; k < 8; k++ {
				target := i + offs[k]
				if target < 0 || target >= n || tagged[target] != Unknown {
					continue
				}
				cost := grid.Weights[k] * math.Abs(probs[i]-probs[target])
				dist := fd + cost
				if back[target] < dist {
					continue
				}
				if dist < fore[target] {
					fore[target] = dist
					push(target, dist)
				}
			}
		} else {
			if bd < next.dist {
				continue
			}
			for k := 0; k < 8; k++ {
				target := i + offs[k]
				if target < 0 || target >= n || tagged[target] != Unknown {
					continue
				}
				cost := grid.Weights[k] * math.Abs(probs[i]-probs[target])
				dist := bd + cost
				if fore[target] < dist {
					continue
				}
				if dist < back[target] {
					back[target] = dist
					push(target, dist)
				}
			}
		}
	}

	return Fields{Fore: fore, Back: back}
}

func isBorderToUnknown(g grid.Grid, tagged []uint8, i int) bool {
	offs := grid.Offsets(g.W)
	for k := 0; k < 8; k++ {
		n := i + offs[k]
		if n < 0 || n >= len(tagged) {
			continue
		}
		if tagged[n] == Unknown {
			return true
		}
	}
	return false
}

// Label assigns the final {1,2}-tagged mask: every Unknown pixel becomes
// Foreground iff its geodesic distance to the foreground front is smaller
// than to the background front, per spec.md §4.6 "Labelling". Confident
// pixels are returned unchanged.
func Label(tagged []uint8, fields Fields) []uint8 {
	out := make([]uint8, len(tagged))
	copy(out, tagged)
	for i, v := range tagged {
		if v != Unknown {
			continue
		}
		if fields.Fore[i] < fields.Back[i] {
			out[i] = Foreground
		} else {
			out[i] = Background
		}
	}
	return out
}
