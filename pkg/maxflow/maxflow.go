// Package maxflow implements an s-t minimum cut / maximum flow solver over a
// sparse directed graph with two implicit terminals. It exposes the
// interface of the Boykov-Kolmogorov maxflow library used by the original
// Coraline (see original_source/coraline/src/maxflow.h), but solves with
// BFS shortest augmenting paths (Edmonds-Karp); it does not implement the
// Boykov-Kolmogorov search-tree reuse.
//
// The graph is index-based rather than pointer-based: nodes are a flat
// slice and arcs are a packed adjacency list with paired forward/reverse
// indices, matching the "index-based graph, not pointer graph" design note.
package maxflow

import (
	"errors"
	"math"
)

// Segment labels a node after maxflow has run.
type Segment int

const (
	// Sink is the default label; a node belongs to Sink unless maxflow
	// finds it reachable from Source in the residual graph.
	Sink Segment = iota
	// Source labels nodes reachable from the source terminal after the
	// min cut has been computed.
	Source
)

// ErrNonFiniteCapacity is returned by AddTweights/AddEdge/Maxflow when a
// capacity is negative, NaN or infinite — a programmer error in the caller,
// per spec §4.2's "negative capacities are a programmer bug" / §7's
// CapacityOverflow error kind.
var ErrNonFiniteCapacity = errors.New("maxflow: non-finite or negative capacity")

type arc struct {
	to  int
	rev int // index, in to's arc list, of the reverse arc
	cap float64
}

// Graph is a sparse s-t flow network with double-precision capacities.
// It is built once, solved once via Maxflow, and read back via WhatSegment;
// it is not designed to be reused or mutated after Maxflow runs.
type Graph struct {
	arcs      [][]arc
	capSource []float64 // residual capacity source -> node
	capSink   []float64 // residual capacity node -> sink
	tree      []int8    // 1 = reachable from SOURCE in the final residual graph, 0 = not
	flow      float64
	solved    bool
}

// NewGraph returns an empty graph. nodeHint presizes the per-node slices;
// edgeHint is accepted for parity with the source's Graph(nodeHint,
// edgeHint) constructor and is not used. Both may be zero.
func NewGraph(nodeHint, edgeHint int) *Graph {
	g := &Graph{}
	if nodeHint > 0 {
		g.arcs = make([][]arc, 0, nodeHint)
		g.capSource = make([]float64, 0, nodeHint)
		g.capSink = make([]float64, 0, nodeHint)
	}
	_ = edgeHint
	return g
}

// AddNode appends one node and returns its index.
func (g *Graph) AddNode() int {
	k := len(g.arcs)
	g.arcs = append(g.arcs, nil)
	g.capSource = append(g.capSource, 0)
	g.capSink = append(g.capSink, 0)
	return k
}

func validCap(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// AddTweights accumulates terminal capacities for node k: capSource is the
// capacity of the arc from SOURCE to k, capSink the capacity of the arc
// from k to SINK. Repeated calls accumulate, matching the source's
// add_tweights semantics.
func (g *Graph) AddTweights(k int, capSource, capSink float64) error {
	if !validCap(capSource) || !validCap(capSink) {
		return ErrNonFiniteCapacity
	}
	g.capSource[k] += capSource
	g.capSink[k] += capSink
	return nil
}

// AddEdge adds a bidirectional pair of arcs between k and l with
// independently settable forward (k->l) and reverse (l->k) capacities.
func (g *Graph) AddEdge(k, l int, capKL, capLK float64) error {
	if !validCap(capKL) || !validCap(capLK) {
		return ErrNonFiniteCapacity
	}
	ak := len(g.arcs[k])
	al := len(g.arcs[l])
	g.arcs[k] = append(g.arcs[k], arc{to: l, rev: al, cap: capKL})
	g.arcs[l] = append(g.arcs[l], arc{to: k, rev: ak, cap: capLK})
	return nil
}

// Maxflow computes the maximum flow (equivalently, the minimum s-t cut
// cost) using BFS-based augmenting paths (Edmonds-Karp over the residual
// network — a straightforward, allocation-light stand-in for the original
// tree-reuse BK search that preserves the same SOURCE/SINK readback
// contract). It must be called exactly once per graph.
func (g *Graph) Maxflow() (float64, error) {
	n := len(g.arcs)
	var total float64
	prevArc := make([]int, n)  // index into arcs[node] of the arc used to reach node during this BFS
	prevNode := make([]int, n) // predecessor node, or -1 for the terminal
	for {
		// BFS from SOURCE over arcs with positive residual capacity.
		visited := make([]bool, n)
		queue := make([]int, 0, n)
		for i := range prevNode {
			prevNode[i] = -2 // unvisited sentinel
		}
		// seed with every node reachable directly from SOURCE
		reachedSink := -1
		for k := 0; k < n; k++ {
			if g.capSource[k] > 0 && !visited[k] {
				visited[k] = true
				prevNode[k] = -1
				prevArc[k] = -1
				queue = append(queue, k)
			}
		}
		for qi := 0; qi < len(queue) && reachedSink < 0; qi++ {
			u := queue[qi]
			if g.capSink[u] > 0 {
				reachedSink = u
				break
			}
			for ai := range g.arcs[u] {
				a := &g.arcs[u][ai]
				if a.cap <= 0 || visited[a.to] {
					continue
				}
				visited[a.to] = true
				prevNode[a.to] = u
				prevArc[a.to] = ai
				queue = append(queue, a.to)
			}
		}
		if reachedSink < 0 {
			break
		}
		// find bottleneck along SOURCE -> ... -> reachedSink -> SINK
		bottleneck := g.capSink[reachedSink]
		for v := reachedSink; prevNode[v] != -1; v = prevNode[v] {
			u := prevNode[v]
			a := g.arcs[u][prevArc[v]]
			if a.cap < bottleneck {
				bottleneck = a.cap
			}
		}
		root := reachedSink
		for prevNode[root] != -1 {
			root = prevNode[root]
		}
		if g.capSource[root] < bottleneck {
			bottleneck = g.capSource[root]
		}
		if !validCap(bottleneck) {
			return total, ErrNonFiniteCapacity
		}
		if bottleneck <= 0 {
			break
		}
		// push flow
		g.capSink[reachedSink] -= bottleneck
		for v := reachedSink; prevNode[v] != -1; v = prevNode[v] {
			u := prevNode[v]
			ai := prevArc[v]
			g.arcs[u][ai].cap -= bottleneck
			rev := g.arcs[u][ai]
			g.arcs[v][rev.rev].cap += bottleneck
		}
		g.capSource[root] -= bottleneck
		total += bottleneck
	}
	g.flow = total
	g.solved = true
	g.markReachable()
	return total, nil
}

// markReachable records, for every node, whether it is reachable from
// SOURCE in the final residual graph, which is the SOURCE/SINK label used
// by WhatSegment.
func (g *Graph) markReachable() {
	n := len(g.arcs)
	g.tree = make([]int8, n)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for k := 0; k < n; k++ {
		if g.capSource[k] > 0 {
			visited[k] = true
			queue = append(queue, k)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		g.tree[u] = 1
		for _, a := range g.arcs[u] {
			if a.cap > 0 && !visited[a.to] {
				visited[a.to] = true
				queue = append(queue, a.to)
			}
		}
	}
}

// WhatSegment returns the terminal node k belongs to after Maxflow has run.
func (g *Graph) WhatSegment(k int) Segment {
	if !g.solved {
		return Sink
	}
	if g.tree[k] == 1 {
		return Source
	}
	return Sink
}
