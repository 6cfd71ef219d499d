// Package graphcut builds the min-cut energy over the band and reads back
// the refined mask. See spec.md §4.5.
package graphcut

import (
	"math"

	"github.com/coraline-go/coraline/pkg/distfield"
	"github.com/coraline-go/coraline/pkg/grid"
	"github.com/coraline-go/coraline/pkg/maxflow"
)

// PinCapacity is the hard terminal capacity assigned to confident-interior
// pixels so the min cut never relabels them (spec.md §4.5 "Pinning").
const PinCapacity = 1e5

// Params bundles the subset of segment.Config that the energy builder
// needs, so this package has no dependency on pkg/segment.
type Params struct {
	Radius       float64
	Lambda       float64
	Grow         float64
	Conservative float64
	ImgWeight    float64
	DepthWeight  float64
	Epsilon      float64
}

// Inputs bundles the per-pixel fields the energy builder reads.
type Inputs struct {
	Img   []byte // W*H*3 RGB
	Depth []byte // W*H, nil if absent
	Mask  []uint8
	Pred  []float64 // signed predictor, nil if absent
	Fore  []float64 // foreprob, nil if Lambda == 0
	Back  []float64 // backprob, nil if Lambda == 0
}

// Result is the outcome of one graph-cut solve.
type Result struct {
	Mask []uint8
	Flow float64
}

// Run builds the energy over field.Pixels and solves it, returning a fresh
// mask equal to the input everywhere except on band pixels (spec.md §4.5
// "Post-cut readback").
func Run(g grid.Grid, field distfield.Field, in Inputs, p Params) (Result, error) {
	out := make([]uint8, len(in.Mask))
	copy(out, in.Mask)

	pixels := field.Pixels
	if len(pixels) == 0 {
		return Result{Mask: out, Flow: 0}, nil
	}

	graph := maxflow.NewGraph(len(pixels), 6*len(pixels))
	nodeOf := make([]int, g.W*g.H)
	for i := range nodeOf {
		nodeOf[i] = -1
	}
	for _, i := range pixels {
		nodeOf[i] = graph.AddNode()
	}

	for _, i := range pixels {
		k := nodeOf[i]
		wfore, wback := terminalWeights(i, in, p, field)
		if wfore < 0 {
			wfore = 0
		}
		if wback < 0 {
			wback = 0
		}
		if err := graph.AddTweights(k, wfore, wback); err != nil {
			return Result{}, err
		}
	}

	forward := grid.ForwardNeighbors(g.W)
	forwardW := grid.ForwardWeights
	for _, i := range pixels {
		k := nodeOf[i]
		for j := 0; j < 4; j++ {
			n := i + forward[j]
			if n < 0 || n >= len(nodeOf) {
				continue
			}
			kn := nodeOf[n]
			if kn < 0 {
				continue
			}
			w := pairwiseWeight(in.Img, in.Depth, i, n, p) * forwardW[j]
			if w < p.Epsilon {
				w = p.Epsilon
			}
			if err := graph.AddEdge(k, kn, w, w); err != nil {
				return Result{}, err
			}
		}
	}

	flow, err := graph.Maxflow()
	if err != nil {
		return Result{}, err
	}

	for _, i := range pixels {
		if graph.WhatSegment(nodeOf[i]) == maxflow.Source {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
	return Result{Mask: out, Flow: flow}, nil
}

// terminalWeights computes (capSource, capSink) for band pixel i, per
// spec.md §4.5: hard pin for confident-interior pixels (distance capped at
// radius by the distance field), otherwise the soft data term made of the
// color-model regional term, the signed-distance term and, if present, the
// predictor override.
func terminalWeights(i int, in Inputs, p Params, field distfield.Field) (float64, float64) {
	d := field.Distance[i]
	if d > p.Radius-1 {
		if in.Mask[i] == 1 {
			return PinCapacity, 0
		}
		return 0, PinCapacity
	}

	var wfore, wback float64
	if p.Lambda > 0 && in.Fore != nil {
		wfore += p.Lambda * in.Fore[i]
		wback += p.Lambda * in.Back[i]
	}

	signed := d
	if in.Mask[i] != 1 {
		signed = -d
	}
	delta := signed + p.Grow
	penalty := p.Conservative * (delta / (p.Radius - 1))
	wfore += penalty
	wback -= penalty

	if in.Pred != nil {
		pred := in.Pred[i]
		if pred > 0 {
			wfore = p.Lambda * pred
			wback = 0
		} else if pred < 0 {
			wback = p.Lambda * -pred
			wfore = 0
		}
	}

	return wfore, wback
}

// pairwiseWeight computes V_ij per spec.md §4.5's smoothness term: an
// exponential falloff on the combined image/depth gradient between
// neighboring pixels a and b, floored at Epsilon to keep the graph
// connected.
func pairwiseWeight(img, depth []byte, a, b int, p Params) float64 {
	var sumSq float64
	for c := 0; c < 3; c++ {
		diff := (float64(img[a*3+c]) - float64(img[b*3+c])) / 255.0
		sumSq += diff * diff
	}
	g := p.ImgWeight * math.Sqrt(sumSq)

	var d float64
	if depth != nil {
		d = p.DepthWeight * 3 * math.Abs(float64(depth[a])-float64(depth[b])) / 255.0
	}

	weight := math.Exp(-25 * (g + d))
	if weight < p.Epsilon {
		weight = p.Epsilon
	}
	return weight
}
