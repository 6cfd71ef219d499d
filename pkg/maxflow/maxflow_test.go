package maxflow

import "testing"

func TestSimpleTwoNodeCut(t *testing.T) {
	g := NewGraph(2, 1)
	a := g.AddNode()
	b := g.AddNode()
	if err := g.AddTweights(a, 5, 0); err != nil {
		t.Fatalf("AddTweights: %v", err)
	}
	if err := g.AddTweights(b, 0, 3); err != nil {
		t.Fatalf("AddTweights: %v", err)
	}
	if err := g.AddEdge(a, b, 10, 10); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	flow, err := g.Maxflow()
	if err != nil {
		t.Fatalf("Maxflow: %v", err)
	}
	if flow != 3 {
		t.Fatalf("expected max flow 3 (bottleneck at b->sink), got %v", flow)
	}
	if g.WhatSegment(a) != Source {
		t.Fatalf("expected node a on SOURCE side")
	}
	// The cut severs b->sink; a->b keeps residual capacity 7, so b is still
	// reachable from SOURCE.
	if g.WhatSegment(b) != Source {
		t.Fatalf("expected node b on SOURCE side")
	}
}

func TestCheapEdgeSplitsCut(t *testing.T) {
	// Two nodes strongly pinned to opposite terminals with a cheap edge
	// between them: min cut should sever the edge, not a terminal link.
	g := NewGraph(2, 1)
	a := g.AddNode()
	b := g.AddNode()
	_ = g.AddTweights(a, 100, 0)
	_ = g.AddTweights(b, 0, 100)
	_ = g.AddEdge(a, b, 1, 1)
	flow, err := g.Maxflow()
	if err != nil {
		t.Fatalf("Maxflow: %v", err)
	}
	if flow != 1 {
		t.Fatalf("expected flow 1 (cheap edge cut), got %v", flow)
	}
	if g.WhatSegment(a) != Source || g.WhatSegment(b) != Sink {
		t.Fatalf("expected a/SOURCE b/SINK, got %v/%v", g.WhatSegment(a), g.WhatSegment(b))
	}
}

func TestChainMaxflow(t *testing.T) {
	// source -> 0 -> 1 -> 2 -> sink, bottleneck in the middle edge.
	g := NewGraph(3, 2)
	n0 := g.AddNode()
	n1 := g.AddNode()
	n2 := g.AddNode()
	_ = g.AddTweights(n0, 10, 0)
	_ = g.AddTweights(n2, 0, 10)
	_ = g.AddEdge(n0, n1, 4, 0)
	_ = g.AddEdge(n1, n2, 10, 0)
	flow, err := g.Maxflow()
	if err != nil {
		t.Fatalf("Maxflow: %v", err)
	}
	if flow != 4 {
		t.Fatalf("expected flow 4, got %v", flow)
	}
}

func TestRejectsNegativeCapacity(t *testing.T) {
	g := NewGraph(2, 1)
	a := g.AddNode()
	b := g.AddNode()
	if err := g.AddTweights(a, -1, 0); err == nil {
		t.Fatalf("expected error for negative terminal capacity")
	}
	if err := g.AddEdge(a, b, -1, 1); err == nil {
		t.Fatalf("expected error for negative edge capacity")
	}
}
