// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "testing"

func rearr(name string, segs ...Segment) Rearrangement {
	return Rearrangement{Name: name, Segments: segs}
}

func TestEndpointsForForwardSegments(t *testing.T) {
	r := rearr("r0", Segment{Chrom: "chrA", Beg: 100, End: 200})
	first, last := endpointsFor(0, r)
	if !first.IsLowerEnd || first.Mid != 100 || first.EndSide != 0 {
		t.Errorf("first = %+v, want lower end at 100", first)
	}
	if last.IsLowerEnd || last.Mid != 200 || last.EndSide != 1 {
		t.Errorf("last = %+v, want upper end at 200", last)
	}
}

func TestEndpointsForReverseSegments(t *testing.T) {
	r := rearr("r0", Segment{Chrom: "chrA", Beg: 200, End: 100})
	first, last := endpointsFor(0, r)
	if first.IsLowerEnd || first.Mid != 200 {
		t.Errorf("first = %+v, want upper end at 200", first)
	}
	if !last.IsLowerEnd || last.Mid != 100 {
		t.Errorf("last = %+v, want lower end at 100", last)
	}
}

func TestBuildEdgesMatchesAdjacentRearrangements(t *testing.T) {
	rearrs := []Rearrangement{
		rearr("r0", Segment{Chrom: "chrA", Beg: 100, End: 200}),
		rearr("r1", Segment{Chrom: "chrA", Beg: 250, End: 350}),
	}
	edges, matches := BuildEdges(rearrs, false)
	if len(matches) != 1 || matches[0].Count != 1 || matches[0].Ambiguous {
		t.Fatalf("got matches %+v, want one unambiguous chromosome", matches)
	}
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1: %+v", len(edges), edges)
	}
	e := edges[0]
	if e.A.RearrIndex != 0 || e.A.EndSide != 1 || e.B.RearrIndex != 1 || e.B.EndSide != 0 {
		t.Errorf("got edge %+v, want r0's end 1 matched to r1's end 0", e)
	}
}

func TestMaxMatchingCountAmbiguous(t *testing.T) {
	// Two upper ends open before a lower end: 2 distinct maximum matchings.
	nodes := []EndpointNode{
		{Mid: 0, IsLowerEnd: false, RearrIndex: 0, EndSide: 1},
		{Mid: 10, IsLowerEnd: false, RearrIndex: 1, EndSide: 1},
		{Mid: 20, IsLowerEnd: true, RearrIndex: 2, EndSide: 0},
	}
	if got := MaxMatchingCount(nodes); got != 2 {
		t.Errorf("got count %d, want 2", got)
	}
	all := EnumerateMatchings(nodes)
	if len(all) != 2 {
		t.Fatalf("got %d enumerated matchings, want 2: %+v", len(all), all)
	}
}

func TestGreedyMatchLIFO(t *testing.T) {
	nodes := []EndpointNode{
		{Mid: 0, IsLowerEnd: false, RearrIndex: 0, EndSide: 1},
		{Mid: 10, IsLowerEnd: false, RearrIndex: 1, EndSide: 1},
		{Mid: 20, IsLowerEnd: true, RearrIndex: 2, EndSide: 0},
	}
	edges := GreedyMatch(nodes)
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0].A.RearrIndex != 1 {
		t.Errorf("got partner %d, want the most recently opened upper end (1)", edges[0].A.RearrIndex)
	}
}

func TestMaxMatchingCountUnmatchedLowerEnd(t *testing.T) {
	nodes := []EndpointNode{
		{Mid: 0, IsLowerEnd: true, RearrIndex: 0, EndSide: 0},
	}
	if got := MaxMatchingCount(nodes); got != 1 {
		t.Errorf("got %d, want 1 (no open upper end, one trivial matching)", got)
	}
	if edges := GreedyMatch(nodes); len(edges) != 0 {
		t.Errorf("got %d edges, want 0", len(edges))
	}
}
