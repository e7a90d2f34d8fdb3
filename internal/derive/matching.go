// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "sort"

// EndpointNode is one rearrangement end, placed on its chromosome's
// position axis (spec §3): the facing edge of a rearrangement's first
// segment (EndSide 0) or last segment (EndSide 1).
type EndpointNode struct {
	Chrom      string
	Mid        int
	IsLowerEnd bool
	RearrIndex int
	EndSide    int // 0: first segment's outer edge, 1: last segment's outer edge
}

// Edge is one matched pair of endpoints: a rearrangement's end is adjacent,
// in the derived chromosome, to another rearrangement's end.
type Edge struct {
	A, B EndpointNode
}

// endpointsFor derives r's two EndpointNodes (spec §4.9): the first
// segment's own begin edge and the last segment's own end edge — the two
// edges that face "outward" from the rearrangement and so are free to
// connect to another rearrangement's matching edge. A forward segment's
// begin edge is its lower (smaller-coordinate) end; a reverse segment's
// begin edge is its upper end, and symmetrically for the last segment's
// end edge.
func endpointsFor(idx int, r Rearrangement) (first, last EndpointNode) {
	head := r.Segments[0]
	tail := r.Segments[len(r.Segments)-1]
	first = EndpointNode{
		Chrom: head.Chrom, Mid: head.Beg, RearrIndex: idx, EndSide: 0,
		IsLowerEnd: head.forward(),
	}
	last = EndpointNode{
		Chrom: tail.Chrom, Mid: tail.End, RearrIndex: idx, EndSide: 1,
		IsLowerEnd: !tail.forward(),
	}
	return first, last
}

// MaxMatchingCount counts the number of distinct maximum matchings on a
// chromosome's position-sorted endpoint sequence (spec §4.9): scanning
// left to right with state = number of currently open upper ends, an
// upper end always opens; a lower end matches one of the k currently open
// upper ends, contributing a factor of k to the matching count (it can
// pair with any of them) while decrementing the open count by one
// regardless of which is chosen. A lower end with no open upper end stays
// unmatched. The running product is exactly the number of distinct
// maximum matchings, since every choice is independent of the resulting
// k-trajectory.
func MaxMatchingCount(nodes []EndpointNode) int {
	open := 0
	count := 1
	for _, n := range nodes {
		if !n.IsLowerEnd {
			open++
			continue
		}
		if open > 0 {
			count *= open
			open--
		}
	}
	return count
}

// GreedyMatch pairs each lower-end node with the most recently opened,
// still-unmatched upper-end node (a LIFO stack), which always realises a
// maximum matching on this interval-endpoint structure (spec §9).
func GreedyMatch(nodes []EndpointNode) []Edge {
	var stack []EndpointNode
	var edges []Edge
	for _, n := range nodes {
		if !n.IsLowerEnd {
			stack = append(stack, n)
			continue
		}
		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		edges = append(edges, Edge{A: top, B: n})
	}
	return edges
}

// EnumerateMatchings backtracks over every maximum matching of nodes (the
// --all option, spec §4.9): at each lower-end node it branches over every
// currently open upper end rather than always taking the most recent one.
func EnumerateMatchings(nodes []EndpointNode) [][]Edge {
	var out [][]Edge
	var rec func(i int, open []EndpointNode, acc []Edge)
	rec = func(i int, open []EndpointNode, acc []Edge) {
		if i == len(nodes) {
			cp := make([]Edge, len(acc))
			copy(cp, acc)
			out = append(out, cp)
			return
		}
		n := nodes[i]
		if !n.IsLowerEnd {
			nextOpen := make([]EndpointNode, len(open)+1)
			copy(nextOpen, open)
			nextOpen[len(open)] = n
			rec(i+1, nextOpen, acc)
			return
		}
		if len(open) == 0 {
			rec(i+1, open, acc)
			return
		}
		for j, partner := range open {
			rest := make([]EndpointNode, 0, len(open)-1)
			rest = append(rest, open[:j]...)
			rest = append(rest, open[j+1:]...)
			rec(i+1, rest, append(acc, Edge{A: partner, B: n}))
		}
	}
	rec(0, nil, nil)
	return out
}

// ChromosomeMatch is one chromosome's matching result.
type ChromosomeMatch struct {
	Chrom      string
	Count      int
	Ambiguous  bool
	Edges      []Edge
	AllMatches [][]Edge // populated only when BuildEdges was called with all=true
}

// BuildEdges groups every rearrangement's two endpoints by chromosome,
// sorts each chromosome's nodes by position, and matches them (spec
// §4.9). It returns the combined edge set used for chain walking (the
// default greedy matching) together with one ChromosomeMatch per
// chromosome for reporting ambiguity and, when all is requested, every
// enumerated maximum matching.
func BuildEdges(rearrs []Rearrangement, all bool) (edges []Edge, matches []ChromosomeMatch) {
	byChrom := make(map[string][]EndpointNode)
	var chroms []string
	for i, r := range rearrs {
		if len(r.Segments) == 0 {
			continue
		}
		first, last := endpointsFor(i, r)
		for _, n := range [2]EndpointNode{first, last} {
			if _, ok := byChrom[n.Chrom]; !ok {
				chroms = append(chroms, n.Chrom)
			}
			byChrom[n.Chrom] = append(byChrom[n.Chrom], n)
		}
	}
	sort.Strings(chroms)

	for _, c := range chroms {
		nodes := byChrom[c]
		sort.SliceStable(nodes, func(i, j int) bool {
			if nodes[i].Mid != nodes[j].Mid {
				return nodes[i].Mid < nodes[j].Mid
			}
			if nodes[i].RearrIndex != nodes[j].RearrIndex {
				return nodes[i].RearrIndex < nodes[j].RearrIndex
			}
			return nodes[i].EndSide < nodes[j].EndSide
		})

		count := MaxMatchingCount(nodes)
		m := ChromosomeMatch{
			Chrom:     c,
			Count:     count,
			Ambiguous: count > 1,
			Edges:     GreedyMatch(nodes),
		}
		if all {
			m.AllMatches = EnumerateMatchings(nodes)
		}
		edges = append(edges, m.Edges...)
		matches = append(matches, m)
	}
	return edges, matches
}

// combineMatchings returns the Cartesian product of every chromosome's
// enumerated maximum matchings (spec §4.9's "--all" option): one combined
// edge set per global choice of one matching per chromosome, since a
// chromosome's matchings are independent of every other chromosome's.
func combineMatchings(matches []ChromosomeMatch) [][]Edge {
	combos := [][]Edge{nil}
	for _, m := range matches {
		alts := m.AllMatches
		if len(alts) == 0 {
			alts = [][]Edge{nil}
		}
		next := make([][]Edge, 0, len(combos)*len(alts))
		for _, prefix := range combos {
			for _, alt := range alts {
				merged := make([]Edge, 0, len(prefix)+len(alt))
				merged = append(merged, prefix...)
				merged = append(merged, alt...)
				next = append(next, merged)
			}
		}
		combos = next
	}
	return combos
}
