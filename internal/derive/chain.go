// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

// ChainLink is one rearrangement's placement within a derived chromosome
// chain (spec §3, §4.9): RearrIndex names the rearrangement and Flip
// says whether it is walked in reverse (its segments reversed in order
// and each segment's own strand flipped).
type ChainLink struct {
	RearrIndex int
	Flip       bool
}

// Chain is one maximal walk through the rearrangement link graph built
// from a chromosome matching's edges (spec §4.9).
type Chain struct {
	Links    []ChainLink
	Circular bool
}

type chainEnd struct {
	rearr int
	side  int // 0 or 1, the raw EndSide
}

// WalkChains builds, from the edge set produced by BuildEdges, one chain
// per connected run of linked rearrangements (spec §4.9): starting from
// every not-yet-visited rearrangement in index order, it walks backward
// from end 0 and forward from end 1, prepending or appending each newly
// reached rearrangement with the flip bit that keeps the chain's
// internal connections consistent. A walk that reconnects to its own
// start marks the chain circular.
func WalkChains(n int, edges []Edge) []Chain {
	adj := make(map[chainEnd]chainEnd, len(edges)*2)
	for _, e := range edges {
		ka := chainEnd{e.A.RearrIndex, e.A.EndSide}
		kb := chainEnd{e.B.RearrIndex, e.B.EndSide}
		adj[ka] = kb
		adj[kb] = ka
	}

	used := make([]bool, n)
	var chains []Chain
	for start := 0; start < n; start++ {
		if used[start] {
			continue
		}
		chain := []ChainLink{{RearrIndex: start, Flip: false}}
		used[start] = true
		circular := false

		// Walk backward from end 0, prepending.
		frontier := chainEnd{start, 0}
		for {
			other, ok := adj[frontier]
			if !ok {
				break
			}
			if used[other.rearr] {
				circular = circular || other.rearr == start
				break
			}
			flip := other.side == 0
			chain = append([]ChainLink{{RearrIndex: other.rearr, Flip: flip}}, chain...)
			used[other.rearr] = true
			frontier = chainEnd{other.rearr, 1 - other.side}
		}

		// Walk forward from end 1, appending.
		frontier = chainEnd{start, 1}
		for {
			other, ok := adj[frontier]
			if !ok {
				break
			}
			if used[other.rearr] {
				circular = circular || other.rearr == start
				break
			}
			flip := other.side == 1
			chain = append(chain, ChainLink{RearrIndex: other.rearr, Flip: flip})
			used[other.rearr] = true
			frontier = chainEnd{other.rearr, 1 - other.side}
		}

		chains = append(chains, Chain{Links: chain, Circular: circular})
	}
	return chains
}

// orientedSegments returns rearr's segments as they contribute to the
// chain: verbatim when link.Flip is false, or order-reversed with each
// segment's own strand reversed when true.
func orientedSegments(rearr Rearrangement, link ChainLink) []Segment {
	segs := rearr.Segments
	out := make([]Segment, len(segs))
	if !link.Flip {
		copy(out, segs)
		return out
	}
	for i, s := range segs {
		out[len(segs)-1-i] = s.reverse()
	}
	return out
}

// NormalizeOrientation reverses chain (link order and every flip bit)
// when both of its outer endpoints face the reverse strand, so that a
// chain's dominant orientation reads forward wherever possible (spec
// §4.9).
func NormalizeOrientation(chain Chain, rearrs []Rearrangement) Chain {
	if len(chain.Links) == 0 {
		return chain
	}
	first := orientedSegments(rearrs[chain.Links[0].RearrIndex], chain.Links[0])
	last := orientedSegments(rearrs[chain.Links[len(chain.Links)-1].RearrIndex], chain.Links[len(chain.Links)-1])
	if len(first) == 0 || len(last) == 0 {
		return chain
	}
	if first[0].forward() || last[len(last)-1].forward() {
		return chain
	}
	n := len(chain.Links)
	out := Chain{Circular: chain.Circular, Links: make([]ChainLink, n)}
	for i, l := range chain.Links {
		out.Links[n-1-i] = ChainLink{RearrIndex: l.RearrIndex, Flip: !l.Flip}
	}
	return out
}

// DerivedSegments concatenates the oriented segment lists of every link
// in chain, in chain order (spec §4.9), merging across each link
// boundary: the last segment contributed by one link and the first
// segment contributed by the next are collapsed into a single segment
// that keeps only their outer endpoints (the matched endpoint the two
// links were joined at is dropped from both sides). A link that
// contributes no segments is skipped entirely, so its neighbors merge
// directly with each other.
func DerivedSegments(chain Chain, rearrs []Rearrangement) []Segment {
	var out []Segment
	for _, link := range chain.Links {
		segs := orientedSegments(rearrs[link.RearrIndex], link)
		if len(segs) == 0 {
			continue
		}
		if len(out) > 0 {
			last := out[len(out)-1]
			out[len(out)-1] = Segment{Chrom: last.Chrom, Beg: last.Beg, End: segs[0].End}
			segs = segs[1:]
		}
		out = append(out, segs...)
	}
	return out
}
