// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "strconv"

// Options bundles the derivation engine's tunable constants (spec §6).
type Options struct {
	All    bool
	Groups map[int]bool // nil means "no filter": every group is kept
	MaxLen int
}

// Result is the full output of one Stage B run, ready for WritePartGroup
// (or WritePartGroupLabeled when len(Matchings) > 1). Matchings has one
// entry per enumerated maximum matching: exactly one, built from the
// greedy pairing, unless Options.All requested every matching.
type Result struct {
	Matchings [][][]DerivedPart
	Ambiguous []string // chromosome names with more than one maximum matching
}

// Run executes the full Derivation Engine pipeline (spec §4.9) over
// rearrs, the rearrangements parsed by Parse: filter by --groups, build
// and match the per-chromosome endpoint graphs, then for every matching
// to report (the single greedy one, or every enumerated maximum matching
// when Options.All is set) walk chains, normalize orientation,
// concatenate derived segments, split overlong segments, and group the
// resulting parts by reference proximity.
func Run(rearrs []Rearrangement, opts Options) Result {
	if opts.Groups != nil {
		filtered := rearrs[:0:0]
		for _, r := range rearrs {
			if opts.Groups[r.GroupID] {
				filtered = append(filtered, r)
			}
		}
		rearrs = filtered
	}

	edges, matches := BuildEdges(rearrs, opts.All)
	var ambiguous []string
	for _, m := range matches {
		if m.Ambiguous {
			ambiguous = append(ambiguous, m.Chrom)
		}
	}

	edgeSets := [][]Edge{edges}
	if opts.All {
		edgeSets = combineMatchings(matches)
	}

	matchings := make([][][]DerivedPart, len(edgeSets))
	for i, es := range edgeSets {
		matchings[i] = derivePartsFromEdges(rearrs, es, opts.MaxLen)
	}

	return Result{
		Matchings: matchings,
		Ambiguous: ambiguous,
	}
}

// derivePartsFromEdges runs the chain-walk-through-grouping half of the
// pipeline for one matching's edge set.
func derivePartsFromEdges(rearrs []Rearrangement, edges []Edge, maxLen int) [][]DerivedPart {
	chains := WalkChains(len(rearrs), edges)

	var parts []DerivedPart
	for i, chain := range chains {
		chain = NormalizeOrientation(chain, rearrs)
		segs := DerivedSegments(chain, rearrs)
		name := derivedName(i + 1)
		parts = append(parts, SplitLongSegments(name, segs, chain.Circular, maxLen)...)
	}
	return GroupParts(parts, maxLen)
}

func derivedName(n int) string {
	return "der" + strconv.Itoa(n)
}
