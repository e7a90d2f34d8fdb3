// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oracle implements the Shared-Rearrangement Oracle (spec §4.5):
// given a rearrangement witnessed by query A (a pair of sub-alignments
// Ax, Ay) and a candidate matching pair Bx, By from query B, it decides
// whether B witnesses the same rearrangement, and if so whether B's copy
// runs with the same or opposite query strand as A's.
package oracle

import "github.com/kortschak/clumps/internal/model"

// Options bundles the oracle's tunable constants (spec §6, §9).
type Options struct {
	MaxDiff int
	MinGap  int
	MinRev  int
}

// Result is the oracle's verdict for one (Ax,Ay)×(Bx,By) combination.
type Result struct {
	Matched bool
	// Opposed reports, when Matched, whether B's copy of the
	// rearrangement runs with the opposite query strand to A's.
	Opposed bool
}

// Test decides whether (bx, by) witnesses the same rearrangement as
// (ax, ay), per spec §4.5. ax precedes ay in A's query order and bx
// precedes by in B's; ax must overlap bx and ay must overlap by on the
// reference (the caller, the Overlap Index, guarantees this). bQuery is
// B's full ordered sub-alignment list, used to test query-adjacency for
// the G-type check.
func Test(ax, ay, bx, by *model.SubAlignment, bQuery []*model.SubAlignment, opts Options) Result {
	if !geometricallyConsistent(ax, ay, bx, by, opts.MaxDiff) {
		return Result{}
	}

	opposed := ax.RefStrand() != bx.RefStrand()

	sameRefName := ax.RefName == ay.RefName
	sameStrand := ax.RefStrand() == ay.RefStrand()
	if !sameRefName || !sameStrand {
		// Inter-chromosome or inter-strand: the overlap correspondence
		// already proves A and B witness the same jump.
		return Result{Matched: true, Opposed: opposed}
	}

	gapA := gapBetween(ax, ay)
	gapB := gapBetween(bx, by)
	if gapA < 0 {
		if !nTypeMatch(ax, ay, bx, by, gapA, gapB, opts.MinRev) {
			return Result{}
		}
		return Result{Matched: true, Opposed: opposed}
	}
	if !gTypeMatch(ax, ay, bx, by, bQuery, gapA, gapB, opts.MinGap) {
		return Result{}
	}
	return Result{Matched: true, Opposed: opposed}
}

// geometricallyConsistent implements the alignmentEdges distance check:
// the query-side gap difference between A and B's rearrangements must
// track the reference-side offset between their overlapping edges to
// within maxDiff bases.
func geometricallyConsistent(ax, ay, bx, by *model.SubAlignment, maxDiff int) bool {
	qryDistA := ay.AbsQueryBeg() - ax.AbsQueryEnd()
	qryDistB := by.AbsQueryBeg() - bx.AbsQueryEnd()
	begDiff := facingRefEdge(bx, true) - facingRefEdge(ax, true)
	endDiff := facingRefEdge(by, false) - facingRefEdge(ay, false)
	d := (qryDistB - qryDistA) + begDiff - endDiff
	if d < 0 {
		d = -d
	}
	return d <= maxDiff
}

// nTypeMatch checks the N-type (non-colinear) agreement conditions: B's
// gap must also be a qualifying backward jump, the two gap sizes must be
// within a factor of two of each other, and both cross-gaps (ax↔by,
// bx↔ay) must remain negative.
func nTypeMatch(ax, ay, bx, by *model.SubAlignment, gapA, gapB, minRev int) bool {
	if gapB > -minRev {
		return false
	}
	if !withinFactorOfTwo(gapA, gapB) {
		return false
	}
	if gapBetween(ax, by) >= 0 || gapBetween(bx, ay) >= 0 {
		return false
	}
	return true
}

// gTypeMatch checks the G-type (big gap) agreement conditions: B's gap
// must itself be a qualifying big gap, bx and by must be adjacent in B's
// query order, the two gap sizes must be within a factor of two of each
// other, and both cross-gaps must remain positive.
func gTypeMatch(ax, ay, bx, by *model.SubAlignment, bQuery []*model.SubAlignment, gapA, gapB, minGap int) bool {
	if gapB < minGap {
		return false
	}
	if !adjacentInQuery(bx, by, bQuery) {
		return false
	}
	if !withinFactorOfTwo(gapA, gapB) {
		return false
	}
	if gapBetween(ax, by) <= 0 || gapBetween(bx, ay) <= 0 {
		return false
	}
	return true
}

func withinFactorOfTwo(a, b int) bool {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a == 0 || b == 0 {
		return a == b
	}
	if a < b {
		a, b = b, a
	}
	return a <= 2*b
}

func adjacentInQuery(x, y *model.SubAlignment, query []*model.SubAlignment) bool {
	xi, yi := -1, -1
	for i, s := range query {
		if s == x {
			xi = i
		}
		if s == y {
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		return false
	}
	d := yi - xi
	return d == 1 || d == -1
}

// facingRefEdge returns s's reference coordinate facing its pair partner:
// upstream reports whether s is the query-earlier member of the pair.
func facingRefEdge(s *model.SubAlignment, upstream bool) int {
	fwd := s.RefStrand() > 0
	if fwd == upstream {
		return s.AbsRefEnd()
	}
	return s.AbsRefBeg()
}

// gapBetween returns the signed reference gap between query-adjacent (or
// query-ordered) sub-alignments x (upstream) and y (downstream) on the
// same refName and strand: positive is a forward gap, negative a
// backward (non-colinear) jump.
func gapBetween(x, y *model.SubAlignment) int {
	gap := facingRefEdge(y, false) - facingRefEdge(x, true)
	if x.RefStrand() < 0 {
		return -gap
	}
	return gap
}
