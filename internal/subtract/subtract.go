// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subtract implements the Control Subtractor and Coverage Filter
// (spec §4.6): it discards case queries whose rearrangement is also seen
// in a control, then iteratively drops queries whose remaining junctions
// lack enough independent support.
package subtract

import (
	"github.com/kortschak/clumps/internal/model"
	"github.com/kortschak/clumps/internal/oracle"
	"github.com/kortschak/clumps/internal/overlap"
)

// Options bundles the subtractor's tunable constants (spec §6).
type Options struct {
	Oracle  oracle.Options
	Filter  bool // restrict control-subtraction search to the case's own type letter
	MinCov  int
	MinSeqs int
}

// Corpus is the minimal view of the query set the subtractor needs: every
// query (case and control, in file order) plus an index into its
// sub-alignments, grouped by query, in Orient-ed query order.
type Corpus struct {
	Queries []*model.Query
	Subs    [][]*model.SubAlignment // Subs[i] is Queries[i]'s oriented sub-alignments
}

func (c *Corpus) isCase(i int) bool { return !c.Queries[i].IsControl }

// SubtractControls discards every case query for which some control
// query witnesses the same rearrangement (spec §4.5 invocation 1),
// returning the indices of the surviving queries in their original
// order. Control queries are always retained in the returned set so
// later stages can still reference their alignments if needed; callers
// that only care about cases should filter IsControl themselves.
func SubtractControls(c *Corpus, opts Options) []int {
	flat, owner := flatten(c)
	idx := overlap.Build(flat, owner)

	discarded := make(map[int]bool)
	for qi, q := range c.Queries {
		if q.IsControl || discarded[qi] {
			continue
		}
		pairs := overlap.ControlPairs(idx, c.Subs[qi], c.isCase)
		if witnessedByControl(c, qi, pairs, idx, opts) {
			discarded[qi] = true
		}
	}

	var kept []int
	for i := range c.Queries {
		if !discarded[i] {
			kept = append(kept, i)
		}
	}
	return kept
}

// witnessedByControl searches every (Ax,Ay) pair within the case query
// qi against every (Bx,By) pair in each overlapping control query, per
// spec §4.5 invocation 1.
func witnessedByControl(c *Corpus, qi int, pairs []overlap.Pair, idx *overlap.Index, opts Options) bool {
	controlQueries := controlOwners(idx, pairs)
	for _, ctrlQ := range controlQueries {
		if searchSharedRearrangement(c.Subs[qi], c.Subs[ctrlQ], typeFilter(c.Queries[qi], opts), opts.Oracle) {
			return true
		}
	}
	return false
}

func controlOwners(idx *overlap.Index, pairs []overlap.Pair) []int {
	seen := make(map[int]bool)
	var out []int
	for _, p := range pairs {
		o := idx.Owner(p.B)
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// typeFilter returns the rearrangement type letter the (Ax,Ay) search
// must be restricted to, or 0 for no restriction: q's own type when
// opts.Filter is set, unrestricted otherwise (spec §4.5 invocation 1).
func typeFilter(q *model.Query, opts Options) byte {
	if opts.Filter {
		return q.Type
	}
	return 0
}

// searchSharedRearrangement tries every (Ax,Ay) pair from aSubs that
// matches restrictTo (or every pair, if restrictTo is 0) against every
// (Bx,By) pair from bSubs and reports whether any combination is
// confirmed by the oracle. Like the Rearrangement Classifier (spec §4.3),
// it searches all valid sub-alignment pairs and restricts to query-adjacent
// pairs only for the G type, whose "big gap" trigger is defined on
// neighbouring sub-alignments alone.
func searchSharedRearrangement(aSubs, bSubs []*model.SubAlignment, restrictTo byte, oopts oracle.Options) bool {
	_, ok := firstSharedRearrangement(aSubs, bSubs, restrictTo, oopts)
	return ok
}

// firstSharedRearrangement is searchSharedRearrangement's full-result form:
// it returns the oracle's verdict for the first confirmed combination,
// which carries the Opposed strand relationship cross-case linking needs.
func firstSharedRearrangement(aSubs, bSubs []*model.SubAlignment, restrictTo byte, oopts oracle.Options) (oracle.Result, bool) {
	for i := 0; i < len(aSubs); i++ {
		for j := i + 1; j < len(aSubs); j++ {
			if restrictTo == 'G' && j != i+1 {
				continue
			}
			ax, ay := aSubs[i], aSubs[j]
			if restrictTo != 0 && !pairMatchesType(ax, ay, restrictTo, oopts.MinGap, oopts.MinRev) {
				continue
			}
			for k := 0; k < len(bSubs); k++ {
				for l := k + 1; l < len(bSubs); l++ {
					if restrictTo == 'G' && l != k+1 {
						continue
					}
					bx, by := bSubs[k], bSubs[l]
					if !overlaps(ax, bx) || !overlaps(ay, by) {
						continue
					}
					if res := oracle.Test(ax, ay, bx, by, bSubs, oopts); res.Matched {
						return res, true
					}
				}
			}
		}
	}
	return oracle.Result{}, false
}

// CrossCaseLinks searches every overlapping pair of kept case queries for a
// shared rearrangement (spec §4.5 invocation 2, unrestricted by type letter)
// and returns one model.Link per witnessing pair, for the Clumper to build
// its link graph from.
func CrossCaseLinks(c *Corpus, kept []int, oopts oracle.Options) []model.Link {
	var flat []*model.SubAlignment
	var owner []int
	for _, qi := range kept {
		if c.Queries[qi].IsControl {
			continue
		}
		for _, s := range c.Subs[qi] {
			flat = append(flat, s)
			owner = append(owner, qi)
		}
	}
	idx := overlap.Build(flat, owner)
	pairs := overlap.CasePairs(idx, flat, func(int) bool { return true })

	seen := make(map[[2]int]bool)
	var links []model.Link
	for _, p := range pairs {
		qa, qb := idx.Owner(p.A), idx.Owner(p.B)
		if qa == qb {
			continue
		}
		key := [2]int{qa, qb}
		if qa > qb {
			key = [2]int{qb, qa}
		}
		if seen[key] {
			continue
		}
		if res, ok := firstSharedRearrangement(c.Subs[qa], c.Subs[qb], 0, oopts); ok {
			seen[key] = true
			links = append(links, model.Link{A: qa, B: qb, Opposed: res.Opposed})
		}
	}
	return links
}

// pairMatchesType reports whether the pair (ax, ay) itself exhibits
// rearrangement type t, mirroring the single-pair triggers of the
// Rearrangement Classifier (spec §4.3).
func pairMatchesType(ax, ay *model.SubAlignment, t byte, minGap, minRev int) bool {
	switch t {
	case 'C':
		return model.KnownChromosome(ax.RefName) && model.KnownChromosome(ay.RefName) &&
			model.CanonicalChromosome(ax.RefName) != model.CanonicalChromosome(ay.RefName)
	case 'S':
		return ax.RefName == ay.RefName && ax.RefStrand() != ay.RefStrand()
	case 'N':
		if ax.RefName != ay.RefName || ax.RefStrand() != ay.RefStrand() || model.IsCircular(ax.RefName) {
			return false
		}
		return gapBetween(ax, ay) <= -minRev
	case 'G':
		if ax.RefName != ay.RefName || ax.RefStrand() != ay.RefStrand() {
			return false
		}
		return gapBetween(ax, ay) >= minGap
	}
	return false
}

func overlaps(a, b *model.SubAlignment) bool {
	return a.RefName == b.RefName && a.AbsRefEnd() > b.AbsRefBeg() && a.AbsRefBeg() < b.AbsRefEnd()
}

// Junction identifies one query-adjacent pair of sub-alignments within a
// single query, the unit the coverage filter accumulates support for.
type Junction struct {
	Query int
	Index int // index of the upstream sub-alignment within the query's oriented list
}

// FilterByCoverage iteratively drops queries whose junctions lack
// independent support from other queries (spec §4.6), repeating until no
// further query is removed. kept is the indices (into c.Queries) to
// consider; the surviving indices are returned in a new slice and kept
// itself is not modified.
func FilterByCoverage(c *Corpus, kept []int, opts Options) []int {
	for {
		support := junctionSupport(c, kept, opts.Oracle)
		var next []int
		removedAny := false
		for _, qi := range kept {
			if queryHasEnoughCoverage(c, qi, support, opts) {
				next = append(next, qi)
			} else {
				removedAny = true
			}
		}
		kept = next
		if !removedAny {
			return kept
		}
	}
}

// junctionSupport computes, for every junction (query-adjacent
// sub-alignment pair) among the kept queries, the set of distinct peer
// queries that support it via the restricted "previous-in-query
// neighbor" oracle variant (spec §4.6).
func junctionSupport(c *Corpus, kept []int, oopts oracle.Options) map[Junction]map[int]bool {
	var flat []*model.SubAlignment
	var owner []int
	for _, qi := range kept {
		for _, s := range c.Subs[qi] {
			flat = append(flat, s)
			owner = append(owner, qi)
		}
	}
	idx := overlap.Build(flat, owner)

	support := make(map[Junction]map[int]bool)
	record := func(j Junction, peer int) {
		m, ok := support[j]
		if !ok {
			m = make(map[int]bool)
			support[j] = m
		}
		m[peer] = true
	}

	for _, qi := range kept {
		subs := c.Subs[qi]
		for i := 0; i+1 < len(subs); i++ {
			ay := subs[i+1]
			for _, ov := range idx.Overlapping(ay) {
				pj := idx.Owner(ov)
				if pj == qi {
					continue
				}
				addJumpIfShared(c, qi, i, pj, ov, oopts, record)
			}
		}
	}
	return support
}

// addJumpIfShared implements the coverage filter's lightweight oracle
// variant (spec §4.6). b is a peer sub-alignment overlapping ay, the
// downstream member of query qi's junction i (ax -> ay); it considers
// only b's previous-in-query neighbor (same-strand case) or next
// neighbor (opposite-strand case) as the peer's matching upstream member,
// and records the peer query on the junction if that restricted pair is
// confirmed by the oracle.
func addJumpIfShared(c *Corpus, qi, i int, pj int, b *model.SubAlignment, oopts oracle.Options, record func(Junction, int)) {
	subs := c.Subs[qi]
	ax, ay := subs[i], subs[i+1]

	bSubs := c.Subs[pj]
	bi := indexOf(bSubs, b)
	if bi < 0 {
		return
	}

	if ax.RefStrand() == b.RefStrand() {
		if bi == 0 {
			return
		}
		bPrev := bSubs[bi-1]
		if oracle.Test(ax, ay, bPrev, b, bSubs, oopts).Matched {
			record(Junction{Query: qi, Index: i}, pj)
		}
		return
	}
	if bi+1 >= len(bSubs) {
		return
	}
	bNext := bSubs[bi+1]
	if oracle.Test(ax, ay, b, bNext, bSubs, oopts).Matched {
		record(Junction{Query: qi, Index: i}, pj)
	}
}

func indexOf(subs []*model.SubAlignment, s *model.SubAlignment) int {
	for i, c := range subs {
		if c == s {
			return i
		}
	}
	return -1
}

func queryHasEnoughCoverage(c *Corpus, qi int, support map[Junction]map[int]bool, opts Options) bool {
	subs := c.Subs[qi]
	if len(subs) < 2 {
		return true
	}
	for i := 0; i+1 < len(subs); i++ {
		j := Junction{Query: qi, Index: i}
		if !isNonLinear(subs[i], subs[i+1], opts.Oracle.MinGap, opts.Oracle.MinRev) {
			continue
		}
		if len(support[j]) < opts.MinCov {
			return false
		}
	}
	return true
}

// isNonLinear reports whether the junction between query-adjacent
// sub-alignments a and b is non-colinear: a different chromosome, a
// different strand, or a reference gap too large or too negative to be a
// simple small indel.
func isNonLinear(a, b *model.SubAlignment, minGap, minRev int) bool {
	if a.RefName != b.RefName || a.RefStrand() != b.RefStrand() {
		return true
	}
	gap := gapBetween(a, b)
	return gap >= minGap || gap <= -minRev
}

// gapBetween mirrors oracle's signed reference-gap convention for
// query-adjacent sub-alignments a (upstream) and b (downstream) on the
// same refName and strand.
func gapBetween(a, b *model.SubAlignment) int {
	if a.RefStrand() > 0 {
		return b.AbsRefBeg() - a.AbsRefEnd()
	}
	return a.AbsRefBeg() - b.AbsRefEnd()
}

func flatten(c *Corpus) (flat []*model.SubAlignment, owner []int) {
	for qi, subs := range c.Subs {
		for _, s := range subs {
			flat = append(flat, s)
			owner = append(owner, qi)
		}
	}
	return flat, owner
}

// DefaultMinCov returns the default minCov (spec §6): 1 when minSeqs > 1,
// else 0.
func DefaultMinCov(minSeqs int) int {
	if minSeqs > 1 {
		return 1
	}
	return 0
}
