// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overlap implements the Overlap Index (spec §4.4): for each
// reference chromosome it builds an interval tree of sub-alignments and
// reports pairs of sub-alignments, from distinct queries, that overlap on
// the reference.
package overlap

import (
	"github.com/biogo/store/interval"

	"github.com/kortschak/clumps/internal/model"
)

// Pair is one reference-overlapping pair of sub-alignments belonging to
// distinct queries.
type Pair struct {
	A, B *model.SubAlignment
}

// subInterval adapts a *model.SubAlignment to interval.IntInterface so it
// can be inserted into a per-chromosome interval.IntTree.
type subInterval struct {
	id uintptr
	*model.SubAlignment
}

func (s subInterval) ID() uintptr { return s.id }

func (s subInterval) Range() interval.IntRange {
	return interval.IntRange{Start: s.AbsRefBeg(), End: s.AbsRefEnd()}
}

func (s subInterval) Overlap(b interval.IntRange) bool {
	return s.AbsRefEnd() > b.Start && s.AbsRefBeg() < b.End
}

// Index holds one interval tree per reference chromosome, built from a
// flat list of sub-alignments tagged with their owning query.
type Index struct {
	trees map[string]*interval.IntTree
	owner map[*model.SubAlignment]int // sub -> owning query index
}

// Build constructs an Index from subs, where owner[i] is the query index
// owning subs[i] (spec §4.4: the index is built once over every
// rearranged query's sub-alignments, case and control alike).
func Build(subs []*model.SubAlignment, owner []int) *Index {
	idx := &Index{
		trees: make(map[string]*interval.IntTree),
		owner: make(map[*model.SubAlignment]int, len(subs)),
	}
	for i, s := range subs {
		t, ok := idx.trees[s.RefName]
		if !ok {
			t = &interval.IntTree{}
			idx.trees[s.RefName] = t
		}
		t.Insert(subInterval{id: uintptr(i), SubAlignment: s}, true)
		idx.owner[s] = owner[i]
	}
	for _, t := range idx.trees {
		t.AdjustRanges()
	}
	return idx
}

// Overlapping returns every sub-alignment overlapping s on the reference,
// excluding s itself.
func (idx *Index) Overlapping(s *model.SubAlignment) []*model.SubAlignment {
	t, ok := idx.trees[s.RefName]
	if !ok {
		return nil
	}
	hits := t.Get(subInterval{SubAlignment: s})
	out := make([]*model.SubAlignment, 0, len(hits))
	for _, h := range hits {
		o := h.(subInterval).SubAlignment
		if o == s {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Owner returns the index of the query owning s.
func (idx *Index) Owner(s *model.SubAlignment) int { return idx.owner[s] }

// CasePairs returns every overlapping pair of sub-alignments that belong
// to two distinct case queries (spec §4.4's symmetric case-case pass),
// using isCase to distinguish case from control queries and reporting
// each unordered pair once.
func CasePairs(idx *Index, subs []*model.SubAlignment, isCase func(queryIdx int) bool) []Pair {
	var pairs []Pair
	for _, s := range subs {
		oq := idx.Owner(s)
		if !isCase(oq) {
			continue
		}
		for _, o := range idx.Overlapping(s) {
			po := idx.Owner(o)
			if !isCase(po) || po == oq {
				continue
			}
			if !lessSub(s, o) {
				continue // report each unordered pair exactly once
			}
			pairs = append(pairs, Pair{A: s, B: o})
		}
	}
	return pairs
}

// ControlPairs returns every overlapping pair (caseSub, controlSub) where
// caseSub belongs to a case query and controlSub to a control query
// (spec §4.4's asymmetric case-control pass, used by the Control
// Subtractor).
func ControlPairs(idx *Index, subs []*model.SubAlignment, isCase func(queryIdx int) bool) []Pair {
	var pairs []Pair
	for _, s := range subs {
		oq := idx.Owner(s)
		if !isCase(oq) {
			continue
		}
		for _, o := range idx.Overlapping(s) {
			if isCase(idx.Owner(o)) {
				continue
			}
			pairs = append(pairs, Pair{A: s, B: o})
		}
	}
	return pairs
}

// lessSub imposes an arbitrary but stable order on sub-alignments by
// their AlnID, breaking ties on absolute reference begin and then end,
// so CasePairs can deduplicate unordered pairs without a set.
func lessSub(a, b *model.SubAlignment) bool {
	if a.AlnID != b.AlnID {
		return a.AlnID < b.AlnID
	}
	if a.AbsRefBeg() != b.AbsRefBeg() {
		return a.AbsRefBeg() < b.AbsRefBeg()
	}
	return a.AbsRefEnd() < b.AbsRefEnd()
}
