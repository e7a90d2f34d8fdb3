// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rearrange implements the Rearrangement Classifier (spec §4.3):
// it labels a query's sub-alignments with a rearrangement type, or
// discards the query.
package rearrange

import (
	"sort"

	"github.com/kortschak/clumps/internal/model"
)

// Types is the fixed priority order of the enabled-type set; a query is
// labelled with the first of these that triggers.
const Types = "CSNG"

// Options bundles the classifier's tunable constants (spec §6).
type Options struct {
	Enabled string // subset of Types, in any order
	MinGap  int
	MinRev  int
}

func (o Options) enabled(t byte) bool {
	for i := 0; i < len(o.Enabled); i++ {
		if o.Enabled[i] == t {
			return true
		}
	}
	return false
}

// Orient reorders q.Subs into forward-query-strand order and sorted by
// query position, flipping coordinates of any reverse-query-strand
// sub-alignment onto the forward axis. It must run before Classify and
// before the sub-alignments are used for linking (spec §4.3, §3
// invariant: "sorted by (refName, refBeg) when used by the linker" is a
// separate ordering applied later by the overlap/linking stages; this
// ordering is the classifier's own forward-query view).
func Orient(subs []*model.SubAlignment) []*model.SubAlignment {
	out := make([]*model.SubAlignment, len(subs))
	for i, s := range subs {
		if s.QueryBeg < 0 {
			f := *s
			f.QueryBeg, f.QueryEnd = -s.QueryEnd, -s.QueryBeg
			f.RefBeg, f.RefEnd = -s.RefEnd, -s.RefBeg
			s = &f
		}
		out[i] = s
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AbsQueryBeg() < out[j].AbsQueryBeg()
	})
	return out
}

// Classify labels subs (already Orient-ed) with the first triggering
// rearrangement type from opts.Enabled, in priority order C > S > N > G,
// or 0 if none triggers (spec §4.3).
func Classify(subs []*model.SubAlignment, opts Options) byte {
	for i := 0; i < len(Types); i++ {
		t := Types[i]
		if !opts.enabled(t) {
			continue
		}
		if triggers(t, subs, opts) {
			return t
		}
	}
	return 0
}

func triggers(t byte, subs []*model.SubAlignment, opts Options) bool {
	switch t {
	case 'C':
		return triggersInterChrom(subs)
	case 'S':
		return triggersInterStrand(subs)
	case 'N':
		return triggersNonColinear(subs, opts.MinRev)
	case 'G':
		return triggersBigGap(subs, opts.MinGap)
	}
	return false
}

// triggersInterChrom reports whether any two sub-alignments lie on
// different known chromosomes.
func triggersInterChrom(subs []*model.SubAlignment) bool {
	for i := 0; i < len(subs); i++ {
		for j := i + 1; j < len(subs); j++ {
			a, b := subs[i], subs[j]
			if !model.KnownChromosome(a.RefName) || !model.KnownChromosome(b.RefName) {
				continue
			}
			if model.CanonicalChromosome(a.RefName) != model.CanonicalChromosome(b.RefName) {
				return true
			}
		}
	}
	return false
}

// triggersInterStrand reports whether any two sub-alignments share a
// refName but lie on opposite query strands relative to the reference
// (i.e. opposite RefStrand, since subs are already forward-query-oriented).
func triggersInterStrand(subs []*model.SubAlignment) bool {
	for i := 0; i < len(subs); i++ {
		for j := i + 1; j < len(subs); j++ {
			a, b := subs[i], subs[j]
			if a.RefName != b.RefName {
				continue
			}
			if a.RefStrand() != b.RefStrand() {
				return true
			}
		}
	}
	return false
}

// triggersNonColinear reports whether, for some pair on the same
// (refName, strand), the later-in-query sub-alignment starts at least
// minRev bases before the end of the earlier one in reference.
func triggersNonColinear(subs []*model.SubAlignment, minRev int) bool {
	for i := 0; i < len(subs); i++ {
		for j := i + 1; j < len(subs); j++ {
			a, b := subs[i], subs[j] // a precedes b in query order
			if a.RefName != b.RefName || a.RefStrand() != b.RefStrand() {
				continue
			}
			if model.IsCircular(a.RefName) {
				continue
			}
			laterRefBeg, earlierRefEnd := orderedRefEdge(a, b)
			if laterRefBeg <= earlierRefEnd-minRev {
				return true
			}
		}
	}
	return false
}

// triggersBigGap reports whether any two query-adjacent sub-alignments on
// the same (refName, strand) have a reference gap of at least minGap.
func triggersBigGap(subs []*model.SubAlignment, minGap int) bool {
	for i := 0; i+1 < len(subs); i++ {
		a, b := subs[i], subs[i+1]
		if a.RefName != b.RefName || a.RefStrand() != b.RefStrand() {
			continue
		}
		_, gap := refGap(a, b)
		if gap >= minGap {
			return true
		}
	}
	return false
}

// orderedRefEdge returns b's reference-begin coordinate and a's
// reference-end coordinate, both on the forward reference axis, for the
// pair (a precedes b in query order) on the same strand.
func orderedRefEdge(a, b *model.SubAlignment) (laterRefBeg, earlierRefEnd int) {
	if a.RefStrand() > 0 {
		return b.AbsRefBeg(), a.AbsRefEnd()
	}
	// Reverse reference strand: query-later sub-alignment sits at a
	// smaller reference coordinate.
	return a.AbsRefBeg(), b.AbsRefEnd()
}

// refGap returns the reference gap between query-adjacent sub-alignments
// a (earlier) and b (later) on the same strand: a positive value is a
// forward gap (candidate G-type), negative is an overlap/non-colinear
// jump backward.
func refGap(a, b *model.SubAlignment) (forward bool, gap int) {
	if a.RefStrand() > 0 {
		return true, b.AbsRefBeg() - a.AbsRefEnd()
	}
	return true, a.AbsRefBeg() - b.AbsRefEnd()
}
