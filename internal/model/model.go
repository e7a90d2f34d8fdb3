// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the data types shared by every stage of the
// rearrangement clumping pipeline: SubAlignment, Query and Link, as
// described in spec §3.
package model

import "strings"

// SubAlignment is a gap-free fragment of an alignment. Coordinates are
// signed: a negative Beg means the segment lies on the reverse strand of
// that axis, represented as the half-open interval [Beg, End) with
// Beg < End < 0. See spec §3.
type SubAlignment struct {
	QueryNum int // index into the owning corpus's Queries slice; no pipeline stage sets it

	QueryBeg, QueryEnd int
	RefName            string
	RefBeg, RefEnd     int

	AlnID int

	// Neighbors holds the ids of sub-alignments belonging to other
	// queries that overlap this one on the reference, as added by
	// AddNeighbor. No pipeline stage fills or clears it; the overlap
	// index reports overlaps as Pairs instead.
	Neighbors []int
}

// QueryStrand reports the sign of the query-side coordinates: +1 forward,
// -1 reverse.
func (s *SubAlignment) QueryStrand() int {
	if s.QueryBeg < 0 {
		return -1
	}
	return 1
}

// RefStrand reports the sign of the reference-side coordinates.
func (s *SubAlignment) RefStrand() int {
	if s.RefBeg < 0 {
		return -1
	}
	return 1
}

// AbsQueryBeg and AbsQueryEnd give unsigned query coordinates in forward
// query-strand order (Beg < End), regardless of strand.
func (s *SubAlignment) AbsQueryBeg() int { return absMin(s.QueryBeg, s.QueryEnd) }
func (s *SubAlignment) AbsQueryEnd() int { return absMax(s.QueryBeg, s.QueryEnd) }
func (s *SubAlignment) AbsRefBeg() int   { return absMin(s.RefBeg, s.RefEnd) }
func (s *SubAlignment) AbsRefEnd() int   { return absMax(s.RefBeg, s.RefEnd) }

func absMin(a, b int) int {
	if a < 0 {
		a, b = -b, -a
	}
	if a < b {
		return a
	}
	return b
}

func absMax(a, b int) int {
	if a < 0 {
		a, b = -b, -a
	}
	if a > b {
		return a
	}
	return b
}

// AddNeighbor records id as an overlapping sub-alignment from another
// query, unless it is already present.
func (s *SubAlignment) AddNeighbor(id int) {
	for _, n := range s.Neighbors {
		if n == id {
			return
		}
	}
	s.Neighbors = append(s.Neighbors, id)
}

// Block is the verbatim textual representation of one parsed alignment
// record (one pairwise block, one tabular row, or one shrunk row), capable
// of re-emitting itself with an optional strand flip applied.
type Block interface {
	// Flip returns a copy of the block with query strand reversed: the
	// strand letter is toggled and the query name's trailing +/- tag is
	// toggled (or appended if absent).
	Flip() Block
	// WriteTo writes the block's text form, one logical record.
	WriteTo(w *strings.Builder)
}

// Query is one parsed query record: its ordered sub-alignments plus the
// bookkeeping needed to classify, subtract, link and re-emit it.
type Query struct {
	File   int // 1-based input file index; file order is preserved
	Name   string
	Length int

	// Type is the rearrangement type letter ('C', 'S', 'N' or 'G'), or 0
	// if the query has not been classified as rearranged.
	Type byte

	Subs []*SubAlignment

	// Blocks holds the raw alignment blocks backing this query, in input
	// order, for faithful (optionally flipped) re-emission.
	Blocks []Block

	// IsControl marks a query read from a control file.
	IsControl bool
}

// Link records a single witnessed shared rearrangement between two
// queries, identified by their index in a corpus's Queries slice.
type Link struct {
	A, B     int
	Opposed  bool // true when the witnessing pair had opposite query strand
}

// KnownChromosome reports whether name is a "known" chromosome per spec
// §4.3: not prefixed with "chrUn" or "Un".
func KnownChromosome(name string) bool {
	return !strings.HasPrefix(name, "chrUn") && !strings.HasPrefix(name, "Un")
}

// CanonicalChromosome returns the prefix of name before its first
// underscore, the "canonical chromosome" of spec §4.3.
func CanonicalChromosome(name string) string {
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[:i]
	}
	return name
}

// circularChromosomes is the hard-coded list of chromosome names treated
// as topologically circular for non-colinearity tests (spec §4.3, §9).
var circularChromosomes = map[string]bool{
	"chrM": true,
	"M":    true,
}

// IsCircular reports whether name is a known circular chromosome.
func IsCircular(name string) bool {
	return circularChromosomes[name]
}
