// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summary implements the Writer (spec §4.8): it renders a
// retained clump as a 79-column-wrapped summary paragraph followed by
// per-query alignment bodies, in either the original format (with
// strand flips applied) or the compact shrunk format.
package summary

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kortschak/clumps/internal/aln"
	"github.com/kortschak/clumps/internal/model"
)

const wrapColumn = 79

// RefRange is one fused reference interval reported in a query's summary
// line (spec §4.8).
type RefRange struct {
	RefName string
	Beg, End int // signed: Beg<End<0 on the reverse reference strand
}

// String renders r as "chrom:absBeg<absEnd" (reverse) or
// "chrom:absBeg>absEnd" (forward), the range text format of spec §6.
func (r RefRange) String() string {
	if r.Beg < 0 {
		return fmt.Sprintf("%s:%d<%d", r.RefName, -r.Beg, -r.End)
	}
	return fmt.Sprintf("%s:%d>%d", r.RefName, r.Beg, r.End)
}

// FuseRanges groups subs (a query's oriented, flip-applied
// sub-alignments, in query order) into RefRanges via
// refRangesFromFlippedAlns (spec §4.8): a sub-alignment fuses onto the
// range accumulated so far when it shares the previous contributor's
// (refName, strand), both its reference and query gaps from that
// contributor are below minGap, any backward jump is smaller than
// minRev, and it still makes forward progress in reference.
func FuseRanges(subs []*model.SubAlignment, minGap, minRev int) []RefRange {
	var ranges []RefRange
	var prev *model.SubAlignment
	for _, s := range subs {
		if prev != nil && fuses(prev, s, minGap, minRev) {
			last := &ranges[len(ranges)-1]
			last.End = s.RefEnd
			prev = s
			continue
		}
		ranges = append(ranges, RefRange{RefName: s.RefName, Beg: s.RefBeg, End: s.RefEnd})
		prev = s
	}
	return ranges
}

// fuses reports whether s should be fused onto the range x is the most
// recent contributor to.
func fuses(x, s *model.SubAlignment, minGap, minRev int) bool {
	if s.RefName != x.RefName || s.RefStrand() != x.RefStrand() {
		return false
	}
	refGap := s.RefBeg - x.RefEnd
	qryGap := s.QueryBeg - x.QueryEnd
	if absInt(refGap) >= minGap || absInt(qryGap) >= minGap {
		return false
	}
	if refGap < 0 && -refGap >= minRev {
		return false
	}
	return s.RefEnd > x.RefEnd
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Header identifies a retained clump's emitted header line (spec §4.7,
// §4.8): either "# groupK-size" for an unmerged clump, or
// "# mergeID_ID_…" when two or more original clumps were merged.
type Header struct {
	Group    int // > 0 selects the "groupK-size" form
	MergeIDs []int
	Size     int
}

func (h Header) String() string {
	if len(h.MergeIDs) > 0 {
		parts := make([]string, len(h.MergeIDs))
		for i, id := range h.MergeIDs {
			parts[i] = strconv.Itoa(id)
		}
		return "# merge" + strings.Join(parts, "_")
	}
	return fmt.Sprintf("# group%d-%d", h.Group, h.Size)
}

// QuerySummary is one query's contribution to a clump's summary
// paragraph.
type QuerySummary struct {
	Name   string
	Ranges []RefRange
}

func (q QuerySummary) text() string {
	parts := make([]string, len(q.Ranges)+1)
	parts[0] = q.Name
	for i, r := range q.Ranges {
		parts[i+1] = r.String()
	}
	return strings.Join(parts, " ")
}

// WriteParagraph writes header, then each query's "name range…" text
// word-wrapped at 79 columns with "#  " continuation lines (spec §4.8).
func WriteParagraph(w io.Writer, header Header, queries []QuerySummary) {
	fmt.Fprintln(w, header.String())
	var words []string
	for _, q := range queries {
		words = append(words, strings.Fields(q.text())...)
	}
	wrap(w, words)
}

func wrap(w io.Writer, words []string) {
	const prefix = "#  "
	line := "#"
	for _, word := range words {
		candidate := line + " " + word
		if len(candidate) > wrapColumn && line != "#" && line != prefix {
			fmt.Fprintln(w, line)
			line = prefix + word
			continue
		}
		if line == "#" {
			line = "# " + word
		} else {
			line = candidate
		}
	}
	if line != "#" {
		fmt.Fprintln(w, line)
	}
}

// PartBody holds one query's "# PART name" body section.
type PartBody struct {
	Name    string
	Blocks  []model.Block
	Flipped bool

	// Shrunk, when non-nil, provides the data needed to emit the body in
	// the compact shrunk row format instead of the verbatim input
	// format.
	Shrunk *ShrunkBody
}

// ShrunkBody carries the data WritePart needs to emit a query's body in
// shrunk format (spec §4.8's shrink=true mode).
type ShrunkBody struct {
	QueryLen int
	Subs     []*model.SubAlignment
}

// WritePart writes one "# PART name" section followed by the query's
// alignment text, strand-flipped if requested, or in shrunk format if
// p.Shrunk is set (spec §4.8).
func WritePart(w io.Writer, p PartBody) {
	fmt.Fprintf(w, "# PART %s\n", p.Name)
	if p.Shrunk != nil {
		var b strings.Builder
		aln.WriteShrunkQuery(&b, p.Name, p.Shrunk.QueryLen, p.Shrunk.Subs)
		io.WriteString(w, b.String())
		return
	}
	for _, block := range p.Blocks {
		b := block
		if p.Flipped {
			b = block.Flip()
		}
		var sb strings.Builder
		b.WriteTo(&sb)
		io.WriteString(w, sb.String())
	}
}
