// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gapsplit implements the Gap Splitter (spec §4.2): it cuts one
// alignment at every internal indel of at least minGap reference bases,
// yielding gap-free sub-alignment spans.
package gapsplit

import (
	"github.com/kortschak/clumps/internal/aln"
)

// Span is one gap-free fragment of an alignment's extent, in the same
// signed-coordinate convention as the Record it was cut from.
type Span struct {
	QueryBeg, QueryEnd int
	RefBeg, RefEnd     int
}

// Split cuts rec at every internal indel of at least minGap reference
// bases (spec §4.2) and returns the resulting gap-free spans in query
// order.
func Split(rec aln.Record, minGap int) []Span {
	switch rec.Format {
	case aln.Pairwise:
		return splitPairwise(rec, minGap)
	case aln.Tabular:
		return splitTabular(rec, minGap)
	default:
		// Shrunk records are already gap-free: they were produced by a
		// prior run of the splitter (spec §4.1).
		return []Span{{
			QueryBeg: rec.QueryBeg, QueryEnd: rec.QueryEnd,
			RefBeg: rec.RefBeg, RefEnd: rec.RefEnd,
		}}
	}
}

// splitPairwise finds runs of '-' in the query row of length >= minGap,
// extends each run through any adjacent gap columns in either row, and
// cuts the alignment at the extended boundaries (spec §4.2).
func splitPairwise(rec aln.Record, minGap int) []Span {
	ref, qry := rec.Gap.RefSeq, rec.Gap.QrySeq
	n := len(qry)

	// refAt[c], qryAt[c] are the coordinates just before column c is
	// consumed; refAt[n], qryAt[n] are the coordinates after the last
	// column.
	refAt := make([]int, n+1)
	qryAt := make([]int, n+1)
	refAt[0], qryAt[0] = rec.RefBeg, rec.QueryBeg
	for c := 0; c < n; c++ {
		refAt[c+1] = refAt[c]
		qryAt[c+1] = qryAt[c]
		if ref[c] != '-' {
			refAt[c+1]++
		}
		if qry[c] != '-' {
			qryAt[c+1]++
		}
	}

	var zones [][2]int // half-open column ranges to excise
	c := 0
	for c < n {
		if qry[c] != '-' {
			c++
			continue
		}
		start := c
		for c < n && qry[c] == '-' {
			c++
		}
		end := c
		if end-start < minGap {
			continue
		}
		for start > 0 && (ref[start-1] == '-' || qry[start-1] == '-') {
			start--
		}
		for end < n && (ref[end] == '-' || qry[end] == '-') {
			end++
		}
		if len(zones) > 0 && start < zones[len(zones)-1][1] {
			zones[len(zones)-1][1] = end
			continue
		}
		zones = append(zones, [2]int{start, end})
	}

	var spans []Span
	pos := 0
	for _, z := range zones {
		spans = append(spans, Span{
			QueryBeg: qryAt[pos], QueryEnd: qryAt[z[0]],
			RefBeg: refAt[pos], RefEnd: refAt[z[0]],
		})
		pos = z[1]
	}
	spans = append(spans, Span{
		QueryBeg: qryAt[pos], QueryEnd: qryAt[n],
		RefBeg: refAt[pos], RefEnd: refAt[n],
	})
	return nonEmpty(spans)
}

// splitTabular cuts at every ref:qry gap element whose reference size is
// at least minGap (spec §4.2).
func splitTabular(rec aln.Record, minGap int) []Span {
	refPos, qryPos := rec.RefBeg, rec.QueryBeg

	var spans []Span
	segRefBeg, segQryBeg := refPos, qryPos
	for i, blockLen := range rec.Gap.Blocks {
		refPos += blockLen
		qryPos += blockLen
		if i == len(rec.Gap.Gaps) {
			break
		}
		g := rec.Gap.Gaps[i]
		split := g.Ref >= minGap
		if split {
			spans = append(spans, Span{
				QueryBeg: segQryBeg, QueryEnd: qryPos,
				RefBeg: segRefBeg, RefEnd: refPos,
			})
		}
		refPos += g.Ref
		qryPos += g.Qry
		if split {
			segRefBeg, segQryBeg = refPos, qryPos
		}
	}
	spans = append(spans, Span{
		QueryBeg: segQryBeg, QueryEnd: qryPos,
		RefBeg: segRefBeg, RefEnd: refPos,
	})
	return nonEmpty(spans)
}

func nonEmpty(spans []Span) []Span {
	out := spans[:0]
	for _, s := range spans {
		if s.QueryEnd != s.QueryBeg && s.RefEnd != s.RefBeg {
			out = append(out, s)
		}
	}
	return out
}
