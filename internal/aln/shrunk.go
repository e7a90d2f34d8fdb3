// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aln

import (
	"fmt"
	"strconv"
	"strings"
)

// shrunkState carries the per-query decode context a run of shrunk rows
// needs: the previous row's signed begin coordinates, and the reference
// name currently in force (spec §4.1 shrunk row).
type shrunkState struct {
	haveQuery bool
	prevQryBeg int
	prevRefBeg int
	refName    string
}

// parseShrunkHeader recognises the "> name\tlength" line that opens a run of
// shrunk rows for one query. This header is this implementation's answer
// to an open question (spec §4.1 leaves the shrunk format's per-query
// naming mechanism unstated beyond the 4/5 numeric fields); see DESIGN.md.
func parseShrunkHeader(line string) (name string, qlen int, ok bool) {
	if !strings.HasPrefix(line, ">") {
		return "", 0, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) != 2 {
		return "", 0, false
	}
	qlen, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, false
	}
	return fields[0], qlen, true
}

// parseShrunkRow parses one 4- or 5-field delta row and, given the
// decoder state for the enclosing query, returns the resulting Record.
// The fields are qryInc, qrySpan, refIncOrBeg, refLenDiff and an optional
// refName. qryInc is added to the previous row's query begin; on a query's
// first row it is the query begin itself. A 5-field row gives an absolute
// reference begin and a new refName; a 4-field row adds refIncOrBeg to
// the previous row's reference begin and keeps its refName. The reference
// span is qrySpan plus refLenDiff.
func parseShrunkRow(fields []string, queryName string, queryLen int, st *shrunkState) (Record, error) {
	if len(fields) != 4 && len(fields) != 5 {
		return Record{}, fmt.Errorf("shrunk row has %d fields, want 4 or 5: %q", len(fields), strings.Join(fields, " "))
	}
	qryInc, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("bad qryInc: %w", err)
	}
	qrySpan, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("bad qryLen: %w", err)
	}
	refIncOrBeg, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad refIncOrBeg: %w", err)
	}
	refLenDiff, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("bad refLenDiff: %w", err)
	}

	var refName string
	var refBeg int
	if len(fields) == 5 {
		refName = fields[4]
		refBeg = refIncOrBeg
	} else {
		if !st.haveQuery {
			return Record{}, fmt.Errorf("shrunk row omits refName with no preceding row: %q", strings.Join(fields, " "))
		}
		refName = st.refName
		refBeg = st.prevRefBeg + refIncOrBeg
	}

	qryBeg := qryInc
	if st.haveQuery {
		qryBeg = st.prevQryBeg + qryInc
	}
	qryEnd := qryBeg + qrySpan
	refSpan := qrySpan + refLenDiff
	refEnd := refBeg + refSpan

	st.haveQuery = true
	st.prevQryBeg = qryBeg
	st.prevRefBeg = refBeg
	st.refName = refName

	return Record{
		Format:    Shrunk,
		QueryName: queryName,
		QueryLen:  queryLen,
		QueryBeg:  qryBeg,
		QueryEnd:  qryEnd,
		RefName:   refName,
		RefBeg:    refBeg,
		RefEnd:    refEnd,
		Mismap:    NoMismap,
		Gap:       GapData{PreSplit: true},
		Block:     syntheticTabularBlock(queryName, queryLen, refName, qryBeg, qryEnd, refBeg, refEnd),
	}, nil
}

// syntheticTabularBlock builds a tabularBlock directly from already-decoded
// signed coordinates, used to give shrunk-format input a re-emittable
// (and flippable) textual form.
func syntheticTabularBlock(queryName string, queryLen int, refName string, qryBeg, qryEnd, refBeg, refEnd int) *tabularBlock {
	qryStart, qrySize, qryStrand, qrySeqLen := toMAFFields(qryBeg, qryEnd, queryLen)
	refSpan := refEnd - refBeg
	if refSpan < 0 {
		refSpan = -refSpan
	}
	refStart, refSize, refStrand, refSeqLen := toMAFFields(refBeg, refEnd, refSpan)
	fields := []string{
		"0",
		refName, strconv.Itoa(refStart), strconv.Itoa(refSize), refStrand, strconv.Itoa(refSeqLen),
		queryName, strconv.Itoa(qryStart), strconv.Itoa(qrySize), qryStrand, strconv.Itoa(qrySeqLen),
		strconv.Itoa(qrySize),
	}
	return &tabularBlock{fields: fields}
}

// toMAFFields converts a signed [beg, end) interval back to MAF-style
// (start, size, strand, seqLen) fields. seqLen is taken as the interval's
// own span when no better value is known, since the shrunk encoding does
// not separately record total sequence length per reference contig.
func toMAFFields(beg, end, knownLen int) (start, size int, strand string, seqLen int) {
	if beg >= 0 {
		return beg, end - beg, "+", knownLen
	}
	size = end - beg
	seqLen = knownLen
	start = seqLen - (-beg)
	return start, size, "-", seqLen
}
