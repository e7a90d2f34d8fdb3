// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aln

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kortschak/clumps/internal/model"
)

// sLine is one parsed "s" row of a pairwise block:
// s name start alnSize strand seqSize alignment
type sLine struct {
	name     string
	start    int
	alnSize  int
	strand   byte // '+' or '-'
	seqSize  int
	sequence string
}

func parseSLine(fields []string) (sLine, error) {
	if len(fields) < 7 || fields[0] != "s" {
		return sLine{}, fmt.Errorf("malformed s line: %q", strings.Join(fields, " "))
	}
	start, err := strconv.Atoi(fields[2])
	if err != nil {
		return sLine{}, fmt.Errorf("bad start in s line: %v", err)
	}
	alnSize, err := strconv.Atoi(fields[3])
	if err != nil {
		return sLine{}, fmt.Errorf("bad size in s line: %v", err)
	}
	if fields[4] != "+" && fields[4] != "-" {
		return sLine{}, fmt.Errorf("bad strand in s line: %q", fields[4])
	}
	seqSize, err := strconv.Atoi(fields[5])
	if err != nil {
		return sLine{}, fmt.Errorf("bad seqSize in s line: %v", err)
	}
	return sLine{
		name:     fields[1],
		start:    start,
		alnSize:  alnSize,
		strand:   fields[4][0],
		seqSize:  seqSize,
		sequence: fields[6],
	}, nil
}

// signedRange converts an MAF-style (start, alnSize, strand, seqSize) row
// into the signed half-open [beg, end) interval used throughout this
// package (spec §3): strand '-' yields beg < end < 0.
func (s sLine) signedRange() (beg, end int) {
	if s.strand == '+' {
		return s.start, s.start + s.alnSize
	}
	plusEnd := s.seqSize - s.start
	plusBeg := plusEnd - s.alnSize
	return -plusEnd, -plusBeg
}

// pairwiseBlock is a Block for one "a ... / s ... / s ... [/ q|p ...]"
// record.
type pairwiseBlock struct {
	aFields   []string
	ref, qry  sLine
	extra     [][]string // raw q/p line tokens, in input order
	flipped   bool
}

func (b *pairwiseBlock) Flip() model.Block {
	c := *b
	c.flipped = !b.flipped
	return &c
}

func (b *pairwiseBlock) WriteTo(w *strings.Builder) {
	if !b.flipped {
		writeTokens(w, b.aFields)
		writeSLine(w, b.ref)
		writeSLine(w, b.qry)
		for _, e := range b.extra {
			writeTokens(w, e)
		}
		return
	}

	qry := b.qry
	qry.strand = flipStrandByte(qry.strand)
	qry.name = flipName(qry.name)

	writeTokens(w, b.aFields)
	writeSLine(w, b.ref)
	writeSLine(w, qry)
	for _, e := range b.extra {
		writeTokens(w, e)
	}
}

func writeTokens(w *strings.Builder, fields []string) {
	w.WriteString(strings.Join(fields, " "))
	w.WriteByte('\n')
}

func writeSLine(w *strings.Builder, s sLine) {
	fmt.Fprintf(w, "s %s %d %d %c %d %s\n", s.name, s.start, s.alnSize, s.strand, s.seqSize, s.sequence)
}

func flipStrandByte(b byte) byte {
	if b == '+' {
		return '-'
	}
	return '+'
}

// flipName toggles a terminal +/- strand tag, appending a fresh "-" tag
// when the name carries none (spec §3, §4.8).
func flipName(name string) string {
	if n := len(name); n > 0 && (name[n-1] == '+' || name[n-1] == '-') {
		return name[:n-1] + string(flipStrandByte(name[n-1]))
	}
	return name + "-"
}

// mismapOf scans an "a" line's key=value tokens for "mismap=".
func mismapOf(fields []string) float64 {
	for _, f := range fields[1:] {
		if v, ok := strings.CutPrefix(f, "mismap="); ok {
			if p, err := strconv.ParseFloat(v, 64); err == nil {
				return p
			}
		}
	}
	return NoMismap
}

// parsePairwiseBlock consumes one "a" block starting at lines[0] == "a ..."
// and returns the Record plus the number of lines consumed.
func parsePairwiseBlock(lines []string) (Record, int, error) {
	n := 1
	aFields := strings.Fields(lines[0])

	var refFields, qryFields []string
loop:
	for n < len(lines) {
		line := lines[n]
		if strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "s":
			if refFields == nil {
				refFields = fields
			} else if qryFields == nil {
				qryFields = fields
			} else {
				return Record{}, n, fmt.Errorf("pairwise block has more than two s lines")
			}
			n++
		case "q", "p":
			n++
		default:
			break loop // non-matching line terminates the block, do not consume
		}
	}
	if refFields == nil || qryFields == nil {
		return Record{}, n, fmt.Errorf("incomplete pairwise block: %q", lines[0])
	}
	ref, err := parseSLine(refFields)
	if err != nil {
		return Record{}, n, err
	}
	qry, err := parseSLine(qryFields)
	if err != nil {
		return Record{}, n, err
	}

	var extra [][]string
	for i := 1; i < n; i++ {
		f := strings.Fields(lines[i])
		if f[0] == "q" || f[0] == "p" {
			extra = append(extra, f)
		}
	}

	refBeg, refEnd := ref.signedRange()
	qryBeg, qryEnd := qry.signedRange()

	blk := &pairwiseBlock{aFields: aFields, ref: ref, qry: qry, extra: extra}

	return Record{
		Format:    Pairwise,
		QueryName: qry.name,
		QueryLen:  qry.seqSize,
		QueryBeg:  qryBeg,
		QueryEnd:  qryEnd,
		RefName:   ref.name,
		RefBeg:    refBeg,
		RefEnd:    refEnd,
		Mismap:    mismapOf(aFields),
		Gap:       GapData{RefSeq: ref.sequence, QrySeq: qry.sequence},
		Block:     blk,
	}, n, nil
}
