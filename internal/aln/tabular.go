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

const minTabularFields = 12

// tabularBlock is a Block for one tabular-format row:
//
//	score name1 start1 size1 strand1 seqLen1 name2 start2 size2 strand2 seqLen2 blocks [key=value...]
type tabularBlock struct {
	fields  []string
	flipped bool
}

func (b *tabularBlock) Flip() model.Block {
	c := *b
	c.fields = append([]string(nil), b.fields...)
	c.flipped = !b.flipped
	return &c
}

func (b *tabularBlock) WriteTo(w *strings.Builder) {
	fields := b.fields
	if b.flipped {
		fields = append([]string(nil), b.fields...)
		fields[6] = flipName(fields[6])
		fields[9] = string(flipStrandByte(fields[9][0]))
	}
	w.WriteString(strings.Join(fields, "\t"))
	w.WriteByte('\n')
}

// parseGapString parses a tabular "blocks" gap descriptor, spec §4.1:
// N[,N[:M]]*, alternating ungapped block lengths and ref:qry gap sizes.
func parseGapString(s string) (blocks []int, gaps []GapElem, err error) {
	toks := strings.Split(s, ",")
	for i, t := range toks {
		if i%2 == 0 {
			n, err := strconv.Atoi(t)
			if err != nil {
				return nil, nil, fmt.Errorf("bad block length %q: %w", t, err)
			}
			blocks = append(blocks, n)
			continue
		}
		if r, q, ok := strings.Cut(t, ":"); ok {
			ref, err := strconv.Atoi(r)
			if err != nil {
				return nil, nil, fmt.Errorf("bad gap ref size %q: %w", t, err)
			}
			qry, err := strconv.Atoi(q)
			if err != nil {
				return nil, nil, fmt.Errorf("bad gap qry size %q: %w", t, err)
			}
			gaps = append(gaps, GapElem{Ref: ref, Qry: qry})
		} else {
			ref, err := strconv.Atoi(t)
			if err != nil {
				return nil, nil, fmt.Errorf("bad gap size %q: %w", t, err)
			}
			gaps = append(gaps, GapElem{Ref: ref, Qry: 0})
		}
	}
	return blocks, gaps, nil
}

func parseTabularLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < minTabularFields {
		return Record{}, fmt.Errorf("tabular row has %d fields, want at least %d: %q", len(fields), minTabularFields, line)
	}

	refName := fields[1]
	refStart, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad ref start: %w", err)
	}
	refSize, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("bad ref size: %w", err)
	}
	refStrand := fields[4]
	refSeqLen, err := strconv.Atoi(fields[5])
	if err != nil {
		return Record{}, fmt.Errorf("bad ref seq length: %w", err)
	}

	qryName := fields[6]
	qryStart, err := strconv.Atoi(fields[7])
	if err != nil {
		return Record{}, fmt.Errorf("bad query start: %w", err)
	}
	qrySize, err := strconv.Atoi(fields[8])
	if err != nil {
		return Record{}, fmt.Errorf("bad query size: %w", err)
	}
	qryStrand := fields[9]
	qrySeqLen, err := strconv.Atoi(fields[10])
	if err != nil {
		return Record{}, fmt.Errorf("bad query seq length: %w", err)
	}

	blocks, gaps, err := parseGapString(fields[11])
	if err != nil {
		return Record{}, err
	}

	refBeg, refEnd := signedRangeOf(refStart, refSize, refStrand, refSeqLen)
	qryBeg, qryEnd := signedRangeOf(qryStart, qrySize, qryStrand, qrySeqLen)

	return Record{
		Format:    Tabular,
		QueryName: qryName,
		QueryLen:  qrySeqLen,
		QueryBeg:  qryBeg,
		QueryEnd:  qryEnd,
		RefName:   refName,
		RefBeg:    refBeg,
		RefEnd:    refEnd,
		Mismap:    mismapOf(fields),
		Gap:       GapData{Blocks: blocks, Gaps: gaps},
		Block:     &tabularBlock{fields: fields},
	}, nil
}

func signedRangeOf(start, size int, strand string, seqLen int) (beg, end int) {
	if strand == "+" {
		return start, start + size
	}
	plusEnd := seqLen - start
	plusBeg := plusEnd - size
	return -plusEnd, -plusBeg
}
