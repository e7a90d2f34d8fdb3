// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aln

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// RawQuery is the Alignment Reader's uniform per-query output: all the
// Records belonging to one (queryName, queryLen) group, in input order.
type RawQuery struct {
	Group   QueryGroup
	Records []Record
}

// ReadAll parses every alignment in r, dropping any whose mismap
// probability exceeds maxMismap, and groups the survivors by
// (queryName, queryLen) per spec §4.1.
func ReadAll(r io.Reader, maxMismap float64) ([]RawQuery, error) {
	lines, err := splitLines(r)
	if err != nil {
		return nil, err
	}

	order := make([]QueryGroup, 0)
	groups := make(map[QueryGroup]*RawQuery)
	var shrunkSt shrunkState
	var shrunkName string
	var shrunkLen int
	haveShrunkHeader := false

	add := func(rec Record) {
		g := QueryGroup{Name: rec.QueryName, Len: rec.QueryLen}
		rq, ok := groups[g]
		if !ok {
			rq = &RawQuery{Group: g}
			groups[g] = rq
			order = append(order, g)
		}
		rq.Records = append(rq.Records, rec)
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			haveShrunkHeader = false
			shrunkSt = shrunkState{}
			i++
		case strings.HasPrefix(trimmed, "#"):
			i++
		case strings.HasPrefix(trimmed, "a"):
			rec, n, err := parsePairwiseBlock(lines[i:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if !(rec.HasMismap() && rec.Mismap > maxMismap) {
				add(rec)
			}
			i += n
		case strings.HasPrefix(trimmed, ">"):
			name, qlen, ok := parseShrunkHeader(trimmed)
			if !ok {
				return nil, fmt.Errorf("line %d: malformed shrunk header: %q", i+1, line)
			}
			shrunkName, shrunkLen = name, qlen
			shrunkSt = shrunkState{}
			haveShrunkHeader = true
			i++
		case startsWithDigit(trimmed):
			fields := strings.Fields(trimmed)
			switch {
			case len(fields) >= minTabularFields:
				rec, err := parseTabularLine(trimmed)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", i+1, err)
				}
				if !(rec.HasMismap() && rec.Mismap > maxMismap) {
					add(rec)
				}
			case len(fields) == 4 || len(fields) == 5:
				if !haveShrunkHeader {
					return nil, fmt.Errorf("line %d: shrunk row before header: %q", i+1, line)
				}
				rec, err := parseShrunkRow(fields, shrunkName, shrunkLen, &shrunkSt)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", i+1, err)
				}
				add(rec)
			default:
				return nil, fmt.Errorf("line %d: unrecognised alignment line: %q", i+1, line)
			}
			i++
		default:
			haveShrunkHeader = false
			shrunkSt = shrunkState{}
			i++
		}
	}

	out := make([]RawQuery, len(order))
	for idx, g := range order {
		out[idx] = *groups[g]
	}
	return out, nil
}

func startsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return unicode.IsDigit(r)
}

func splitLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
