// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// groupHeaderPattern recognises a clump header line emitted by
// summary.Header.String: "# groupK-size" or "# mergeID_ID_…".
var groupHeaderPattern = regexp.MustCompile(`^#\s*(?:group(\d+)-\d+|merged?((?:\d+_)*\d+))\s*$`)

// rangePattern recognises one "chrom:beg<end" / "chrom:beg>end" token
// from a query's summary line (spec §6's range text format).
var rangePattern = regexp.MustCompile(`^([^:\s]+):(\d+)([<>])(\d+)$`)

// Parse reads Stage A's summary output (spec §4.8) and returns the
// rearrangements named in its summary paragraphs, in the order their
// names appear. Alignment body text (the "# PART name" sections and the
// raw alignment lines following them) is skipped entirely; only the
// wrapped "name range range…" paragraphs are scanned.
func Parse(r io.Reader) ([]Rearrangement, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var out []Rearrangement
	group := 0
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if !strings.HasPrefix(line, "#") {
			continue // alignment body text
		}
		if strings.HasPrefix(line, "# PART") {
			continue
		}
		if m := groupHeaderPattern.FindStringSubmatch(line); m != nil {
			group = headerGroupID(m)
			continue
		}
		words := strings.Fields(strings.TrimPrefix(line, "#"))
		for _, w := range words {
			seg, ok, err := parseRangeToken(w)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			if !ok {
				out = append(out, Rearrangement{Name: w, GroupID: group})
				continue
			}
			if len(out) == 0 {
				return nil, fmt.Errorf("line %d: range %q before any rearrangement name", lineNum, w)
			}
			last := &out[len(out)-1]
			last.Segments = append(last.Segments, seg)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// headerGroupID extracts the group number carried by a clump header: the
// groupK number directly, or the first id of a merge list.
func headerGroupID(m []string) int {
	if m[1] != "" {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	ids := strings.Split(m[2], "_")
	n, _ := strconv.Atoi(ids[0])
	return n
}

// parseRangeToken parses one "chrom:beg<end" / "chrom:beg>end" word into
// a Segment; ok is false (with a nil error) when w does not look like a
// range token at all, so the caller can treat it as a rearrangement name.
func parseRangeToken(w string) (Segment, bool, error) {
	m := rangePattern.FindStringSubmatch(w)
	if m == nil {
		return Segment{}, false, nil
	}
	beg, err := strconv.Atoi(m[2])
	if err != nil {
		return Segment{}, false, fmt.Errorf("malformed range begin in %q", w)
	}
	end, err := strconv.Atoi(m[4])
	if err != nil {
		return Segment{}, false, fmt.Errorf("malformed range end in %q", w)
	}
	if beg == end {
		return Segment{}, false, fmt.Errorf("zero-length segment in %q", w)
	}
	return Segment{Chrom: m[1], Beg: beg, End: end}, true, nil
}
