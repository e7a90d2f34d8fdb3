// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "testing"

func TestSplitLongSegmentsNoSplit(t *testing.T) {
	segs := []Segment{{Chrom: "chrA", Beg: 0, End: 1000}}
	got := SplitLongSegments("der1", segs, true, 100000)
	if len(got) != 1 || got[0].Name != "der1" || !got[0].Circular {
		t.Fatalf("got %+v, want one unsplit circular part named der1", got)
	}
}

func TestSplitLongSegmentsBreaksLongSegment(t *testing.T) {
	segs := []Segment{
		{Chrom: "chrA", Beg: 0, End: 100},
		{Chrom: "chrA", Beg: 100, End: 300100}, // length 300000 > maxLen 100000
		{Chrom: "chrA", Beg: 300100, End: 300200},
	}
	got := SplitLongSegments("der1", segs, true, 100000)
	if len(got) != 2 {
		t.Fatalf("got %d parts, want 2: %+v", len(got), got)
	}
	if got[0].Name != "der1a" || got[1].Name != "der1b" {
		t.Errorf("got names %q, %q, want der1a, der1b", got[0].Name, got[1].Name)
	}
	if got[0].Circular || got[1].Circular {
		t.Errorf("got %+v, want circularity dropped by the split", got)
	}
	stub := 100000 / 3
	firstPart := got[0].Segments
	if firstPart[len(firstPart)-1] != (Segment{Chrom: "chrA", Beg: 100, End: 100 + stub}) {
		t.Errorf("got head stub %+v", firstPart[len(firstPart)-1])
	}
	secondPart := got[1].Segments
	if secondPart[0] != (Segment{Chrom: "chrA", Beg: 300100 - stub, End: 300100}) {
		t.Errorf("got tail stub %+v", secondPart[0])
	}
	if len(firstPart) != 2 || len(secondPart) != 2 {
		t.Errorf("got %d/%d segments either side of the break, want 2/2", len(firstPart), len(secondPart))
	}
}

func TestSuffixLettersPast25(t *testing.T) {
	if got := suffixLetters(25); got != "z" {
		t.Errorf("got %q, want z", got)
	}
	if got := suffixLetters(26); got != "aa" {
		t.Errorf("got %q, want aa", got)
	}
}
