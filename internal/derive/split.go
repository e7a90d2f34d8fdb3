// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive


// DerivedPart is one named, possibly-split fragment of a derived
// chromosome chain, ready for proximity grouping and emission.
type DerivedPart struct {
	Name     string
	Segments []Segment
	Circular bool
}

// SplitLongSegments names and, where necessary, breaks a chain's derived
// segment list into output parts (spec §4.9): any segment longer than
// maxLen is cut into two maxLen/3 stub fragments anchored at its own two
// original endpoints, opening a break in the derived sequence where an
// adjacency edge used to sit. name is used verbatim ("derN") when no
// split occurs; otherwise each resulting fragment gets an alphabetic
// suffix ("derNa", "derNb", …) and the chain's circularity, which the
// break necessarily opens, is dropped.
func SplitLongSegments(name string, segs []Segment, circular bool, maxLen int) []DerivedPart {
	stub := maxLen / 3

	var pieces [][]Segment
	var cur []Segment
	for _, s := range segs {
		if s.length() > maxLen {
			head, tail := splitStub(s, stub)
			cur = append(cur, head)
			pieces = append(pieces, cur)
			cur = []Segment{tail}
			continue
		}
		cur = append(cur, s)
	}
	pieces = append(pieces, cur)

	if len(pieces) == 1 {
		return []DerivedPart{{Name: name, Segments: pieces[0], Circular: circular}}
	}
	out := make([]DerivedPart, len(pieces))
	for i, p := range pieces {
		out[i] = DerivedPart{Name: name + suffixLetters(i), Segments: p}
	}
	return out
}

// splitStub cuts a too-long segment s into two stub fragments of length
// stub, each anchored at one of s's own original endpoints, in s's own
// direction.
func splitStub(s Segment, stub int) (head, tail Segment) {
	if s.forward() {
		return Segment{Chrom: s.Chrom, Beg: s.Beg, End: s.Beg + stub},
			Segment{Chrom: s.Chrom, Beg: s.End - stub, End: s.End}
	}
	return Segment{Chrom: s.Chrom, Beg: s.Beg, End: s.Beg - stub},
		Segment{Chrom: s.Chrom, Beg: s.End + stub, End: s.End}
}

// suffixLetters renders 0, 1, 2, … as "a", "b", "c", … and continues into
// "aa", "ab", … past 25, matching spreadsheet-column naming.
func suffixLetters(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return suffixLetters(i/26-1) + string(rune('a'+i%26))
}
