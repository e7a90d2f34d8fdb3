// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package derive implements the Derivation Engine (spec §4.9, "Stage B"):
// it parses the summary paragraphs emitted by package summary, matches
// rearrangement breakpoints into chains by chromosome position, walks
// those chains into derived chromosomes, splits overlong segments, and
// groups the results by reference proximity into output parts.
package derive

import "fmt"

// Segment is one oriented reference interval contributed by a
// rearrangement (spec §3): Beg > End marks the reverse strand.
type Segment struct {
	Chrom    string
	Beg, End int
}

func (s Segment) forward() bool { return s.Beg < s.End }

func (s Segment) length() int {
	if s.forward() {
		return s.End - s.Beg
	}
	return s.Beg - s.End
}

func (s Segment) reverse() Segment { return Segment{Chrom: s.Chrom, Beg: s.End, End: s.Beg} }

// Rearrangement is one parsed group from a Stage A summary paragraph
// (spec §3): a name and its ordered list of reference segments.
type Rearrangement struct {
	Name     string
	Segments []Segment

	// GroupID is the clump group number the rearrangement's paragraph was
	// emitted under ("# groupK-size"), or the first id of a "# merge…"
	// header. It is 0 when no header was seen (malformed input) and is
	// used only to support the --groups filter.
	GroupID int
}

func (r Rearrangement) String() string {
	return fmt.Sprintf("%s(%d segments)", r.Name, len(r.Segments))
}
