// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aln implements the Alignment Reader (spec §4.1): it parses the
// three interchangeable alignment-block formats — pairwise, tabular and
// shrunk — into a uniform per-query stream of Records.
package aln

import (
	"fmt"
	"math"

	"github.com/kortschak/clumps/internal/model"
)

// Format identifies which of the three interchangeable text formats a
// Record was parsed from.
type Format int

const (
	Pairwise Format = iota
	Tabular
	Shrunk
)

// GapData describes where a Record's internal indels live, so the Gap
// Splitter (package gapsplit) can find them without re-parsing text.
type GapData struct {
	// RefSeq and QrySeq are the gapped alignment rows (pairwise format
	// only); '-' marks a gap in that row.
	RefSeq, QrySeq string

	// Blocks and Gaps describe the tabular gap descriptor (tabular format
	// only): alternating ungapped block lengths and ref:qry gap sizes,
	// with len(Blocks) == len(Gaps)+1.
	Blocks []int
	Gaps   []GapElem

	// PreSplit is true when the record is already gap-free (shrunk
	// format): it was produced by a prior run of the Gap Splitter.
	PreSplit bool
}

// GapElem is one "ref:qry" gap-size element from a tabular gap descriptor.
type GapElem struct {
	Ref, Qry int
}

// Record is one parsed alignment block, not yet split at internal gaps.
type Record struct {
	Format Format

	QueryName string
	QueryLen  int

	// QueryBeg, QueryEnd, RefBeg, RefEnd give the full extent of the
	// alignment using the signed-coordinate convention of spec §3.
	QueryBeg, QueryEnd int
	RefName            string
	RefBeg, RefEnd     int

	Mismap float64 // NaN if the record carried no mismap= token

	Gap GapData

	Block model.Block
}

// NoMismap is the sentinel Mismap value for records without a mismap=
// token.
var NoMismap = math.NaN()

// HasMismap reports whether r carries an explicit mismap probability.
func (r *Record) HasMismap() bool { return !math.IsNaN(r.Mismap) }

// QueryGroup is the (queryName, queryLen) key the Reader groups records
// by, per spec §4.1's final paragraph.
type QueryGroup struct {
	Name string
	Len  int
}

func (g QueryGroup) String() string { return fmt.Sprintf("%s(%d)", g.Name, g.Len) }
