// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gapsplit

import (
	"reflect"
	"testing"

	"github.com/kortschak/clumps/internal/aln"
)

func TestSplitPairwiseNoSplit(t *testing.T) {
	rec := aln.Record{
		Format:   aln.Pairwise,
		QueryBeg: 0, QueryEnd: 9,
		RefBeg: 100, RefEnd: 110,
		Gap: aln.GapData{RefSeq: "ACGTACGTAC", QrySeq: "ACGTAC-GTA"},
	}
	got := Split(rec, 1000)
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1: %+v", len(got), got)
	}
	want := Span{QueryBeg: 0, QueryEnd: 9, RefBeg: 100, RefEnd: 110}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestSplitPairwiseBigGap(t *testing.T) {
	// 3 matched bases, a 5-base query gap (big, ref advances 5),
	// 3 more matched bases.
	ref := "AAA" + "GGGGG" + "TTT"
	qry := "AAA" + "-----" + "TTT"
	rec := aln.Record{
		Format:   aln.Pairwise,
		QueryBeg: 0, QueryEnd: 6,
		RefBeg: 0, RefEnd: 11,
		Gap: aln.GapData{RefSeq: ref, QrySeq: qry},
	}
	got := Split(rec, 5)
	want := []Span{
		{QueryBeg: 0, QueryEnd: 3, RefBeg: 0, RefEnd: 3},
		{QueryBeg: 3, QueryEnd: 6, RefBeg: 8, RefEnd: 11},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitPairwiseBelowThreshold(t *testing.T) {
	ref := "AAA" + "GGGGG" + "TTT"
	qry := "AAA" + "-----" + "TTT"
	rec := aln.Record{
		Format:   aln.Pairwise,
		QueryBeg: 0, QueryEnd: 6,
		RefBeg: 0, RefEnd: 11,
		Gap: aln.GapData{RefSeq: ref, QrySeq: qry},
	}
	got := Split(rec, 6)
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1 (gap below threshold): %+v", len(got), got)
	}
}

func TestSplitPairwiseExtendsThroughAdjacentGaps(t *testing.T) {
	// A 5-base query gap immediately followed by a 2-base ref gap: the
	// split should swallow both so neither side keeps a dangling gap.
	ref := "AAA" + "GGGGG" + "--" + "TTT"
	qry := "AAA" + "-----" + "CC" + "TTT"
	rec := aln.Record{
		Format:   aln.Pairwise,
		QueryBeg: 0, QueryEnd: 8,
		RefBeg: 0, RefEnd: 11,
		Gap: aln.GapData{RefSeq: ref, QrySeq: qry},
	}
	got := Split(rec, 5)
	want := []Span{
		{QueryBeg: 0, QueryEnd: 3, RefBeg: 0, RefEnd: 3},
		{QueryBeg: 5, QueryEnd: 8, RefBeg: 8, RefEnd: 11},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitTabular(t *testing.T) {
	rec := aln.Record{
		Format:   aln.Tabular,
		QueryBeg: 0, QueryEnd: 0, // unused directly; derived from blocks
		RefBeg: 1000, RefEnd: 0,
		Gap: aln.GapData{
			Blocks: []int{50, 30},
			Gaps:   []aln.GapElem{{Ref: 12000, Qry: 0}},
		},
	}
	rec.QueryBeg = 0
	got := Split(rec, 10000)
	want := []Span{
		{QueryBeg: 0, QueryEnd: 50, RefBeg: 1000, RefEnd: 1050},
		{QueryBeg: 50, QueryEnd: 80, RefBeg: 13050, RefEnd: 13080},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitTabularGapBelowThreshold(t *testing.T) {
	rec := aln.Record{
		Format: aln.Tabular,
		RefBeg: 1000,
		Gap: aln.GapData{
			Blocks: []int{50, 30},
			Gaps:   []aln.GapElem{{Ref: 500, Qry: 0}},
		},
	}
	got := Split(rec, 10000)
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1: %+v", len(got), got)
	}
}
