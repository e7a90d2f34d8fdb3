// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clump

import (
	"testing"

	"github.com/kortschak/clumps/internal/model"
)

func q(subs ...*model.SubAlignment) *model.Query {
	return &model.Query{Subs: subs}
}

func s(refBeg, refEnd, qryBeg, qryEnd int) *model.SubAlignment {
	return &model.SubAlignment{RefBeg: refBeg, RefEnd: refEnd, QueryBeg: qryBeg, QueryEnd: qryEnd}
}

func TestBuildSingleComponent(t *testing.T) {
	queries := []*model.Query{
		q(s(0, 100, 0, 100)),
		q(s(0, 100, 0, 100)),
		q(s(0, 100, 0, 100)),
	}
	links := []model.Link{{A: 0, B: 1}, {A: 1, B: 2}}
	clumps := Build(queries, links, Options{MinSeqs: 2})
	if len(clumps) != 1 {
		t.Fatalf("got %d clumps, want 1", len(clumps))
	}
	if clumps[0].Size() != 3 {
		t.Errorf("got size %d, want 3", clumps[0].Size())
	}
}

func TestBuildDropsSmallComponents(t *testing.T) {
	queries := []*model.Query{q(s(0, 100, 0, 100)), q(s(0, 100, 0, 100))}
	// No links: two singleton components, both below minSeqs=2.
	clumps := Build(queries, nil, Options{MinSeqs: 2})
	if len(clumps) != 0 {
		t.Errorf("got %d clumps, want 0", len(clumps))
	}
}

func TestBuildFlipPropagatesXOR(t *testing.T) {
	queries := []*model.Query{
		q(s(0, 100, 0, 100)),
		q(s(0, 100, 0, 100)),
		q(s(0, 100, 0, 100)),
	}
	// 0 -opposed-> 1 -same-> 2
	links := []model.Link{
		{A: 0, B: 1, Opposed: true},
		{A: 1, B: 2, Opposed: false},
	}
	clumps := Build(queries, links, Options{MinSeqs: 2})
	if len(clumps) != 1 {
		t.Fatalf("got %d clumps, want 1", len(clumps))
	}
	flipOf := make(map[int]bool)
	for i, id := range clumps[0].Queries {
		flipOf[id] = clumps[0].Flip[i]
	}
	if flipOf[0] == flipOf[1] {
		t.Errorf("query 0 and 1 are linked opposed, want differing flip bits")
	}
	if flipOf[1] != flipOf[2] {
		t.Errorf("query 1 and 2 are linked same-strand, want matching flip bits")
	}
}

func TestMergeClumpsJoinsSuperComponents(t *testing.T) {
	clumps := []Clump{
		{Queries: []int{0, 1}, Flip: []bool{false, false}},
		{Queries: []int{2, 3}, Flip: []bool{false, false}},
	}
	superLinks := []model.Link{{A: 0, B: 1, Opposed: true}}
	merged := MergeClumps(clumps, superLinks)
	if len(merged) != 1 {
		t.Fatalf("got %d merged clumps, want 1", len(merged))
	}
	if merged[0].Size() != 4 {
		t.Errorf("got size %d, want 4", merged[0].Size())
	}
}

func TestOrderByGroupNumber(t *testing.T) {
	names := map[int]string{0: "group2-a", 1: "group1-a", 2: "group1-b"}
	clumps := []Clump{
		{Queries: []int{0}},
		{Queries: []int{1, 2}},
	}
	Order(clumps, func(id int) string { return names[id] }, nil)
	if clumps[0].Queries[0] != 1 {
		t.Errorf("got first clump queries %v, want group1 clump first", clumps[0].Queries)
	}
}

func TestOrderBySizeThenKey(t *testing.T) {
	keys := map[int]QuerySortKey{
		0: {RefName: "chr2", RefBeg: 0, RefEnd: 100},
		1: {RefName: "chr1", RefBeg: 0, RefEnd: 100},
		2: {RefName: "chr1", RefBeg: 200, RefEnd: 300},
	}
	clumps := []Clump{
		{Queries: []int{0}},
		{Queries: []int{1, 2}},
	}
	Order(clumps, func(id int) string { return "read1" }, func(id int) QuerySortKey { return keys[id] })
	if clumps[0].Size() != 2 {
		t.Errorf("got first clump size %d, want 2 (larger clump sorts first)", clumps[0].Size())
	}
}

func TestCoversAllCaseFiles(t *testing.T) {
	c := Clump{Queries: []int{0, 1}}
	fileOf := map[int]int{0: 1, 1: 2}
	if !CoversAllCaseFiles(c, func(id int) int { return fileOf[id] }, []int{1, 2}) {
		t.Errorf("expected clump to cover both case files")
	}
	if CoversAllCaseFiles(c, func(id int) int { return fileOf[id] }, []int{1, 2, 3}) {
		t.Errorf("expected clump to miss case file 3")
	}
}
