// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlap

import (
	"testing"

	"github.com/kortschak/clumps/internal/model"
)

func TestCasePairsFindsOverlap(t *testing.T) {
	a := &model.SubAlignment{AlnID: 1, RefName: "chr1", RefBeg: 100, RefEnd: 200}
	b := &model.SubAlignment{AlnID: 2, RefName: "chr1", RefBeg: 150, RefEnd: 250}
	c := &model.SubAlignment{AlnID: 3, RefName: "chr1", RefBeg: 1000, RefEnd: 1100}
	subs := []*model.SubAlignment{a, b, c}
	owner := []int{0, 1, 2}
	idx := Build(subs, owner)

	isCase := func(i int) bool { return i != 2 }
	pairs := CasePairs(idx, subs, isCase)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].A != a || pairs[0].B != b {
		t.Errorf("got pair %+v, want (a, b)", pairs[0])
	}
}

func TestCasePairsExcludesControl(t *testing.T) {
	a := &model.SubAlignment{AlnID: 1, RefName: "chr1", RefBeg: 100, RefEnd: 200}
	b := &model.SubAlignment{AlnID: 2, RefName: "chr1", RefBeg: 150, RefEnd: 250}
	subs := []*model.SubAlignment{a, b}
	owner := []int{0, 1}
	idx := Build(subs, owner)

	isCase := func(i int) bool { return i == 0 }
	pairs := CasePairs(idx, subs, isCase)
	if len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0 (b is a control)", len(pairs))
	}
}

func TestControlPairsFindsCaseControlOverlap(t *testing.T) {
	caseSub := &model.SubAlignment{AlnID: 1, RefName: "chr1", RefBeg: 100, RefEnd: 200}
	ctrlSub := &model.SubAlignment{AlnID: 2, RefName: "chr1", RefBeg: 150, RefEnd: 250}
	subs := []*model.SubAlignment{caseSub, ctrlSub}
	owner := []int{0, 1}
	idx := Build(subs, owner)

	isCase := func(i int) bool { return i == 0 }
	pairs := ControlPairs(idx, subs, isCase)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1: %+v", len(pairs), pairs)
	}
	if pairs[0].A != caseSub || pairs[0].B != ctrlSub {
		t.Errorf("got pair %+v, want (caseSub, ctrlSub)", pairs[0])
	}
}

func TestOverlappingExcludesSelf(t *testing.T) {
	a := &model.SubAlignment{AlnID: 1, RefName: "chr1", RefBeg: 100, RefEnd: 200}
	subs := []*model.SubAlignment{a}
	idx := Build(subs, []int{0})
	if got := idx.Overlapping(a); len(got) != 0 {
		t.Errorf("got %d self-overlaps, want 0", len(got))
	}
}

func TestNoOverlapAcrossChromosomes(t *testing.T) {
	a := &model.SubAlignment{AlnID: 1, RefName: "chr1", RefBeg: 100, RefEnd: 200}
	b := &model.SubAlignment{AlnID: 2, RefName: "chr2", RefBeg: 100, RefEnd: 200}
	subs := []*model.SubAlignment{a, b}
	idx := Build(subs, []int{0, 1})
	isCase := func(int) bool { return true }
	if pairs := CasePairs(idx, subs, isCase); len(pairs) != 0 {
		t.Errorf("got %d cross-chromosome pairs, want 0", len(pairs))
	}
}
