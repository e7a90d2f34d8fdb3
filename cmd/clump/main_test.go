// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"reflect"
	"testing"

	"github.com/kortschak/clumps/internal/clump"
	"github.com/kortschak/clumps/internal/model"
)

func TestSplitFileArgsNoControls(t *testing.T) {
	cases, controls, err := splitFileArgs([]string{"a.maf", "b.maf"})
	if err != nil {
		t.Fatalf("splitFileArgs: %v", err)
	}
	if !reflect.DeepEqual(cases, []string{"a.maf", "b.maf"}) || controls != nil {
		t.Errorf("got cases=%v controls=%v", cases, controls)
	}
}

func TestSplitFileArgsWithControls(t *testing.T) {
	cases, controls, err := splitFileArgs([]string{"a.maf", ":", "c.maf", "d.maf"})
	if err != nil {
		t.Fatalf("splitFileArgs: %v", err)
	}
	if !reflect.DeepEqual(cases, []string{"a.maf"}) || !reflect.DeepEqual(controls, []string{"c.maf", "d.maf"}) {
		t.Errorf("got cases=%v controls=%v", cases, controls)
	}
}

func TestFlipSubsReversesAndNegates(t *testing.T) {
	subs := []*model.SubAlignment{
		{QueryBeg: 0, QueryEnd: 100, RefName: "chr1", RefBeg: 0, RefEnd: 100, AlnID: 1},
		{QueryBeg: 100, QueryEnd: 200, RefName: "chr1", RefBeg: 10000, RefEnd: 10100, AlnID: 1},
	}
	got := flipSubs(subs)
	if len(got) != 2 {
		t.Fatalf("got %d subs, want 2", len(got))
	}
	// Order reverses; the former second sub now comes first, negated.
	if got[0].QueryBeg != -200 || got[0].QueryEnd != -100 || got[0].RefBeg != -10100 || got[0].RefEnd != -10000 {
		t.Errorf("got first flipped sub %+v", got[0])
	}
	if got[1].QueryBeg != -100 || got[1].QueryEnd != 0 || got[1].RefBeg != -100 || got[1].RefEnd != 0 {
		t.Errorf("got second flipped sub %+v", got[1])
	}
}

func TestMinSortKeyPicksSmallest(t *testing.T) {
	q := &model.Query{Subs: []*model.SubAlignment{
		{RefName: "chr2", RefBeg: 0, RefEnd: 100},
		{RefName: "chr1", RefBeg: 500, RefEnd: 600},
		{RefName: "chr1", RefBeg: 100, RefEnd: 200},
	}}
	got := minSortKey(q)
	want := clump.QuerySortKey{RefName: "chr1", RefBeg: 100, RefEnd: 200}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
