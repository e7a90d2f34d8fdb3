// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"testing"

	"github.com/kortschak/clumps/internal/model"
)

var opts = Options{MaxDiff: 500, MinGap: 10000, MinRev: 1000}

func TestTestInterChromosomeAccepts(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 1000, RefEnd: 1100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr7", RefBeg: 5000, RefEnd: 5100, QueryBeg: 100, QueryEnd: 200}
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 1010, RefEnd: 1110, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr7", RefBeg: 5010, RefEnd: 5110, QueryBeg: 100, QueryEnd: 200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if !got.Matched {
		t.Fatalf("got unmatched, want matched (inter-chromosome)")
	}
	if got.Opposed {
		t.Errorf("got opposed=true, want false (same strand on both)")
	}
}

func TestTestGeometricInconsistencyRejects(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 1000, RefEnd: 1100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr7", RefBeg: 5000, RefEnd: 5100, QueryBeg: 100, QueryEnd: 200}
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 1000, RefEnd: 1100, QueryBeg: 0, QueryEnd: 100}
	// by's query position is shifted by 5000 relative to ay with no
	// matching reference-side shift: geometrically inconsistent.
	by := &model.SubAlignment{RefName: "chr7", RefBeg: 5000, RefEnd: 5100, QueryBeg: 5100, QueryEnd: 5200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if got.Matched {
		t.Fatalf("got matched, want unmatched (geometrically inconsistent)")
	}
}

func TestTestNTypeMatch(t *testing.T) {
	// A: non-colinear backward jump of 2000 bases.
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 10000, RefEnd: 10100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr1", RefBeg: 8000, RefEnd: 8100, QueryBeg: 100, QueryEnd: 200}
	// B: the same jump, positions overlapping A's.
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 10010, RefEnd: 10110, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr1", RefBeg: 8010, RefEnd: 8110, QueryBeg: 100, QueryEnd: 200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if !got.Matched {
		t.Fatalf("got unmatched, want matched (N-type)")
	}
}

func TestTestNTypeRejectsWhenBNotBackward(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 10000, RefEnd: 10100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr1", RefBeg: 8000, RefEnd: 8100, QueryBeg: 100, QueryEnd: 200}
	// B's pair is colinear forward, not a backward jump: it lands nowhere
	// near A's breakpoint, so it fails both the geometric-consistency and
	// the N-type gap-sign checks.
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 10000, RefEnd: 10100, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr1", RefBeg: 10200, RefEnd: 10300, QueryBeg: 100, QueryEnd: 200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if got.Matched {
		t.Errorf("got matched, want unmatched (B's gap is not a backward jump)")
	}
}

func TestTestGTypeMatch(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 0, RefEnd: 100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr1", RefBeg: 15000, RefEnd: 15100, QueryBeg: 100, QueryEnd: 200}
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 10, RefEnd: 110, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr1", RefBeg: 15010, RefEnd: 15110, QueryBeg: 100, QueryEnd: 200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if !got.Matched {
		t.Fatalf("got unmatched, want matched (G-type)")
	}
}

func TestTestGTypeRejectsNonAdjacent(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 0, RefEnd: 100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr1", RefBeg: 15000, RefEnd: 15100, QueryBeg: 100, QueryEnd: 200}
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: 10, RefEnd: 110, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr1", RefBeg: 15010, RefEnd: 15110, QueryBeg: 100, QueryEnd: 200}
	mid := &model.SubAlignment{RefName: "chr1", RefBeg: 7000, RefEnd: 7100, QueryBeg: 50, QueryEnd: 60}
	bQuery := []*model.SubAlignment{bx, mid, by} // bx and by are not adjacent

	got := Test(ax, ay, bx, by, bQuery, opts)
	if got.Matched {
		t.Errorf("got matched, want unmatched (bx, by not query-adjacent)")
	}
}

func TestTestOpposedStrand(t *testing.T) {
	ax := &model.SubAlignment{RefName: "chr1", RefBeg: 1000, RefEnd: 1100, QueryBeg: 0, QueryEnd: 100}
	ay := &model.SubAlignment{RefName: "chr7", RefBeg: 5000, RefEnd: 5100, QueryBeg: 100, QueryEnd: 200}
	bx := &model.SubAlignment{RefName: "chr1", RefBeg: -1110, RefEnd: -1010, QueryBeg: 0, QueryEnd: 100}
	by := &model.SubAlignment{RefName: "chr7", RefBeg: -5110, RefEnd: -5010, QueryBeg: 100, QueryEnd: 200}
	bQuery := []*model.SubAlignment{bx, by}

	got := Test(ax, ay, bx, by, bQuery, opts)
	if !got.Matched {
		t.Fatalf("got unmatched, want matched")
	}
	if !got.Opposed {
		t.Errorf("got opposed=false, want true (bx is reverse ref strand)")
	}
}
