// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"strings"
	"testing"
)

func TestRunEndToEnd(t *testing.T) {
	text := "# group1-2\n" +
		"# r1 chrA:100>200\n" +
		"# r2 chrA:250>350\n"
	rearrs, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Run(rearrs, Options{MaxLen: 100000})
	if len(res.Ambiguous) != 0 {
		t.Errorf("got ambiguous chromosomes %v, want none", res.Ambiguous)
	}
	if len(res.Matchings) != 1 {
		t.Fatalf("got %d matchings, want 1: %+v", len(res.Matchings), res.Matchings)
	}
	groups := res.Matchings[0]
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	group := groups[0]
	if len(group) != 1 || group[0].Name != "der1" {
		t.Fatalf("got group %+v, want a single part der1", group)
	}
	// r1's last segment and r2's first merge at the chain boundary.
	want := Segment{Chrom: "chrA", Beg: 100, End: 350}
	if len(group[0].Segments) != 1 || group[0].Segments[0] != want {
		t.Errorf("got segments %+v, want %+v", group[0].Segments, []Segment{want})
	}
}

func TestRunAllEnumeratesEveryMatching(t *testing.T) {
	// Three rearrangements each contribute one end to chrA: two upper ends
	// (r0, r1) open before r2's lower end, the ambiguous three-endpoint
	// case from spec §4.9 scenario 6. Their other ends sit on distinct,
	// uncontested chromosomes so chrA is the only source of ambiguity.
	text := "# group1-3\n" +
		"# r0 chrB:10>20 chrA:50>100\n" +
		"# r1 chrC:10>20 chrA:60>110\n" +
		"# r2 chrA:120>200 chrD:10>20\n"
	rearrs, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Run(rearrs, Options{All: true, MaxLen: 100000})
	if len(res.Ambiguous) != 1 || res.Ambiguous[0] != "chrA" {
		t.Fatalf("got ambiguous %v, want [chrA]", res.Ambiguous)
	}
	if len(res.Matchings) != 2 {
		t.Fatalf("got %d matchings, want 2: %+v", len(res.Matchings), res.Matchings)
	}
	for i, groups := range res.Matchings {
		if len(groups) == 0 {
			t.Errorf("matching %d: got no part groups", i)
		}
	}
}

func TestRunFiltersByGroups(t *testing.T) {
	text := "# group1-1\n# r1 chrA:100>200\n# group2-1\n# r2 chrB:100>200\n"
	rearrs, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Run(rearrs, Options{MaxLen: 100000, Groups: map[int]bool{2: true}})
	if len(res.Matchings) != 1 {
		t.Fatalf("got %d matchings, want 1: %+v", len(res.Matchings), res.Matchings)
	}
	var names []string
	for _, g := range res.Matchings[0] {
		for _, p := range g {
			names = append(names, p.Name)
		}
	}
	if len(names) != 1 {
		t.Fatalf("got parts %v, want exactly one (from group 2 only)", names)
	}
}
