// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"strings"
	"testing"
)

func TestWritePartGroup(t *testing.T) {
	parts := []DerivedPart{
		{
			Name:     "der1",
			Circular: true,
			Segments: []Segment{
				{Chrom: "chrA", Beg: 100, End: 200},
				{Chrom: "chrB", Beg: 400, End: 300},
			},
		},
	}
	var buf strings.Builder
	WritePartGroup(&buf, 1, parts)
	want := "# PART 1\nder1:CIRCULAR\nchrA\t100\t>\t200\nchrB\t400\t<\t300\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
