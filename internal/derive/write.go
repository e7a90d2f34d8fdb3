// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import (
	"fmt"
	"io"
	"strconv"
)

// WritePartGroup writes one "# PART k" section (spec §6): each
// DerivedPart's name (with a ":CIRCULAR" suffix when it survived as a
// circular chain) followed by one tab-separated "chrom\tbeg\t<|>\tend"
// line per segment.
func WritePartGroup(w io.Writer, k int, parts []DerivedPart) {
	WritePartGroupLabeled(w, strconv.Itoa(k), parts)
}

// WritePartGroupLabeled writes one "# PART <label>" section, the same
// body WritePartGroup writes, but with an arbitrary label instead of a
// plain integer — used for the "m-g" (matching-group) labels --all
// produces when more than one maximum matching is enumerated (spec §4.9
// scenario 6).
func WritePartGroupLabeled(w io.Writer, label string, parts []DerivedPart) {
	fmt.Fprintf(w, "# PART %s\n", label)
	for _, p := range parts {
		name := p.Name
		if p.Circular {
			name += ":CIRCULAR"
		}
		fmt.Fprintln(w, name)
		for _, s := range p.Segments {
			sym := byte('>')
			if !s.forward() {
				sym = '<'
			}
			fmt.Fprintf(w, "%s\t%d\t%c\t%d\n", s.Chrom, s.Beg, sym, s.End)
		}
	}
}
