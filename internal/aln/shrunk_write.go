// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aln

import (
	"fmt"
	"strings"

	"github.com/kortschak/clumps/internal/model"
)

// WriteShrunkQuery emits subs, a query's final (post-split, post-flip)
// sub-alignments in query order, in the shrunk delta-row format (spec
// §4.1, §4.8's shrink=true mode): a "> name\tlength" header followed by
// one 4- or 5-field delta row per sub-alignment. This is the inverse of
// parseShrunkHeader/parseShrunkRow; parseShrunkRow's comment describes
// the encoding.
func WriteShrunkQuery(w *strings.Builder, name string, length int, subs []*model.SubAlignment) {
	fmt.Fprintf(w, ">%s\t%d\n", name, length)

	var prevQryBeg, prevRefBeg int
	var prevRefName string
	for i, s := range subs {
		qryInc := s.QueryBeg
		if i > 0 {
			qryInc = s.QueryBeg - prevQryBeg
		}
		qrySpan := s.QueryEnd - s.QueryBeg
		refLenDiff := (s.RefEnd - s.RefBeg) - qrySpan

		if i == 0 || s.RefName != prevRefName {
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\n", qryInc, qrySpan, s.RefBeg, refLenDiff, s.RefName)
		} else {
			refInc := s.RefBeg - prevRefBeg
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", qryInc, qrySpan, refInc, refLenDiff)
		}

		prevQryBeg, prevRefBeg, prevRefName = s.QueryBeg, s.RefBeg, s.RefName
	}
}
