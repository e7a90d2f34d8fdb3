// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ingest bridges the Alignment Reader and Gap Splitter (spec
// §4.1, §4.2) into the Query/SubAlignment shape the rest of the pipeline
// consumes: it groups a file's raw records into model.Query values, cutting
// each record's alignment at its internal gaps.
package ingest

import (
	"github.com/kortschak/clumps/internal/aln"
	"github.com/kortschak/clumps/internal/gapsplit"
	"github.com/kortschak/clumps/internal/model"
)

// Build converts raws, the records read from one file, into model.Query
// values. file is the 1-based input file index recorded on every query
// (spec §4.7's CoversAllCaseFiles, §9's file-order emission rule). nextAlnID
// is called once per source Record to assign the AlnID shared by every
// sub-alignment the splitter cuts from it, so the Overlap Index's pair
// deduplication (lessSub) can break ties consistently across the whole
// corpus.
func Build(raws []aln.RawQuery, file int, isControl bool, minGap int, nextAlnID func() int) []*model.Query {
	queries := make([]*model.Query, len(raws))
	for i, raw := range raws {
		q := &model.Query{
			File:      file,
			Name:      raw.Group.Name,
			Length:    raw.Group.Len,
			IsControl: isControl,
		}
		for _, rec := range raw.Records {
			id := nextAlnID()
			q.Blocks = append(q.Blocks, rec.Block)
			for _, span := range gapsplit.Split(rec, minGap) {
				q.Subs = append(q.Subs, &model.SubAlignment{
					QueryBeg: span.QueryBeg,
					QueryEnd: span.QueryEnd,
					RefName:  rec.RefName,
					RefBeg:   span.RefBeg,
					RefEnd:   span.RefEnd,
					AlnID:    id,
				})
			}
		}
		queries[i] = q
	}
	return queries
}
