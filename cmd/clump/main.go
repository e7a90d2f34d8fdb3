// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clump is Stage A of the rearranged-sequence-clumps tool: it
// detects structural rearrangements in aligned reads, subtracts those
// also witnessed in a control set, filters by independent coverage, and
// groups the survivors into clumps of reads sharing the same
// rearrangement (spec §4).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/kortschak/clumps/internal/aln"
	"github.com/kortschak/clumps/internal/clump"
	"github.com/kortschak/clumps/internal/ingest"
	"github.com/kortschak/clumps/internal/ioutil"
	"github.com/kortschak/clumps/internal/model"
	"github.com/kortschak/clumps/internal/oracle"
	"github.com/kortschak/clumps/internal/overlap"
	"github.com/kortschak/clumps/internal/rearrange"
	"github.com/kortschak/clumps/internal/subtract"
	"github.com/kortschak/clumps/internal/summary"
)

func main() {
	// A SIGPIPE from a downstream consumer (e.g. `| head`) should kill
	// this process silently rather than be delivered to a Go signal
	// handler (spec §5).
	signal.Reset(syscall.SIGPIPE)

	log.SetFlags(0)
	log.SetPrefix("clump: ")

	minSeqs := flag.Int("minSeqs", 2, "minimum queries in a clump")
	minCov := flag.Int("minCov", -1, "minimum independent coverage of a non-linear junction (default: 1 if minSeqs>1, else 0)")
	types := flag.String("types", rearrange.Types, "enabled rearrangement type letters, subset of "+rearrange.Types)
	minGap := flag.Int("minGap", 10000, "minimum reference gap size that triggers a G-type rearrangement")
	minRev := flag.Int("minRev", 1000, "minimum backward jump size that triggers an N-type rearrangement")
	filterFlag := flag.Int("filter", 1, "restrict control subtraction to each case's own type letter (0 or 1)")
	maxDiff := flag.Int("maxDiff", 500, "maximum geometric inconsistency tolerated by the shared-rearrangement oracle")
	maxMismap := flag.Float64("maxMismap", 1.0, "drop alignments with mismap probability above this")
	shrink := flag.Bool("shrink", false, "emit PART bodies in the compact shrunk row format")
	verbose := flag.Bool("verbose", false, "log progress to stderr")
	flag.Parse()

	caseFiles, controlFiles, err := splitFileArgs(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(caseFiles) == 0 {
		log.Fatal("no case files given")
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	fmt.Fprintf(out, "# %s\n", strings.Join(os.Args, " "))

	oopts := oracle.Options{MaxDiff: *maxDiff, MinGap: *minGap, MinRev: *minRev}
	rOpts := rearrange.Options{Enabled: *types, MinGap: *minGap, MinRev: *minRev}
	mc := *minCov
	if mc < 0 {
		mc = subtract.DefaultMinCov(*minSeqs)
	}
	sOpts := subtract.Options{
		Oracle:  oopts,
		Filter:  *filterFlag != 0,
		MinCov:  mc,
		MinSeqs: *minSeqs,
	}

	nextAlnID := newIDCounter()

	var queries []*model.Query
	var caseFileIdx []int
	for i, name := range caseFiles {
		file := i + 1
		caseFileIdx = append(caseFileIdx, file)
		qs, err := readQueries(name, file, false, *minGap, *maxMismap, nextAlnID)
		if err != nil {
			log.Fatal(err)
		}
		queries = append(queries, qs...)
	}
	for i, name := range controlFiles {
		file := len(caseFiles) + i + 1
		qs, err := readQueries(name, file, true, *minGap, *maxMismap, nextAlnID)
		if err != nil {
			log.Fatal(err)
		}
		queries = append(queries, qs...)
	}
	if *verbose {
		log.Printf("parsed %d queries from %d case file(s) and %d control file(s)", len(queries), len(caseFiles), len(controlFiles))
	}

	var corpus subtract.Corpus
	for _, q := range queries {
		oriented := rearrange.Orient(q.Subs)
		q.Subs = oriented
		if !q.IsControl {
			q.Type = rearrange.Classify(q.Subs, rOpts)
			if q.Type == 0 {
				continue // not classified as rearranged: silent drop (spec §7)
			}
		}
		corpus.Queries = append(corpus.Queries, q)
		corpus.Subs = append(corpus.Subs, q.Subs)
	}

	kept := subtract.SubtractControls(&corpus, sOpts)
	if *verbose {
		log.Printf("%d/%d queries survive control subtraction", len(kept), len(corpus.Queries))
	}
	kept = subtract.FilterByCoverage(&corpus, kept, sOpts)
	if *verbose {
		log.Printf("%d queries survive the coverage filter", len(kept))
	}

	var caseIdxs []int
	for _, qi := range kept {
		if !corpus.Queries[qi].IsControl {
			caseIdxs = append(caseIdxs, qi)
		}
	}

	localOf := make(map[int]int, len(caseIdxs))
	clumpQueries := make([]*model.Query, len(caseIdxs))
	for li, oi := range caseIdxs {
		clumpQueries[li] = corpus.Queries[oi]
		localOf[oi] = li
	}

	crossLinks := subtract.CrossCaseLinks(&corpus, kept, oopts)
	localLinks := make([]model.Link, len(crossLinks))
	for i, l := range crossLinks {
		localLinks[i] = model.Link{A: localOf[l.A], B: localOf[l.B], Opposed: l.Opposed}
	}

	clumps := clump.Build(clumpQueries, localLinks, clump.Options{MinSeqs: *minSeqs})
	if *verbose {
		log.Printf("%d clump(s) before merging", len(clumps))
	}

	sourceOf := make(map[int]int, len(clumpQueries))
	for ci, c := range clumps {
		for _, qid := range c.Queries {
			sourceOf[qid] = ci + 1
		}
	}

	superLinks := superClumpLinks(clumps, clumpQueries)
	merged := clump.MergeClumps(clumps, superLinks)

	queryName := func(id int) string { return clumpQueries[id].Name }
	querySortKey := func(id int) clump.QuerySortKey { return minSortKey(clumpQueries[id]) }
	clump.Order(merged, queryName, querySortKey)

	fileOf := func(id int) int { return clumpQueries[id].File }
	var retained []clump.Clump
	for _, c := range merged {
		if clump.CoversAllCaseFiles(c, fileOf, caseFileIdx) {
			retained = append(retained, c)
		}
	}
	if *verbose {
		log.Printf("%d clump(s) retained after merging and case-file coverage filtering", len(retained))
	}

	for _, c := range retained {
		header := headerFor(c, sourceOf, clumpQueries)
		writeClump(out, header, c, clumpQueries, *minGap, *minRev, *shrink)
	}
}

// splitFileArgs divides args into case and control file lists at the
// first literal ":" token (spec §6).
func splitFileArgs(args []string) (caseFiles, controlFiles []string, err error) {
	for i, a := range args {
		if a == ":" {
			return args[:i], args[i+1:], nil
		}
	}
	return args, nil, nil
}

func newIDCounter() func() int {
	n := 0
	return func() int {
		id := n
		n++
		return id
	}
}

func readQueries(name string, file int, isControl bool, minGap int, maxMismap float64, nextAlnID func() int) ([]*model.Query, error) {
	r, err := ioutil.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	raws, err := aln.ReadAll(r, maxMismap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ingest.Build(raws, file, isControl, minGap, nextAlnID), nil
}

// superClumpLinks finds every reference-overlapping pair of queries
// belonging to distinct clumps and links their clumps (spec §4.7's
// second merge level, "linked by any cross-query neighbor edge").
func superClumpLinks(clumps []clump.Clump, clumpQueries []*model.Query) []model.Link {
	clumpOf := make(map[int]int, len(clumpQueries))
	for ci, c := range clumps {
		for _, qid := range c.Queries {
			clumpOf[qid] = ci
		}
	}

	memberQids := make([]int, 0, len(clumpOf))
	for qid := range clumpOf {
		memberQids = append(memberQids, qid)
	}
	sort.Ints(memberQids)

	var flat []*model.SubAlignment
	var owner []int
	for _, qid := range memberQids {
		for _, s := range clumpQueries[qid].Subs {
			flat = append(flat, s)
			owner = append(owner, qid)
		}
	}
	idx := overlap.Build(flat, owner)
	pairs := overlap.CasePairs(idx, flat, func(int) bool { return true })

	seen := make(map[[2]int]bool)
	var links []model.Link
	for _, p := range pairs {
		qa, qb := idx.Owner(p.A), idx.Owner(p.B)
		ca, cb := clumpOf[qa], clumpOf[qb]
		if ca == cb {
			continue
		}
		key := [2]int{ca, cb}
		if ca > cb {
			key = [2]int{cb, ca}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, model.Link{A: ca, B: cb, Opposed: p.A.RefStrand() != p.B.RefStrand()})
	}
	return links
}

func minSortKey(q *model.Query) clump.QuerySortKey {
	best := clump.QuerySortKey{RefName: q.Subs[0].RefName, RefBeg: q.Subs[0].AbsRefBeg(), RefEnd: q.Subs[0].AbsRefEnd()}
	for _, s := range q.Subs[1:] {
		k := clump.QuerySortKey{RefName: s.RefName, RefBeg: s.AbsRefBeg(), RefEnd: s.AbsRefEnd()}
		if lessSortKey(k, best) {
			best = k
		}
	}
	return best
}

func lessSortKey(a, b clump.QuerySortKey) bool {
	if a.RefName != b.RefName {
		return a.RefName < b.RefName
	}
	if a.RefBeg != b.RefBeg {
		return a.RefBeg < b.RefBeg
	}
	return a.RefEnd < b.RefEnd
}

func headerFor(c clump.Clump, sourceOf map[int]int, clumpQueries []*model.Query) summary.Header {
	ids := make(map[int]bool)
	for _, qid := range c.Queries {
		ids[sourceOf[qid]] = true
	}
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)
	if len(sorted) == 1 {
		return summary.Header{Group: sorted[0], Size: c.Size()}
	}
	return summary.Header{MergeIDs: sorted, Size: c.Size()}
}

func writeClump(w *bufio.Writer, header summary.Header, c clump.Clump, clumpQueries []*model.Query, minGap, minRev int, shrink bool) {
	querySummaries := make([]summary.QuerySummary, len(c.Queries))
	for i, qid := range c.Queries {
		q := clumpQueries[qid]
		subs := q.Subs
		if c.Flip[i] {
			subs = flipSubs(subs)
		}
		querySummaries[i] = summary.QuerySummary{Name: q.Name, Ranges: summary.FuseRanges(subs, minGap, minRev)}
	}
	summary.WriteParagraph(w, header, querySummaries)

	for i, qid := range c.Queries {
		q := clumpQueries[qid]
		part := summary.PartBody{Name: q.Name, Blocks: q.Blocks, Flipped: c.Flip[i]}
		if shrink {
			subs := q.Subs
			if c.Flip[i] {
				subs = flipSubs(subs)
			}
			part.Shrunk = &summary.ShrunkBody{QueryLen: q.Length, Subs: subs}
		}
		summary.WritePart(w, part)
	}
}

// flipSubs returns subs reversed and strand-negated on both axes, the
// sub-alignment-level equivalent of a Block's Flip (spec §4.8).
func flipSubs(subs []*model.SubAlignment) []*model.SubAlignment {
	out := make([]*model.SubAlignment, len(subs))
	for i, s := range subs {
		out[len(subs)-1-i] = &model.SubAlignment{
			QueryBeg: -s.QueryEnd,
			QueryEnd: -s.QueryBeg,
			RefName:  s.RefName,
			RefBeg:   -s.RefEnd,
			RefEnd:   -s.RefBeg,
			AlnID:    s.AlnID,
		}
	}
	return out
}
