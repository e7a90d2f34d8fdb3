// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clump implements the Clumper (spec §4.7): it builds the
// shared-rearrangement link graph over surviving queries as a
// gonum/graph WeightedUndirectedGraph, partitions it into connected
// components with graph/topo, then walks each component with a
// container/heap priority traversal that threads a per-query
// strand-flip bit, merges clumps that share alignments, and orders the
// result for emission.
package clump

import (
	"container/heap"
	"regexp"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kortschak/clumps/internal/model"
)

// Options bundles the clumper's tunable constants (spec §6).
type Options struct {
	MinSeqs int
}

// Clump is one connected component of linked queries, in traversal
// discovery order, with a parallel per-query strand-flip bit.
type Clump struct {
	Queries []int
	Flip    []bool
}

// Size is the number of queries in the clump.
func (c Clump) Size() int { return len(c.Queries) }

type linkEdge struct {
	to      int
	opposed bool
}

// Build constructs the link graph over len(queries) nodes from links
// (spec §4.5 invocation 2) and extracts connected components by
// priority-first traversal, dropping components with fewer than
// opts.MinSeqs queries.
func Build(queries []*model.Query, links []model.Link, opts Options) []Clump {
	adj := adjacencyOf(len(queries), links)
	priority := func(id int) priorityKey {
		return priorityKey{negDegree: -len(adj[id]), negLen: -alignedQueryLen(queries[id])}
	}
	rootFlip := func(id int) bool { return defaultRootFlip(queries[id]) }

	var clumps []Clump
	for _, c := range components(len(queries), adj, priority, rootFlip) {
		if c.Size() >= opts.MinSeqs {
			clumps = append(clumps, c)
		}
	}
	return clumps
}

// MergeClumps runs the same priority-first traversal over the clumps
// themselves, linked by superLinks (edges between clump indices created
// when two clumps share a reference-overlapping alignment), to merge
// clumps that were not already joined by a witnessed shared
// rearrangement (spec §4.7's "second level").
func MergeClumps(clumps []Clump, superLinks []model.Link) []Clump {
	adj := adjacencyOf(len(clumps), superLinks)
	priority := func(id int) priorityKey {
		return priorityKey{negDegree: -len(adj[id]), negLen: -clumps[id].Size()}
	}
	rootFlip := func(id int) bool { return false }

	var merged []Clump
	for _, super := range components(len(clumps), adj, priority, rootFlip) {
		var m Clump
		for i, ci := range super.Queries {
			groupOpposed := super.Flip[i]
			src := clumps[ci]
			for j, q := range src.Queries {
				m.Queries = append(m.Queries, q)
				m.Flip = append(m.Flip, src.Flip[j] != groupOpposed)
			}
		}
		merged = append(merged, m)
	}
	return merged
}

func adjacencyOf(n int, links []model.Link) [][]linkEdge {
	adj := make([][]linkEdge, n)
	for _, l := range links {
		adj[l.A] = append(adj[l.A], linkEdge{to: l.B, opposed: l.Opposed})
		adj[l.B] = append(adj[l.B], linkEdge{to: l.A, opposed: l.Opposed})
	}
	return adj
}

// priorityKey orders nodes lexicographically by (−degree, −size): higher
// degree and larger size sort first (spec §4.7, §9).
type priorityKey struct {
	negDegree int
	negLen    int
}

func (a priorityKey) less(b priorityKey) bool {
	if a.negDegree != b.negDegree {
		return a.negDegree < b.negDegree
	}
	return a.negLen < b.negLen
}

// components extracts the connected components of the graph described by
// adj using topo.ConnectedComponents, then runs the priority-first
// container/heap traversal within each component to fix its discovery
// order and thread the per-query flip bit: ConnectedComponents alone
// has no notion of priority or of the opposed-strand flip that has to
// propagate edge by edge, so it is used only to partition nodes into
// components, with the heap traversal doing the actual, ordered walk
// (spec §4.7, §9).
func components(n int, adj [][]linkEdge, priorityOf func(id int) priorityKey, rootFlipOf func(id int) bool) []Clump {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i, edges := range adj {
		for _, e := range edges {
			if e.to < i {
				continue // undirected: add each edge from its lower-numbered end only
			}
			w := 1.0
			if e.opposed {
				w = -1.0
			}
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(e.to), W: w})
		}
	}

	groups := topo.ConnectedComponents(g)
	sort.Slice(groups, func(i, j int) bool {
		a, b := bestPriority(groups[i], priorityOf), bestPriority(groups[j], priorityOf)
		if a != b {
			return a.less(b)
		}
		return bestNode(groups[i], priorityOf) < bestNode(groups[j], priorityOf)
	})

	visited := make([]bool, n)
	var out []Clump
	for _, group := range groups {
		root := bestNode(group, priorityOf)
		if visited[root] {
			continue
		}
		out = append(out, traverse(root, adj, priorityOf, rootFlipOf, visited))
	}
	return out
}

// bestNode returns the id, among group, with the best (lowest) priority
// key, breaking ties by id.
func bestNode(group []graph.Node, priorityOf func(id int) priorityKey) int {
	best := int(group[0].ID())
	bp := priorityOf(best)
	for _, node := range group[1:] {
		id := int(node.ID())
		p := priorityOf(id)
		if p.less(bp) || (p == bp && id < best) {
			best, bp = id, p
		}
	}
	return best
}

func bestPriority(group []graph.Node, priorityOf func(id int) priorityKey) priorityKey {
	return priorityOf(bestNode(group, priorityOf))
}

// traverse runs one priority-first component discovery rooted at root:
// each popped node is visited, its flip bit recorded, and its unvisited
// neighbors are pushed with flip = parentFlip XOR edgeOpposed (spec §4.7,
// §9).
func traverse(root int, adj [][]linkEdge, priorityOf func(id int) priorityKey, rootFlipOf func(id int) bool, visited []bool) Clump {
	h := &frontier{{id: root, flip: rootFlipOf(root), priority: priorityOf(root)}}
	heap.Init(h)

	var c Clump
	for h.Len() > 0 {
		item := heap.Pop(h).(frontierItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true
		c.Queries = append(c.Queries, item.id)
		c.Flip = append(c.Flip, item.flip)

		for _, e := range adj[item.id] {
			if visited[e.to] {
				continue
			}
			heap.Push(h, frontierItem{
				id:       e.to,
				flip:     item.flip != e.opposed,
				priority: priorityOf(e.to),
			})
		}
	}
	return c
}

type frontierItem struct {
	id       int
	flip     bool
	priority priorityKey
}

// frontier is a min-heap of frontierItem ordered by (priority, id), the
// explicit priority queue called for in spec §9.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority.less(f[j].priority)
	}
	return f[i].id < f[j].id
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// alignedQueryLen sums the query-side span of every sub-alignment
// belonging to q.
func alignedQueryLen(q *model.Query) int {
	total := 0
	for _, s := range q.Subs {
		total += s.AbsQueryEnd() - s.AbsQueryBeg()
	}
	return total
}

// defaultRootFlip reports whether a clump's root query should start
// flipped: an aesthetic choice that keeps the dominant strand positive
// when both the first and last sub-alignment run reverse-strand
// (spec §4.7).
func defaultRootFlip(q *model.Query) bool {
	if len(q.Subs) == 0 {
		return false
	}
	first, last := q.Subs[0], q.Subs[len(q.Subs)-1]
	return first.RefStrand() < 0 && last.RefStrand() < 0
}

// groupNamePattern matches the "group123-" / "merge456-" / "merged789-"
// query-name convention used to derive a stable clump ordering
// (spec §4.7).
var groupNamePattern = regexp.MustCompile(`^(group|merged?)(\d+)-`)

// QuerySortKey identifies a query's sort position within a clump, used
// by Order when no group-name convention applies.
type QuerySortKey struct {
	RefName        string
	RefBeg, RefEnd int
}

// Order sorts clumps for emission (spec §4.7): if every query name in
// every clump matches the group-name convention, order by the minimum
// embedded group number; otherwise order by (−size, minQuerySortKey),
// where minQuerySortKey is the lexicographically smallest
// (refName, refBeg, refEnd) over each clump's queries, obtained via
// queryName and querySortKey.
func Order(clumps []Clump, queryName func(id int) string, querySortKey func(id int) QuerySortKey) {
	if allGroupNamed(clumps, queryName) {
		sort.SliceStable(clumps, func(i, j int) bool {
			return minGroupNumber(clumps[i], queryName) < minGroupNumber(clumps[j], queryName)
		})
		return
	}
	sort.SliceStable(clumps, func(i, j int) bool {
		if clumps[i].Size() != clumps[j].Size() {
			return clumps[i].Size() > clumps[j].Size()
		}
		return lessKey(minQuerySortKey(clumps[i], querySortKey), minQuerySortKey(clumps[j], querySortKey))
	})
}

func allGroupNamed(clumps []Clump, queryName func(id int) string) bool {
	for _, c := range clumps {
		for _, q := range c.Queries {
			if !groupNamePattern.MatchString(queryName(q)) {
				return false
			}
		}
	}
	return true
}

func minGroupNumber(c Clump, queryName func(id int) string) int {
	best := -1
	for _, q := range c.Queries {
		m := groupNamePattern.FindStringSubmatch(queryName(q))
		if m == nil {
			continue
		}
		n := atoiOrMax(m[2])
		if best == -1 || n < best {
			best = n
		}
	}
	return best
}

func atoiOrMax(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func minQuerySortKey(c Clump, querySortKey func(id int) QuerySortKey) QuerySortKey {
	best := querySortKey(c.Queries[0])
	for _, q := range c.Queries[1:] {
		k := querySortKey(q)
		if lessKey(k, best) {
			best = k
		}
	}
	return best
}

func lessKey(a, b QuerySortKey) bool {
	if a.RefName != b.RefName {
		return a.RefName < b.RefName
	}
	if a.RefBeg != b.RefBeg {
		return a.RefBeg < b.RefBeg
	}
	return a.RefEnd < b.RefEnd
}

// CoversAllCaseFiles reports whether the clump's queries include at
// least one from every case file index in caseFiles (spec §4.7's clump
// retention rule).
func CoversAllCaseFiles(c Clump, fileOf func(id int) int, caseFiles []int) bool {
	present := make(map[int]bool)
	for _, q := range c.Queries {
		present[fileOf(q)] = true
	}
	for _, f := range caseFiles {
		if !present[f] {
			return false
		}
	}
	return true
}
