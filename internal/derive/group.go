// Copyright ©2024 The Clumps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package derive

import "sort"

// GroupParts partitions parts into connected components of a proximity
// graph (spec §4.9): two parts are joined when any pair of their segments
// lies on the same chromosome within maxLen of each other. Each returned
// group lists its parts in their original index order.
func GroupParts(parts []DerivedPart, maxLen int) [][]DerivedPart {
	n := len(parts)
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if partsNearby(parts[i], parts[j], maxLen) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	visited := make([]bool, n)
	var groups [][]DerivedPart
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		var comp []int
		queue := []int{i}
		visited[i] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(comp)
		group := make([]DerivedPart, len(comp))
		for k, idx := range comp {
			group[k] = parts[idx]
		}
		groups = append(groups, group)
	}
	return groups
}

func partsNearby(a, b DerivedPart, maxLen int) bool {
	for _, sa := range a.Segments {
		for _, sb := range b.Segments {
			if sa.Chrom != sb.Chrom {
				continue
			}
			if within(sa, sb, maxLen) {
				return true
			}
		}
	}
	return false
}

func within(a, b Segment, maxLen int) bool {
	aLo, aHi := minMax(a.Beg, a.End)
	bLo, bHi := minMax(b.Beg, b.End)
	switch {
	case aHi < bLo:
		return bLo-aHi <= maxLen
	case bHi < aLo:
		return aLo-bHi <= maxLen
	default:
		return true // overlapping
	}
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
