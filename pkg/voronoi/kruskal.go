package voronoi

import "sort"

type SpanningType int

const (
	Minimum SpanningType = iota
	Maximum
)

func (t SpanningType) String() string {
	if t == Maximum {
		return "maximum"
	}
	return "minimum"
}

// Kruskal builds a minimum or maximum spanning forest over the segments with union-find.
// The nodes are implied by the segment end points.
func Kruskal(segments []LineSegment, t SpanningType) []LineSegment {
	sorted := make([]LineSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if t == Maximum {
			return sorted[i].Length() > sorted[j].Length()
		}
		return sorted[i].Length() < sorted[j].Length()
	})

	uf := newUnionFind()
	var tree []LineSegment
	for _, s := range sorted {
		if uf.union(uf.node(s.P0), uf.node(s.P1)) {
			tree = append(tree, s)
		}
	}
	return tree
}

type unionFind struct {
	index  map[Point]int
	parent []int
	size   []int
}

func newUnionFind() *unionFind {
	return &unionFind{index: make(map[Point]int)}
}

func (u *unionFind) node(p Point) int {
	if i, ok := u.index[p]; ok {
		return i
	}
	i := len(u.parent)
	u.index[p] = i
	u.parent = append(u.parent, i)
	u.size = append(u.size, 1)
	return i
}

// find with iterative path compression
func (u *unionFind) find(i int) int {
	root := i
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for i != root {
		next := u.parent[i]
		u.parent[i] = root
		i = next
	}
	return root
}

// union merges the sets of i and j, the larger set absorbs the smaller one.
// It returns false when they already are in one set.
func (u *unionFind) union(i, j int) bool {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return false
	}
	if u.size[ri] < u.size[rj] {
		ri, rj = rj, ri
	}
	u.parent[rj] = ri
	u.size[ri] += u.size[rj]
	return true
}
