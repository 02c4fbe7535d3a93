package voronoi

import (
	"math"
	"sort"
)

// siteID is the position of a site in the sorted site list.
type siteID int

type site struct {
	coord  Point
	weight float64
	color  uint32

	// ребра, ограничивающие область сайта (в порядке обнаружения, после reorder - по обходу)
	edges []edgeID
	// какой конец каждого ребра стыкуется с предыдущим ребром
	orientations []side
	reordered    bool

	region     []Point
	regionDone bool
}

// compareByYThenX orders points by y, then x.
func compareByYThenX(p, q Point) int {
	switch {
	case p.Y < q.Y:
		return -1
	case p.Y > q.Y:
		return 1
	case p.X < q.X:
		return -1
	case p.X > q.X:
		return 1
	}
	return 0
}

// siteList keeps sites unsorted until first access, then hands them out in (y, x) order.
type siteList struct {
	sites   []site
	current int
	sorted  bool
}

func (l *siteList) push(s site) {
	l.sorted = false
	l.sites = append(l.sites, s)
}

func (l *siteList) len() int {
	return len(l.sites)
}

// sort orders the sites; a siteID is the position after sorting.
func (l *siteList) sort() {
	if l.sorted {
		return
	}
	sort.SliceStable(l.sites, func(i, j int) bool {
		return compareByYThenX(l.sites[i].coord, l.sites[j].coord) < 0
	})
	l.current = 0
	l.sorted = true
}

func (l *siteList) site(id siteID) *site {
	return &l.sites[id]
}

// next returns the next site of the sweep order; ok is false once the list is exhausted.
func (l *siteList) next() (id siteID, ok bool) {
	if !l.sorted {
		panic("voronoi: siteList.next called before the sites were sorted")
	}
	if l.current >= len(l.sites) {
		return 0, false
	}
	id = siteID(l.current)
	l.current++
	return id, true
}

// bounds returns the box enclosing all sites. The y extent relies on the sorted order.
func (l *siteList) bounds() BoundingBox {
	l.sort()
	if len(l.sites) == 0 {
		return NewBoundingBox(0, 0, 0, 0)
	}
	xmin, xmax := math.Inf(1), math.Inf(-1)
	for i := range l.sites {
		x := l.sites[i].coord.X
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
	}
	ymin := l.sites[0].coord.Y
	ymax := l.sites[len(l.sites)-1].coord.Y
	return NewBoundingBox(xmin, xmax, ymin, ymax)
}
