package voronoi

// edgeList is the beach line: halfedges ordered left to right between two dummy ends,
// with a hash by x for locating the arc above a new site.
type edgeList struct {
	arena *arena

	xmin     float64
	deltax   float64
	hashsize int
	hash     []halfedgeID

	leftEnd  halfedgeID
	rightEnd halfedgeID
}

func newEdgeList(a *arena, xmin, deltax float64, sqrtNSites int) *edgeList {
	l := &edgeList{
		arena:    a,
		xmin:     xmin,
		deltax:   deltax,
		hashsize: 2 * sqrtNSites,
	}
	l.leftEnd = a.newDummyHalfedge()
	l.rightEnd = a.newDummyHalfedge()
	a.he(l.leftEnd).rightNeighbor = l.rightEnd
	a.he(l.rightEnd).leftNeighbor = l.leftEnd

	l.hash = make([]halfedgeID, l.hashsize)
	for i := range l.hash {
		l.hash[i] = nilHalfedge
	}
	l.hash[0] = l.leftEnd
	l.hash[l.hashsize-1] = l.rightEnd
	return l
}

// insert puts h to the right of lb.
func (l *edgeList) insert(lb, h halfedgeID) {
	a := l.arena
	right := a.he(lb).rightNeighbor
	nh := a.he(h)
	nh.leftNeighbor = lb
	nh.rightNeighbor = right
	a.he(right).leftNeighbor = h
	a.he(lb).rightNeighbor = h
}

// remove unlinks h from the list. The halfedge itself stays alive: the hash may still
// point at it, so it is only marked deleted.
func (l *edgeList) remove(h halfedgeID) {
	a := l.arena
	he := a.he(h)
	a.he(he.leftNeighbor).rightNeighbor = he.rightNeighbor
	a.he(he.rightNeighbor).leftNeighbor = he.leftNeighbor
	he.edge = deletedEdge
	he.leftNeighbor = nilHalfedge
	he.rightNeighbor = nilHalfedge
}

func (l *edgeList) bucket(p Point) int {
	if l.deltax <= 0 {
		return 0
	}
	b := int((p.X - l.xmin) / l.deltax * float64(l.hashsize))
	if b < 0 {
		b = 0
	}
	if b >= l.hashsize {
		b = l.hashsize - 1
	}
	return b
}

// leftNeighbor finds the rightmost halfedge that is still left of p.
func (l *edgeList) leftNeighbor(p Point) halfedgeID {
	a := l.arena

	// хеш приближает нас к нужному полуребру
	bucket := l.bucket(p)
	h := l.getHash(bucket)
	if h == nilHalfedge {
		for i := 1; ; i++ {
			if bucket-i < 0 && bucket+i >= l.hashsize {
				panic("voronoi: edgeList has no valid hash bucket")
			}
			if h = l.getHash(bucket - i); h != nilHalfedge {
				break
			}
			if h = l.getHash(bucket + i); h != nilHalfedge {
				break
			}
		}
	}

	// дальше линейный поиск по списку
	if h == l.leftEnd || (h != l.rightEnd && a.isLeftOf(h, p)) {
		for {
			h = a.he(h).rightNeighbor
			if h == l.rightEnd || !a.isLeftOf(h, p) {
				break
			}
		}
		h = a.he(h).leftNeighbor
	} else {
		for {
			h = a.he(h).leftNeighbor
			if h == l.leftEnd || a.isLeftOf(h, p) {
				break
			}
		}
	}

	if bucket > 0 && bucket < l.hashsize-1 {
		l.hash[bucket] = h
	}
	return h
}

// getHash returns the hash entry, pruning halfedges that were removed from the list.
func (l *edgeList) getHash(b int) halfedgeID {
	if b < 0 || b >= l.hashsize {
		return nilHalfedge
	}
	h := l.hash[b]
	if h != nilHalfedge && l.arena.he(h).edge == deletedEdge {
		l.hash[b] = nilHalfedge
		return nilHalfedge
	}
	return h
}
