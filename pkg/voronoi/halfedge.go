package voronoi

// arena owns every object of one diagram computation. Objects refer to each other
// by index, so independent computations share no mutable state.
type arena struct {
	sites    siteList
	edges    []edge
	vertices []Point

	// scratch of the sweep, dropped when it finishes
	halfedges []halfedge
}

type halfedgeID int

const nilHalfedge halfedgeID = -1

// halfedge is a beach line arc boundary and, while it has a vertex, a circle event.
type halfedge struct {
	leftNeighbor  halfedgeID
	rightNeighbor halfedgeID
	nextInQueue   halfedgeID

	edge edgeID
	side side

	// кандидат в вершину Вороного (событие круга)
	vertex    Point
	hasVertex bool
	// y вершины в преобразованном пространстве V*
	ystar float64
}

func (s *arena) newHalfedge(e edgeID, lr side) halfedgeID {
	id := halfedgeID(len(s.halfedges))
	s.halfedges = append(s.halfedges, halfedge{
		leftNeighbor:  nilHalfedge,
		rightNeighbor: nilHalfedge,
		nextInQueue:   nilHalfedge,
		edge:          e,
		side:          lr,
	})
	return id
}

func (s *arena) newDummyHalfedge() halfedgeID {
	return s.newHalfedge(noEdge, sideLeft)
}

// he returns the halfedge by id. The pointer is only valid until the next allocation.
func (s *arena) he(id halfedgeID) *halfedge {
	return &s.halfedges[id]
}

func (s *arena) edge(id edgeID) *edge {
	return &s.edges[id]
}

func (s *arena) coord(id siteID) Point {
	return s.sites.site(id).coord
}

// isLeftOf reports whether p lies to the left of the halfedge's bisector.
func (s *arena) isLeftOf(id halfedgeID, p Point) bool {
	h := s.he(id)
	e := s.edge(h.edge)
	topSite := s.coord(e.sites[sideRight])
	rightOfSite := p.X > topSite.X

	if rightOfSite && h.side == sideLeft {
		return true
	}
	if !rightOfSite && h.side == sideRight {
		return false
	}

	var above bool
	if e.a == 1 {
		dyp := p.Y - topSite.Y
		dxp := p.X - topSite.X
		fast := false
		if (!rightOfSite && e.b < 0) || (rightOfSite && e.b >= 0) {
			above = dyp >= e.b*dxp
			fast = above
		} else {
			above = p.X+p.Y*e.b > e.c
			if e.b < 0 {
				above = !above
			}
			if !above {
				fast = true
			}
		}
		if !fast {
			dxs := topSite.X - s.coord(e.sites[sideLeft]).X
			above = e.b*(dxp*dxp-dyp*dyp) < dxs*dyp*(1+2*dxp/dxs+e.b*e.b)
			if e.b < 0 {
				above = !above
			}
		}
	} else { // e.b == 1
		yl := e.c - e.a*p.X
		t1 := p.Y - yl
		t2 := p.X - topSite.X
		t3 := yl - topSite.Y
		above = t1*t1 > t2*t2+t3*t3
	}

	if h.side == sideLeft {
		return above
	}
	return !above
}

// intersect returns the crossing of the two halfedges' bisectors, if it can be a Voronoi vertex.
func (s *arena) intersect(id0, id1 halfedgeID) (Point, bool) {
	h0, h1 := s.he(id0), s.he(id1)
	if h0.edge < 0 || h1.edge < 0 {
		return Point{}, false
	}
	e0, e1 := s.edge(h0.edge), s.edge(h1.edge)
	if e0.sites[sideRight] == e1.sites[sideRight] {
		return Point{}, false
	}

	determinant := e0.a*e1.b - e0.b*e1.a
	if -1e-10 < determinant && determinant < 1e-10 {
		// ребра параллельны
		return Point{}, false
	}

	x := (e0.c*e1.b - e1.c*e0.b) / determinant
	y := (e1.c*e0.a - e0.c*e1.a) / determinant

	h, e := h0, e0
	if compareByYThenX(s.coord(e0.sites[sideRight]), s.coord(e1.sites[sideRight])) >= 0 {
		h, e = h1, e1
	}
	rightOfSite := x >= s.coord(e.sites[sideRight]).X
	if (rightOfSite && h.side == sideLeft) || (!rightOfSite && h.side == sideRight) {
		return Point{}, false
	}

	v := Point{x, y}
	if !v.finite() {
		return Point{}, false
	}
	return v, true
}
