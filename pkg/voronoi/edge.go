package voronoi

import "math"

type side uint8

const (
	sideLeft side = iota
	sideRight
)

func (s side) other() side {
	if s == sideLeft {
		return sideRight
	}
	return sideLeft
}

func (s side) String() string {
	if s == sideLeft {
		return "left"
	}
	return "right"
}

type edgeID int

const (
	noEdge edgeID = -1
	// deletedEdge marks a halfedge that was unlinked from the beach line.
	deletedEdge edgeID = -2
)

// vertexID is the display index of a finalized Voronoi vertex.
type vertexID int

// noVertex: the edge extends to infinity on that side.
const noVertex vertexID = -1

// edge is the bisector a*x + b*y = c of two sites.
// The segment connecting the sites is part of the Delaunay triangulation,
// the segment connecting the vertices is part of the Voronoi diagram.
type edge struct {
	a, b, c float64

	sites    [2]siteID
	vertices [2]vertexID

	// концы видимой части ребра после отсечения по bbox
	clipped [2]Point
	visible bool
}

// createBisectingEdge is the only way to make an edge. It registers the edge on both sites.
func (s *arena) createBisectingEdge(site0, site1 siteID) edgeID {
	p0 := s.sites.site(site0).coord
	p1 := s.sites.site(site1).coord

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	c := p0.X*dx + p0.Y*dy + (dx*dx+dy*dy)*0.5

	var a, b float64
	if math.Abs(dx) > math.Abs(dy) {
		a = 1
		b = dy / dx
		c /= dx
	} else {
		b = 1
		a = dx / dy
		c /= dy
	}

	id := edgeID(len(s.edges))
	s.edges = append(s.edges, edge{
		a:        a,
		b:        b,
		c:        c,
		sites:    [2]siteID{site0, site1},
		vertices: [2]vertexID{noVertex, noVertex},
	})
	s.sites.site(site0).edges = append(s.sites.site(site0).edges, id)
	s.sites.site(site1).edges = append(s.sites.site(site1).edges, id)
	return id
}

func (e *edge) site(s side) siteID {
	return e.sites[s]
}

func (e *edge) vertex(s side) vertexID {
	return e.vertices[s]
}

func (e *edge) setVertex(s side, v vertexID) {
	e.vertices[s] = v
}

// isPartOfConvexHull is true when at least one end of the edge was never terminated.
func (e *edge) isPartOfConvexHull() bool {
	return e.vertices[sideLeft] == noVertex || e.vertices[sideRight] == noVertex
}

// clipVertices sets clipped to the two ends of the portion of the edge visible within bounds.
// If no part of the edge falls within bounds, the edge stays invisible.
func (e *edge) clipVertices(bounds BoundingBox, vertices []Point) {
	xmin, ymin := bounds.MinX(), bounds.MinY()
	xmax, ymax := bounds.MaxX(), bounds.MaxY()

	e.visible = false

	// для почти вертикальных биссектрис с b >= 0 параметр растет от правой вершины к левой
	v0, v1 := e.vertices[sideLeft], e.vertices[sideRight]
	first := sideLeft
	if e.a == 1 && e.b >= 0 {
		v0, v1 = v1, v0
		first = sideRight
	}

	var x0, y0, x1, y1 float64
	a, b, c := e.a, e.b, e.c

	if a == 1 {
		y0 = ymin
		if v0 != noVertex && vertices[v0].Y > ymin {
			y0 = vertices[v0].Y
		}
		if y0 > ymax {
			return
		}
		x0 = c - b*y0

		y1 = ymax
		if v1 != noVertex && vertices[v1].Y < ymax {
			y1 = vertices[v1].Y
		}
		if y1 < ymin {
			return
		}
		x1 = c - b*y1

		if (x0 > xmax && x1 > xmax) || (x0 < xmin && x1 < xmin) {
			return
		}

		if x0 > xmax {
			x0 = xmax
			y0 = (c - x0) / b
		} else if x0 < xmin {
			x0 = xmin
			y0 = (c - x0) / b
		}

		if x1 > xmax {
			x1 = xmax
			y1 = (c - x1) / b
		} else if x1 < xmin {
			x1 = xmin
			y1 = (c - x1) / b
		}
	} else {
		x0 = xmin
		if v0 != noVertex && vertices[v0].X > xmin {
			x0 = vertices[v0].X
		}
		if x0 > xmax {
			return
		}
		y0 = c - a*x0

		x1 = xmax
		if v1 != noVertex && vertices[v1].X < xmax {
			x1 = vertices[v1].X
		}
		if x1 < xmin {
			return
		}
		y1 = c - a*x1

		if (y0 > ymax && y1 > ymax) || (y0 < ymin && y1 < ymin) {
			return
		}

		if y0 > ymax {
			y0 = ymax
			x0 = (c - y0) / a
		} else if y0 < ymin {
			y0 = ymin
			x0 = (c - y0) / a
		}

		if y1 > ymax {
			y1 = ymax
			x1 = (c - y1) / a
		} else if y1 < ymin {
			y1 = ymin
			x1 = (c - y1) / a
		}
	}

	// конец внутри bbox - ровно вершина, иначе соседние ребра расходятся на ошибку округления
	if v0 != noVertex && bounds.Contains(vertices[v0]) {
		x0, y0 = vertices[v0].X, vertices[v0].Y
	}
	if v1 != noVertex && bounds.Contains(vertices[v1]) {
		x1, y1 = vertices[v1].X, vertices[v1].Y
	}

	// вырожденный отрезок не рисуем
	if equalWithEpsilon(x0, x1) && equalWithEpsilon(y0, y1) {
		return
	}

	e.clipped[first] = Point{x0, y0}
	e.clipped[first.other()] = Point{x1, y1}
	e.visible = true
}

// equalWithEpsilon: 1e-9 near the origin, relative 1e-12 for coordinates beyond 1e3.
func equalWithEpsilon(a, b float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) < 1e-9*math.Max(1, scale*1e-3)
}
