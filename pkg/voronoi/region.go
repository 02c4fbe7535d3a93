package voronoi

import "math"

// reorderEdges puts the site's edges in traversal order. It only makes sense after the sweep.
func (a *arena) reorderEdges(id siteID) {
	st := a.sites.site(id)
	if st.reordered {
		return
	}
	st.reordered = true

	if a.isStrip(st.edges) {
		// две параллельные биссектрисы (сайты на одной прямой)
		e0, e1 := a.edge(st.edges[0]), a.edge(st.edges[1])
		second := sideRight
		if e0.visible && e1.visible &&
			e0.clipped[sideRight].Distance(e1.clipped[sideLeft]) < e0.clipped[sideRight].Distance(e1.clipped[sideRight]) {
			second = sideLeft
		}
		st.orientations = []side{sideLeft, second}
		return
	}

	r := newEdgeReorderer(a, st.edges, byVertex)
	if len(r.edges) == 0 {
		// цепочка не собралась: исходный набор ребер оставляем, области не будет
		st.orientations = nil
		return
	}
	st.edges = r.edges
	st.orientations = r.orientations
}

// isStrip: exactly two edges, neither of them bounded by any vertex.
func (a *arena) isStrip(edges []edgeID) bool {
	if len(edges) != 2 {
		return false
	}
	for _, e := range edges {
		ed := a.edge(e)
		if ed.vertices[sideLeft] != noVertex || ed.vertices[sideRight] != noVertex {
			return false
		}
	}
	return true
}

// region returns the site's polygon clipped to bounds, counter-clockwise.
func (a *arena) region(id siteID, bounds BoundingBox) []Point {
	st := a.sites.site(id)
	if len(st.edges) == 0 {
		return nil
	}
	if !st.regionDone {
		a.reorderEdges(id)
		if st.orientations != nil {
			st.region = a.clipToBounds(id, bounds)
		}
		// область выродилась в отрезок на стороне bbox
		if len(st.region) < 3 || Polygon(st.region).Area() <= 1e-12*bounds.Width()*bounds.Height() {
			st.region = nil
		}
		if Polygon(st.region).Winding() == Clockwise {
			Polygon(st.region).reverse()
		}
		st.regionDone = true
	}
	return st.region
}

// clipToBounds walks the ordered visible edges and fills gaps along the border of bounds.
func (a *arena) clipToBounds(id siteID, bounds BoundingBox) []Point {
	st := a.sites.site(id)
	n := len(st.edges)
	i := 0
	for i < n && !a.edge(st.edges[i]).visible {
		i++
	}
	if i == n {
		// видимых ребер нет
		return nil
	}

	first := a.edge(st.edges[i])
	orientation := st.orientations[i]
	p0 := first.clipped[orientation]
	p1 := first.clipped[orientation.other()]

	// сайт слева от первого ребра - значит обход против часовой стрелки
	ccw := cross(p0, p1, st.coord) > 0

	points := []Point{p0, p1}
	for j := i + 1; j < n; j++ {
		if !a.edge(st.edges[j]).visible {
			continue
		}
		points = a.connect(points, st.edges[j], st.orientations[j], bounds, ccw, false)
	}
	// замыкаем многоугольник, добавляя углы bbox при необходимости
	points = a.connect(points, st.edges[i], st.orientations[i], bounds, ccw, true)
	return points
}

func (a *arena) connect(points []Point, e edgeID, orientation side, bounds BoundingBox, ccw, closingUp bool) []Point {
	rightPoint := points[len(points)-1]
	newEdge := a.edge(e)
	// точка, которую надо соединить с rightPoint
	newPoint := newEdge.clipped[orientation]

	if !closeEnough(rightPoint, newPoint) {
		// точки не совпадают, значит обе отсечены границей bbox
		points = walkBounds(points, rightPoint, newPoint, bounds, ccw)
		if closingUp {
			return points
		}
		points = append(points, newPoint)
	}

	newRightPoint := newEdge.clipped[orientation.other()]
	if !closeEnough(points[0], newRightPoint) && !closeEnough(points[len(points)-1], newRightPoint) {
		points = append(points, newRightPoint)
	}
	return points
}

// walkBounds appends the corners of bounds met when going along its border from p to q.
func walkBounds(points []Point, p, q Point, bounds BoundingBox, ccw bool) []Point {
	tp, okp := perimeterPosition(p, bounds)
	tq, okq := perimeterPosition(q, bounds)
	if !okp || !okq {
		return points
	}

	w, h := bounds.Width(), bounds.Height()
	perimeter := 2 * (w + h)
	corners := bounds.Corners()
	// позиции углов (MinX,MinY), (MaxX,MinY), (MaxX,MaxY), (MinX,MaxY) на периметре
	positions := [4]float64{0, w, w + h, 2*w + h}

	dist := func(from, to float64) float64 {
		if !ccw {
			from, to = to, from
		}
		d := math.Mod(to-from, perimeter)
		if d < 0 {
			d += perimeter
		}
		return d
	}

	total := dist(tp, tq)
	// углы по ходу обхода, от ближнего к дальнему
	start := 0
	best := math.Inf(1)
	for k := range positions {
		if d := dist(tp, positions[k]); d > 0 && d < best {
			best = d
			start = k
		}
	}
	step := 1
	if !ccw {
		step = 3
	}
	for k, visited := start, 0; visited < 4; k, visited = (k+step)%4, visited+1 {
		d := dist(tp, positions[k])
		if d <= 0 || d >= total {
			break
		}
		points = append(points, corners[k])
	}
	return points
}

// perimeterPosition maps a point on the border of bounds to its counter-clockwise
// distance from (MinX, MinY).
func perimeterPosition(p Point, bounds BoundingBox) (float64, bool) {
	xmin, xmax := bounds.MinX(), bounds.MaxX()
	ymin, ymax := bounds.MinY(), bounds.MaxY()
	w, h := bounds.Width(), bounds.Height()
	switch {
	case p.Y == ymin && p.X < xmax:
		return p.X - xmin, true
	case p.X == xmax && p.Y < ymax:
		return w + p.Y - ymin, true
	case p.Y == ymax && p.X > xmin:
		return w + h + xmax - p.X, true
	case p.X == xmin && p.Y > ymin:
		return 2*w + h + ymax - p.Y, true
	}
	return 0, false
}

// cross is the z component of (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func closeEnough(p, q Point) bool {
	return equalWithEpsilon(p.X, q.X) && equalWithEpsilon(p.Y, q.Y)
}
