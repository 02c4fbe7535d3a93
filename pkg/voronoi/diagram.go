// Package voronoi computes Voronoi diagrams and Delaunay triangulations of planar
// point sets with Fortune's sweep line algorithm.
//
// A Diagram is built once by CreateDiagram and then queried. Regions are clipped to
// the bounding box given at construction; Delaunay edges are not.
package voronoi

import (
	"math"
	"sync"

	"github.com/0x0FACED/go-fortune/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Diagram is the result of one sweep. Queries may be issued from several goroutines.
type Diagram struct {
	// регионы и порядок ребер считаются лениво, под мьютексом
	mu sync.Mutex
	arena

	byCoord   map[Point]siteID
	bounds    BoundingBox
	triangles [][3]siteID
	log       *logger.ZapLogger
}

// CreateDiagram validates the input, runs the sweep and clips the edges to bounds.
func CreateDiagram(points []Point, bounds BoundingBox, opts ...Option) (*Diagram, error) {
	o := options{}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}
	log := o.log

	if len(points) == 0 {
		log.Warn("[f] Нет точек для построения")
		return nil, ErrNoSites
	}
	if !bounds.valid() {
		log.Warn("[f] Некорректный bbox", zap.Float64("width", bounds.Width()), zap.Float64("height", bounds.Height()))
		return nil, errors.Wrapf(ErrInvalidBounds, "got [%g, %g] x [%g, %g]",
			bounds.MinX(), bounds.MaxX(), bounds.MinY(), bounds.MaxY())
	}
	if o.colors != nil && len(o.colors) != len(points) {
		return nil, errors.Wrapf(ErrOptionLength, "%d colors for %d sites", len(o.colors), len(points))
	}
	if o.weights != nil && len(o.weights) != len(points) {
		return nil, errors.Wrapf(ErrOptionLength, "%d weights for %d sites", len(o.weights), len(points))
	}

	d := &Diagram{
		byCoord: make(map[Point]siteID, len(points)),
		bounds:  bounds,
		log:     log,
	}

	seen := make(map[Point]int, len(points))
	for i, p := range points {
		if !p.finite() {
			log.Warn("[f] Координата не является конечным числом", zap.Int("index", i))
			return nil, errors.Wrapf(ErrInvalidCoordinate, "point %d is %v", i, p)
		}
		if j, ok := seen[p]; ok {
			log.Warn("[f] Повторяющаяся точка", zap.Int("index", i), zap.Int("first", j))
			return nil, errors.Wrapf(ErrDuplicateSite, "point %d equals point %d %v", i, j, p)
		}
		seen[p] = i

		s := site{coord: p}
		if o.colors != nil {
			s.color = o.colors[i]
		}
		if o.weights != nil {
			s.weight = o.weights[i]
		}
		d.sites.push(s)
	}
	d.sites.sort()
	for i := range d.sites.sites {
		d.byCoord[d.sites.sites[i].coord] = siteID(i)
	}

	limit := o.eventLimit
	if limit == 0 {
		limit = defaultEventLimit(len(points))
	}
	sw := &sweep{
		arena:         &d.arena,
		withTriangles: o.triangles,
		eventLimit:    limit,
		log:           log,
	}
	if err := sw.run(); err != nil {
		return nil, err
	}
	sw.clipEdges(bounds)
	d.triangles = sw.triangles
	// полуребра после прохода больше не нужны
	d.halfedges = nil

	return d, nil
}

func (d *Diagram) Bounds() BoundingBox {
	return d.bounds
}

func (d *Diagram) lookup(p Point) (siteID, bool) {
	id, ok := d.byCoord[p]
	return id, ok
}

// Region returns the counter-clockwise polygon of the site at p, clipped to the bounds.
// It is empty if p is not a site or its region misses the bounds.
func (d *Diagram) Region(p Point) []Point {
	id, ok := d.lookup(p)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.regionLocked(id)
}

// Regions returns the region of every site in sorted site order.
func (d *Diagram) Regions() [][]Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	regions := make([][]Point, d.sites.len())
	for i := range regions {
		regions[i] = d.regionLocked(siteID(i))
	}
	return regions
}

func (d *Diagram) regionLocked(id siteID) []Point {
	region := d.region(id, d.bounds)
	if len(region) == 0 {
		// без видимых ребер область либо вне bbox, либо накрывает его целиком
		if d.hasVisibleEdge(id) || d.nearest(d.boundsCenter()) != id {
			return nil
		}
		corners := d.bounds.Corners()
		return corners[:]
	}
	out := make([]Point, len(region))
	copy(out, region)
	return out
}

func (d *Diagram) hasVisibleEdge(id siteID) bool {
	for _, e := range d.sites.site(id).edges {
		if d.edge(e).visible {
			return true
		}
	}
	return false
}

func (d *Diagram) boundsCenter() Point {
	c := d.bounds.Center()
	return Point(c)
}

// VoronoiEdges returns the visible part of every edge.
func (d *Diagram) VoronoiEdges() []LineSegment {
	var segments []LineSegment
	for i := range d.edges {
		e := &d.edges[i]
		if !e.visible {
			continue
		}
		segments = append(segments, LineSegment{P0: e.clipped[sideLeft], P1: e.clipped[sideRight]})
	}
	return segments
}

// DelaunayEdges connects the two sites of every edge, visible or not.
func (d *Diagram) DelaunayEdges() []LineSegment {
	segments := make([]LineSegment, 0, len(d.edges))
	for i := range d.edges {
		segments = append(segments, d.delaunayLine(edgeID(i)))
	}
	return segments
}

func (d *Diagram) delaunayLine(id edgeID) LineSegment {
	e := d.edge(id)
	return LineSegment{P0: d.coord(e.sites[sideLeft]), P1: d.coord(e.sites[sideRight])}
}

func (d *Diagram) hullEdges() []edgeID {
	var hull []edgeID
	for i := range d.edges {
		if d.edges[i].isPartOfConvexHull() {
			hull = append(hull, edgeID(i))
		}
	}
	return hull
}

// Hull returns the sites on the convex hull, counter-clockwise.
// Collinear input yields the sites of the line from one end to the other.
func (d *Diagram) Hull() []Point {
	edges := d.hullEdges()
	if len(edges) == 0 {
		return d.SiteCoords()
	}

	r := newEdgeReorderer(&d.arena, edges, bySite)
	if len(r.edges) == 0 {
		d.log.Error("[hull] Ребра оболочки не образуют цепочку", zap.Int("edges", len(edges)))
		return nil
	}

	points := make([]Point, 0, len(r.edges)+1)
	for i, e := range r.edges {
		points = append(points, d.coord(d.edge(e).site(r.orientations[i])))
	}
	last := len(r.edges) - 1
	end := d.edge(r.edges[last]).site(r.orientations[last].other())
	if start := d.edge(r.edges[0]).site(r.orientations[0]); end != start {
		// цепочка открытая: точки на одной прямой
		points = append(points, d.coord(end))
	}

	if Polygon(points).Winding() == Clockwise {
		Polygon(points).reverse()
	}
	return points
}

// HullSegments returns the Delaunay segments of the hull edges.
func (d *Diagram) HullSegments() []LineSegment {
	edges := d.hullEdges()
	segments := make([]LineSegment, 0, len(edges))
	for _, e := range edges {
		segments = append(segments, d.delaunayLine(e))
	}
	return segments
}

// NeighborSites returns the sites sharing an edge with p, in boundary order when it
// can be established.
func (d *Diagram) NeighborSites(p Point) []Point {
	id, ok := d.lookup(p)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reorderEdges(id)
	st := d.sites.site(id)
	neighbors := make([]Point, 0, len(st.edges))
	for _, e := range st.edges {
		neighbors = append(neighbors, d.coord(d.neighbor(e, id)))
	}
	return neighbors
}

func (d *Diagram) neighbor(e edgeID, id siteID) siteID {
	ed := d.edge(e)
	if ed.sites[sideLeft] == id {
		return ed.sites[sideRight]
	}
	return ed.sites[sideLeft]
}

// VoronoiBoundaryForSite returns the visible edges of the site at p.
func (d *Diagram) VoronoiBoundaryForSite(p Point) []LineSegment {
	id, ok := d.lookup(p)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var segments []LineSegment
	for _, e := range d.sites.site(id).edges {
		ed := d.edge(e)
		if ed.visible {
			segments = append(segments, LineSegment{P0: ed.clipped[sideLeft], P1: ed.clipped[sideRight]})
		}
	}
	return segments
}

// DelaunayLinesForSite returns the Delaunay segments incident to the site at p.
func (d *Diagram) DelaunayLinesForSite(p Point) []LineSegment {
	id, ok := d.lookup(p)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	edges := d.sites.site(id).edges
	segments := make([]LineSegment, 0, len(edges))
	for _, e := range edges {
		segments = append(segments, d.delaunayLine(e))
	}
	return segments
}

// SpanningTree is the minimum or maximum spanning tree of the Delaunay edges.
func (d *Diagram) SpanningTree(t SpanningType) []LineSegment {
	return Kruskal(d.DelaunayEdges(), t)
}

// Circles returns, for every site, the circle of radius half the distance to its
// nearest neighbour. Sites touching an unbounded edge get radius 0.
func (d *Diagram) Circles() []Circle {
	d.mu.Lock()
	defer d.mu.Unlock()
	circles := make([]Circle, 0, d.sites.len())
	for i := range d.sites.sites {
		st := &d.sites.sites[i]
		radius := 0.0
		if len(st.edges) > 0 {
			nearest := math.Inf(1)
			for _, e := range st.edges {
				if d.edge(e).isPartOfConvexHull() {
					nearest = 0
					break
				}
				if l := d.delaunayLine(e).Length(); l < nearest {
					nearest = l
				}
			}
			radius = nearest * 0.5
		}
		circles = append(circles, Circle{Center: st.coord, Radius: radius})
	}
	return circles
}

// Triangles returns the Delaunay triangles recorded during the sweep.
// It is empty unless the diagram was built WithTriangles.
func (d *Diagram) Triangles() []Triangle {
	out := make([]Triangle, 0, len(d.triangles))
	for _, t := range d.triangles {
		out = append(out, Triangle{d.coord(t[0]), d.coord(t[1]), d.coord(t[2])})
	}
	return out
}

// Vertices returns the distinct Voronoi vertices in display order. Vertices joined
// by a zero-length edge (four or more cocircular sites) are reported once.
func (d *Diagram) Vertices() []Point {
	rep := make([]vertexID, len(d.vertices))
	for i := range rep {
		rep[i] = vertexID(i)
	}
	for changed := true; changed; {
		changed = false
		for i := range d.edges {
			v0, v1 := d.edges[i].vertices[sideLeft], d.edges[i].vertices[sideRight]
			if v0 == noVertex || v1 == noVertex || !closeEnough(d.vertices[v0], d.vertices[v1]) {
				continue
			}
			if r := min(rep[v0], rep[v1]); rep[v0] != r || rep[v1] != r {
				rep[v0], rep[v1] = r, r
				changed = true
			}
		}
	}

	out := make([]Point, 0, len(d.vertices))
	for i, v := range d.vertices {
		if rep[i] == vertexID(i) {
			out = append(out, v)
		}
	}
	return out
}

// SiteCoords returns the sites in (y, x) order.
func (d *Diagram) SiteCoords() []Point {
	out := make([]Point, 0, d.sites.len())
	for i := range d.sites.sites {
		out = append(out, d.sites.sites[i].coord)
	}
	return out
}

func (d *Diagram) SiteColors() []uint32 {
	out := make([]uint32, 0, d.sites.len())
	for i := range d.sites.sites {
		out = append(out, d.sites.sites[i].color)
	}
	return out
}

func (d *Diagram) SiteWeights() []float64 {
	out := make([]float64, 0, d.sites.len())
	for i := range d.sites.sites {
		out = append(out, d.sites.sites[i].weight)
	}
	return out
}

// NearestSitePoint returns the site closest to (x, y).
func (d *Diagram) NearestSitePoint(x, y float64) Point {
	return d.coord(d.nearest(Point{x, y}))
}

// nearest: прямой перебор, при равенстве побеждает сайт, идущий раньше в порядке обхода.
func (d *Diagram) nearest(p Point) siteID {
	best, bestDist := siteID(0), math.Inf(1)
	for i := range d.sites.sites {
		if dist := d.sites.sites[i].coord.Distance(p); dist < bestDist {
			best, bestDist = siteID(i), dist
		}
	}
	return best
}
