package voronoi

import (
	"math"

	"github.com/0x0FACED/go-fortune/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// sweep holds the state of one run of Fortune's algorithm.
type sweep struct {
	*arena

	beach *edgeList
	queue *halfedgeQueue

	bottomMostSite siteID
	triangles      [][3]siteID
	withTriangles  bool

	eventLimit int
	log        *logger.ZapLogger
}

func (s *sweep) leftRegion(h halfedgeID) siteID {
	he := s.he(h)
	if he.edge < 0 {
		return s.bottomMostSite
	}
	return s.edge(he.edge).site(he.side)
}

func (s *sweep) rightRegion(h halfedgeID) siteID {
	he := s.he(h)
	if he.edge < 0 {
		return s.bottomMostSite
	}
	return s.edge(he.edge).site(he.side.other())
}

// schedule makes h a circle event at vertex v, reached when the sweep line is at ystar.
func (s *sweep) schedule(h halfedgeID, v Point, focus siteID) {
	he := s.he(h)
	he.vertex = v
	he.hasVertex = true
	he.ystar = v.Y + s.coord(focus).Distance(v)
	s.queue.insert(h)
}

// Основная функция - алгоритм Форчуна.
// Сайты уже отсортированы по (y, x), результат - ребра и вершины в arena.
func (s *sweep) run() error {
	n := s.sites.len()
	dataBounds := s.sites.bounds()
	sqrtNSites := int(math.Sqrt(float64(n + 4)))

	s.queue = newHalfedgeQueue(s.arena, dataBounds.MinY(), dataBounds.Height(), sqrtNSites)
	s.beach = newEdgeList(s.arena, dataBounds.MinX(), dataBounds.Width(), sqrtNSites)

	s.log.Info("[f] Алгоритм Форчуна запущен", zap.Int("sites", n), zap.Int("event_limit", s.eventLimit))

	var ok bool
	s.bottomMostSite, ok = s.sites.next()
	if !ok {
		return ErrNoSites
	}
	newSite, haveSite := s.sites.next()

	var events int
	for {
		// событие точки или событие круга: берем то, что раньше по (y, x)
		var circle Point
		if !s.queue.empty() {
			circle = s.queue.min()
		}

		if haveSite && (s.queue.empty() || compareByYThenX(s.coord(newSite), circle) < 0) {
			s.siteEvent(newSite)
			newSite, haveSite = s.sites.next()
		} else if !s.queue.empty() {
			s.circleEvent()
		} else {
			break
		}

		events++
		if events > s.eventLimit {
			s.log.Error("[f] Превышен лимит событий", zap.Int("events", events))
			return errors.Wrapf(ErrEventLimit, "%d events for %d sites", events, n)
		}
	}

	s.log.Info("[f] Алгоритм завершен!",
		zap.Int("events", events),
		zap.Int("edges", len(s.edges)),
		zap.Int("vertices", len(s.vertices)))
	return nil
}

func (s *sweep) siteEvent(newSite siteID) {
	p := s.coord(newSite)
	s.log.Debug("[f-site] Событие точки", zap.Stringer("site", p))

	// полуребро слева от нового сайта и справа от него
	lbnd := s.beach.leftNeighbor(p)
	rbnd := s.he(lbnd).rightNeighbor
	// сайт, в области которого оказалась новая точка
	bottomSite := s.rightRegion(lbnd)

	e := s.createBisectingEdge(bottomSite, newSite)
	s.log.Debug("[f-site] Новое ребро",
		zap.Stringer("bottom", s.coord(bottomSite)),
		zap.Stringer("site", p))

	bisector := s.newHalfedge(e, sideLeft)
	s.beach.insert(lbnd, bisector)

	if v, ok := s.intersect(lbnd, bisector); ok {
		s.queue.remove(lbnd)
		s.schedule(lbnd, v, newSite)
	}

	lbnd = bisector
	bisector = s.newHalfedge(e, sideRight)
	s.beach.insert(lbnd, bisector)

	if v, ok := s.intersect(bisector, rbnd); ok {
		s.schedule(bisector, v, newSite)
	}
}

func (s *sweep) circleEvent() {
	lbnd := s.queue.extractMin()
	llbnd := s.he(lbnd).leftNeighbor
	rbnd := s.he(lbnd).rightNeighbor
	rrbnd := s.he(rbnd).rightNeighbor

	// эти три сайта образуют треугольник Делоне
	bottomSite := s.leftRegion(lbnd)
	topSite := s.rightRegion(rbnd)
	if s.withTriangles {
		s.triangles = append(s.triangles, [3]siteID{bottomSite, topSite, s.rightRegion(lbnd)})
	}

	// вершина становится настоящей: получает индекс
	v := vertexID(len(s.vertices))
	s.vertices = append(s.vertices, s.he(lbnd).vertex)
	s.log.Debug("[f-circle] Событие круга", zap.Int("vertex", int(v)), zap.Stringer("at", s.vertices[v]))

	s.edge(s.he(lbnd).edge).setVertex(s.he(lbnd).side, v)
	s.edge(s.he(rbnd).edge).setVertex(s.he(rbnd).side, v)
	s.beach.remove(lbnd)
	s.queue.remove(rbnd)
	s.beach.remove(rbnd)

	lr := sideLeft
	if s.coord(bottomSite).Y > s.coord(topSite).Y {
		bottomSite, topSite = topSite, bottomSite
		lr = sideRight
	}

	e := s.createBisectingEdge(bottomSite, topSite)
	bisector := s.newHalfedge(e, lr)
	s.beach.insert(llbnd, bisector)
	s.edge(e).setVertex(lr.other(), v)

	if w, ok := s.intersect(llbnd, bisector); ok {
		s.queue.remove(llbnd)
		s.schedule(llbnd, w, bottomSite)
	}
	if w, ok := s.intersect(bisector, rrbnd); ok {
		s.schedule(bisector, w, bottomSite)
	}
}

// clipEdges intersects every edge with the plot bounds.
func (s *sweep) clipEdges(bounds BoundingBox) {
	visible := 0
	for i := range s.edges {
		s.edges[i].clipVertices(bounds, s.vertices)
		if s.edges[i].visible {
			visible++
		}
	}
	s.log.Info("[clip] Ребра отсечены по bbox", zap.Int("edges", len(s.edges)), zap.Int("visible", visible))
}
