package voronoi

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/0x0FACED/go-fortune/pkg/logger"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// ring rotates a polygon so it starts at its smallest point by (x, y).
func ring(p []Point) []Point {
	if len(p) == 0 {
		return p
	}
	start := 0
	for i := range p {
		dx := p[i].X - p[start].X
		if dx < -1e-9 || (math.Abs(dx) <= 1e-9 && p[i].Y < p[start].Y) {
			start = i
		}
	}
	out := make([]Point, 0, len(p))
	out = append(out, p[start:]...)
	return append(out, p[:start]...)
}

func sortPoints(p []Point) []Point {
	out := append([]Point(nil), p...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func mustDiagram(t *testing.T, points []Point, bounds BoundingBox, opts ...Option) *Diagram {
	t.Helper()
	d, err := CreateDiagram(points, bounds, opts...)
	if err != nil {
		t.Fatalf("CreateDiagram: %v", err)
	}
	return d
}

func TestThreeSites(t *testing.T) {
	a, b, c := Point{4, 5}, Point{6, 5}, Point{5, 8}
	d := mustDiagram(t, []Point{a, b, c}, NewBoundingBox(0, 10, 0, 10), WithTriangles())

	if diff := cmp.Diff([]Point{{5, 19.0 / 3}}, d.Vertices(), approx); diff != "" {
		t.Errorf("Vertices mismatch (-want +got):\n%s", diff)
	}
	if n := len(d.VoronoiEdges()); n != 3 {
		t.Errorf("got %d Voronoi edges, want 3", n)
	}
	if n := len(d.DelaunayEdges()); n != 3 {
		t.Errorf("got %d Delaunay edges, want 3", n)
	}

	regions := map[Point][]Point{
		a: {{0, 0}, {5, 0}, {5, 19.0 / 3}, {0, 8}},
		b: {{5, 0}, {10, 0}, {10, 8}, {5, 19.0 / 3}},
		c: {{0, 8}, {5, 19.0 / 3}, {10, 8}, {10, 10}, {0, 10}},
	}
	for site, want := range regions {
		if diff := cmp.Diff(want, ring(d.Region(site)), approx); diff != "" {
			t.Errorf("Region(%v) mismatch (-want +got):\n%s", site, diff)
		}
	}

	if diff := cmp.Diff([]Point{c, a, b}, d.Hull()); diff != "" {
		t.Errorf("Hull mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sortPoints([]Point{b, c}), sortPoints(d.NeighborSites(a))); diff != "" {
		t.Errorf("NeighborSites mismatch (-want +got):\n%s", diff)
	}

	tri := d.Triangles()
	if len(tri) != 1 {
		t.Fatalf("got %d triangles, want 1", len(tri))
	}
	if diff := cmp.Diff(sortPoints([]Point{a, b, c}), sortPoints(tri[0][:])); diff != "" {
		t.Errorf("triangle mismatch (-want +got):\n%s", diff)
	}

	for _, circle := range d.Circles() {
		if circle.Radius != 0 {
			t.Errorf("hull site %v has radius %v", circle.Center, circle.Radius)
		}
	}
	if got := d.NearestSitePoint(4.9, 7); got != c {
		t.Errorf("NearestSitePoint(4.9, 7) = %v, want %v", got, c)
	}
	if got := d.Region(Point{1, 1}); got != nil {
		t.Errorf("Region of an unknown point = %v", got)
	}
}

func TestSquare(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	d := mustDiagram(t, points, NewBoundingBox(-1, 3, -1, 3))

	// sweep дает две совпадающие вершины, наружу отдается одна
	if n := len(d.vertices); n != 2 {
		t.Errorf("sweep finalized %d vertices, want 2", n)
	}
	if diff := cmp.Diff([]Point{{0.5, 0.5}}, d.Vertices(), approx); diff != "" {
		t.Errorf("Vertices mismatch (-want +got):\n%s", diff)
	}
	if n := len(d.DelaunayEdges()); n != 5 {
		t.Errorf("got %d Delaunay edges, want 5", n)
	}
	if n := len(d.VoronoiEdges()); n != 4 {
		t.Errorf("got %d Voronoi edges, want 4", n)
	}

	want := map[Point][]Point{
		{0, 0}: {{-1, -1}, {0.5, -1}, {0.5, 0.5}, {-1, 0.5}},
		{1, 0}: {{0.5, -1}, {3, -1}, {3, 0.5}, {0.5, 0.5}},
		{0, 1}: {{-1, 0.5}, {0.5, 0.5}, {0.5, 3}, {-1, 3}},
		{1, 1}: {{0.5, 0.5}, {3, 0.5}, {3, 3}, {0.5, 3}},
	}
	for site, w := range want {
		if diff := cmp.Diff(w, ring(d.Region(site)), approx); diff != "" {
			t.Errorf("Region(%v) mismatch (-want +got):\n%s", site, diff)
		}
	}

	hull := d.Hull()
	if len(hull) != 4 || Polygon(hull).Winding() != CounterClockwise {
		t.Errorf("Hull() = %v, want 4 sites counter-clockwise", hull)
	}
	if n := len(d.HullSegments()); n != 4 {
		t.Errorf("got %d hull segments, want 4", n)
	}
}

func TestCollinear(t *testing.T) {
	points := []Point{{3, 3}, {1, 1}, {2, 2}}
	d := mustDiagram(t, points, NewBoundingBox(0, 5, 0, 5))

	if n := len(d.Vertices()); n != 0 {
		t.Errorf("got %d vertices, want 0", n)
	}
	if n := len(d.VoronoiEdges()); n != 2 {
		t.Errorf("got %d Voronoi edges, want 2", n)
	}

	want := map[Point][]Point{
		{1, 1}: {{0, 0}, {3, 0}, {0, 3}},
		{2, 2}: {{0, 3}, {3, 0}, {5, 0}, {0, 5}},
		{3, 3}: {{0, 5}, {5, 0}, {5, 5}},
	}
	for site, w := range want {
		if diff := cmp.Diff(w, ring(d.Region(site)), approx); diff != "" {
			t.Errorf("Region(%v) mismatch (-want +got):\n%s", site, diff)
		}
	}

	hull := d.Hull()
	if diff := cmp.Diff(sortPoints(points), sortPoints(hull)); diff != "" {
		t.Errorf("Hull mismatch (-want +got):\n%s", diff)
	}
	if hull[1] != (Point{2, 2}) {
		t.Errorf("Hull() = %v, the middle site must be in the middle", hull)
	}
}

func TestOneSite(t *testing.T) {
	p := Point{3, 4}
	bounds := NewBoundingBox(0, 10, 0, 10)
	d := mustDiagram(t, []Point{p}, bounds)

	corners := bounds.Corners()
	if diff := cmp.Diff(corners[:], d.Region(p)); diff != "" {
		t.Errorf("Region mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Point{p}, d.Hull()); diff != "" {
		t.Errorf("Hull mismatch (-want +got):\n%s", diff)
	}
	if got := d.DelaunayEdges(); len(got) != 0 {
		t.Errorf("DelaunayEdges() = %v", got)
	}
	if got := d.SpanningTree(Minimum); len(got) != 0 {
		t.Errorf("SpanningTree() = %v", got)
	}
	if diff := cmp.Diff([]Circle{{Center: p}}, d.Circles()); diff != "" {
		t.Errorf("Circles mismatch (-want +got):\n%s", diff)
	}
}

func TestTwoSites(t *testing.T) {
	a, b := Point{2, 5}, Point{8, 5}
	d := mustDiagram(t, []Point{b, a}, NewBoundingBox(0, 10, 0, 10))

	want := []LineSegment{{Point{5, 10}, Point{5, 0}}}
	if diff := cmp.Diff(want, d.VoronoiEdges(), approx); diff != "" {
		t.Errorf("VoronoiEdges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Point{{0, 0}, {5, 0}, {5, 10}, {0, 10}}, ring(d.Region(a)), approx); diff != "" {
		t.Errorf("Region(%v) mismatch (-want +got):\n%s", a, diff)
	}
	if diff := cmp.Diff([]Point{{5, 0}, {10, 0}, {10, 10}, {5, 10}}, ring(d.Region(b)), approx); diff != "" {
		t.Errorf("Region(%v) mismatch (-want +got):\n%s", b, diff)
	}
	if diff := cmp.Diff([]Point{a, b}, d.Hull()); diff != "" {
		t.Errorf("Hull mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]LineSegment{{a, b}}, d.DelaunayLinesForSite(a)); diff != "" {
		t.Errorf("DelaunayLinesForSite mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, d.VoronoiBoundaryForSite(b), approx); diff != "" {
		t.Errorf("VoronoiBoundaryForSite mismatch (-want +got):\n%s", diff)
	}
}

func TestInteriorSite(t *testing.T) {
	center := Point{5, 4}
	points := []Point{{0, 0}, {10, 0}, {5, 10}, center}
	d := mustDiagram(t, points, NewBoundingBox(-5, 15, -5, 15))

	want := []Point{{-1.5, 7}, {5, -1.125}, {11.5, 7}}
	if diff := cmp.Diff(want, ring(d.Region(center)), approx); diff != "" {
		t.Errorf("Region(%v) mismatch (-want +got):\n%s", center, diff)
	}
	if diff := cmp.Diff(sortPoints(points[:3]), sortPoints(d.NeighborSites(center))); diff != "" {
		t.Errorf("NeighborSites mismatch (-want +got):\n%s", diff)
	}

	wantCircles := []Circle{
		{Center: Point{0, 0}},
		{Center: Point{10, 0}},
		{Center: center, Radius: 3},
		{Center: Point{5, 10}},
	}
	if diff := cmp.Diff(wantCircles, d.Circles(), approx); diff != "" {
		t.Errorf("Circles mismatch (-want +got):\n%s", diff)
	}
	if n := len(d.Hull()); n != 3 {
		t.Errorf("hull has %d sites, want 3", n)
	}
}

func TestSiteAttributes(t *testing.T) {
	points := []Point{{0, 5}, {1, 1}, {7, 3}}
	d := mustDiagram(t, points, NewBoundingBox(0, 10, 0, 10),
		WithColors([]uint32{0xff0000, 0x00ff00, 0x0000ff}),
		WithWeights([]float64{0.5, 1, 2}),
		WithLogger(logger.NewNop()),
	)

	// порядок сайтов - по (y, x)
	if diff := cmp.Diff([]Point{{1, 1}, {7, 3}, {0, 5}}, d.SiteCoords()); diff != "" {
		t.Errorf("SiteCoords mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{0x00ff00, 0x0000ff, 0xff0000}, d.SiteColors()); diff != "" {
		t.Errorf("SiteColors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 0.5}, d.SiteWeights()); diff != "" {
		t.Errorf("SiteWeights mismatch (-want +got):\n%s", diff)
	}
	if len(d.Triangles()) != 0 {
		t.Error("triangles recorded without WithTriangles")
	}
	if d.Bounds() != NewBoundingBox(0, 10, 0, 10) {
		t.Errorf("Bounds() = %v", d.Bounds())
	}
}

func TestCreateDiagramErrors(t *testing.T) {
	bounds := NewBoundingBox(0, 10, 0, 10)
	three := []Point{{1, 1}, {5, 5}, {3, 8}}
	tests := []struct {
		name   string
		points []Point
		bounds BoundingBox
		opts   []Option
		want   error
	}{
		{"no sites", nil, bounds, nil, ErrNoSites},
		{"nan", []Point{{1, 1}, {math.NaN(), 2}}, bounds, nil, ErrInvalidCoordinate},
		{"infinity", []Point{{math.Inf(1), 2}}, bounds, nil, ErrInvalidCoordinate},
		{"duplicate", []Point{{1, 1}, {2, 2}, {1, 1}}, bounds, nil, ErrDuplicateSite},
		{"empty bounds", three, NewBoundingBox(0, 0, 0, 10), nil, ErrInvalidBounds},
		{"colors", three, bounds, []Option{WithColors([]uint32{1})}, ErrOptionLength},
		{"weights", three, bounds, []Option{WithWeights([]float64{1, 2, 3, 4})}, ErrOptionLength},
		{"event limit option", three, bounds, []Option{WithEventLimit(0)}, ErrInvalidOption},
		{"nil logger", three, bounds, []Option{WithLogger(nil)}, ErrInvalidOption},
		{"event limit", three, bounds, []Option{WithEventLimit(1)}, ErrEventLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := CreateDiagram(tt.points, tt.bounds, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CreateDiagram() error = %v, want %v", err, tt.want)
			}
			if d != nil {
				t.Error("diagram returned together with an error")
			}
		})
	}
}

func randomPoints(seed int64, n int, scale float64) []Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{rng.Float64() * scale, rng.Float64() * scale}
	}
	return points
}

func TestRandomDiagramProperties(t *testing.T) {
	for _, n := range []int{3, 10, 50, 200} {
		points := randomPoints(int64(n), n, 100)
		bounds := NewBoundingBox(20, 80, 25, 70)
		d := mustDiagram(t, points, bounds, WithTriangles())

		h := len(d.Hull())
		if got, want := len(d.DelaunayEdges()), 3*n-3-h; got != want {
			t.Errorf("n=%d: %d Delaunay edges, want %d", n, got, want)
		}
		if got, want := len(d.Vertices()), 2*n-2-h; got != want {
			t.Errorf("n=%d: %d vertices, want %d", n, got, want)
		}
		if got, want := len(d.Triangles()), len(d.Vertices()); got != want {
			t.Errorf("n=%d: %d triangles for %d vertices", n, got, want)
		}
		if Polygon(d.Hull()).Winding() != CounterClockwise {
			t.Errorf("n=%d: hull is not counter-clockwise", n)
		}

		hullSites := make(map[Point]bool)
		for i := range d.edges {
			if e := &d.edges[i]; e.isPartOfConvexHull() {
				hullSites[d.coord(e.sites[sideLeft])] = true
				hullSites[d.coord(e.sites[sideRight])] = true
			}
		}
		if diff := cmp.Diff(sortPoints(keys(hullSites)), sortPoints(d.Hull())); diff != "" {
			t.Errorf("n=%d: Hull() is not the set of hull edge sites (-want +got):\n%s", n, diff)
		}

		// вершина равноудалена от двух сайтов ребра, и ближе никого нет
		for i := range d.edges {
			e := &d.edges[i]
			for _, v := range e.vertices {
				if v == noVertex {
					continue
				}
				p := d.vertices[v]
				d0 := p.Distance(d.coord(e.sites[sideLeft]))
				d1 := p.Distance(d.coord(e.sites[sideRight]))
				nearest := p.Distance(d.NearestSitePoint(p.X, p.Y))
				if math.Abs(d0-d1) > 1e-6 || math.Abs(d0-nearest) > 1e-6 {
					t.Errorf("n=%d: vertex %v is not a circle center: %v %v %v", n, p, d0, d1, nearest)
				}
			}
		}

		var total float64
		for i, region := range d.Regions() {
			if len(region) == 0 {
				continue
			}
			site := d.sites.sites[i].coord
			poly := Polygon(region)
			if poly.Winding() != CounterClockwise {
				t.Errorf("n=%d: region of %v is %v", n, site, poly.Winding())
			}
			for _, q := range region {
				if q.X < bounds.MinX()-1e-9 || q.X > bounds.MaxX()+1e-9 || q.Y < bounds.MinY()-1e-9 || q.Y > bounds.MaxY()+1e-9 {
					t.Errorf("n=%d: region of %v leaves the bounds at %v", n, site, q)
				}
			}
			if bounds.Contains(site) && !convexContains(region, site) {
				t.Errorf("n=%d: region %v does not contain its site %v", n, region, site)
			}
			if selfIntersects(region) {
				t.Errorf("n=%d: region of %v intersects itself: %v", n, site, region)
			}
			total += poly.Area()
		}
		if want := bounds.Width() * bounds.Height(); math.Abs(total-want) > 1e-6 {
			t.Errorf("n=%d: regions cover %v, bounds area is %v", n, total, want)
		}
	}
}

func keys(m map[Point]bool) []Point {
	out := make([]Point, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}

// selfIntersects reports whether two non-adjacent sides of the ring cross.
func selfIntersects(poly []Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c, e := poly[j], poly[(j+1)%n]
			d1, d2 := cross(a, b, c), cross(a, b, e)
			d3, d4 := cross(c, e, a), cross(c, e, b)
			if d1*d2 < 0 && d3*d4 < 0 {
				return true
			}
		}
	}
	return false
}

// nearDuplicates counts consecutive ring points closer than tol.
func nearDuplicates(poly []Point, tol float64) int {
	count := 0
	for i := range poly {
		if poly[i].Distance(poly[(i+1)%len(poly)]) < tol {
			count++
		}
	}
	return count
}

func convexContains(poly []Point, p Point) bool {
	for i := range poly {
		if cross(poly[i], poly[(i+1)%len(poly)], p) < -1e-9 {
			return false
		}
	}
	return true
}

func TestGrid(t *testing.T) {
	var points []Point
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			points = append(points, Point{float64(i), float64(j)})
		}
	}
	bounds := NewBoundingBox(-1, 10, -1, 10)
	d := mustDiagram(t, points, bounds)

	if n := len(d.Hull()); n != 36 {
		t.Errorf("hull has %d sites, want 36", n)
	}
	var total float64
	for _, region := range d.Regions() {
		total += Polygon(region).Area()
	}
	if math.Abs(total-121) > 1e-6 {
		t.Errorf("regions cover %v, want 121", total)
	}
}

func TestRegionsFarFromOrigin(t *testing.T) {
	for _, offset := range []float64{0, 1e6, 1e8} {
		points := randomPoints(7, 300, 1000)
		for i := range points {
			points[i].X += offset
			points[i].Y += offset
		}
		bounds := NewBoundingBox(offset, offset+1000, offset, offset+1000)
		d := mustDiagram(t, points, bounds)

		var total float64
		for i, region := range d.Regions() {
			site := d.sites.sites[i].coord
			if k := nearDuplicates(region, 1e-6); k != 0 {
				t.Errorf("offset=%g: region of %v has %d repeated points", offset, site, k)
			}
			if !convexContains(region, site) {
				t.Errorf("offset=%g: region of %v does not contain its site", offset, site)
			}
			total += Polygon(region).Area()
		}
		if math.Abs(total-1e6) > 1e-3 {
			t.Errorf("offset=%g: regions cover %v, want 1e6", offset, total)
		}
	}
}

func TestRegionOnBoundsSide(t *testing.T) {
	var points []Point
	for i := 0; i < 30; i++ {
		for j := 0; j < 30; j++ {
			points = append(points, Point{float64(i), float64(j)})
		}
	}
	// стороны bbox проходят ровно по границам ячеек x=10 и y=10
	bounds := NewBoundingBox(10.5, 40, 10.5, 40)
	d := mustDiagram(t, points, bounds)

	var total float64
	nonEmpty := 0
	for i, region := range d.Regions() {
		site := d.sites.sites[i].coord
		if site.X <= 10 || site.Y <= 10 {
			if region != nil {
				t.Errorf("region of %v outside the bounds = %v, want none", site, region)
			}
			continue
		}
		if w := Polygon(region).Winding(); w != CounterClockwise {
			t.Errorf("region of %v is %v: %v", site, w, region)
		}
		nonEmpty++
		total += Polygon(region).Area()
	}
	if nonEmpty != 19*19 {
		t.Errorf("got %d regions inside the bounds, want %d", nonEmpty, 19*19)
	}
	if want := 29.5 * 29.5; math.Abs(total-want) > 1e-6 {
		t.Errorf("regions cover %v, want %v", total, want)
	}
}

func TestConcurrentQueries(t *testing.T) {
	d := mustDiagram(t, randomPoints(1, 100, 100), NewBoundingBox(0, 100, 0, 100))
	sites := d.SiteCoords()

	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		g := g
		go func() {
			defer func() { done <- struct{}{} }()
			for i := g; i < len(sites); i += 4 {
				d.Region(sites[i])
				d.NeighborSites(sites[i])
				d.VoronoiBoundaryForSite(sites[i])
			}
		}()
	}
	for loop := 0; loop < 4; loop++ {
		<-done
	}

	var total float64
	for _, region := range d.Regions() {
		total += Polygon(region).Area()
	}
	if math.Abs(total-10000) > 1e-6 {
		t.Errorf("regions cover %v, want 10000", total)
	}
}

func BenchmarkCreateDiagram(b *testing.B) {
	points := randomPoints(42, 1000, 1000)
	bounds := NewBoundingBox(0, 1000, 0, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d, err := CreateDiagram(points, bounds)
		if err != nil {
			b.Fatal(err)
		}
		d.Regions()
	}
}
