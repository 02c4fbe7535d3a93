package voronoi

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Point is a point on the plane. Equality (and map keys) compare X and Y directly.
type Point r2.Point

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Distance between two points
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// BoundingBox is the axis-aligned viewport the diagram is clipped to.
type BoundingBox struct {
	r2.Rect
}

// Create new Bounding Box
func NewBoundingBox(xmin, xmax, ymin, ymax float64) BoundingBox {
	return BoundingBox{r2.RectFromPoints(r2.Point{X: xmin, Y: ymin}, r2.Point{X: xmax, Y: ymax})}
}

// NewRectangle builds a bounding box from its origin and size.
func NewRectangle(x, y, width, height float64) BoundingBox {
	return NewBoundingBox(x, x+width, y, y+height)
}

func (b BoundingBox) MinX() float64   { return b.X.Lo }
func (b BoundingBox) MaxX() float64   { return b.X.Hi }
func (b BoundingBox) MinY() float64   { return b.Y.Lo }
func (b BoundingBox) MaxY() float64   { return b.Y.Hi }
func (b BoundingBox) Width() float64  { return b.X.Length() }
func (b BoundingBox) Height() float64 { return b.Y.Length() }

// Contains reports whether p lies inside or on the border of the box.
func (b BoundingBox) Contains(p Point) bool {
	return b.ContainsPoint(r2.Point(p))
}

// Corners returns the four corners counter-clockwise, starting at (MinX, MinY).
func (b BoundingBox) Corners() [4]Point {
	var corners [4]Point
	for i, v := range b.Vertices() {
		corners[i] = Point(v)
	}
	return corners
}

func (b BoundingBox) valid() bool {
	return Point{b.MinX(), b.MinY()}.finite() && Point{b.MaxX(), b.MaxY()}.finite() &&
		b.Width() > 0 && b.Height() > 0
}

// LineSegment between two points
type LineSegment struct {
	P0 Point
	P1 Point
}

func (s LineSegment) Length() float64 {
	return s.P0.Distance(s.P1)
}

// Circle centered at a site
type Circle struct {
	Center Point
	Radius float64
}

// Triangle is a Delaunay triple found at a circle event.
type Triangle [3]Point
