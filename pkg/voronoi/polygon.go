package voronoi

import "math"

type Winding int

const (
	WindingNone Winding = iota
	Clockwise
	CounterClockwise
)

func (w Winding) String() string {
	switch w {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "none"
	}
}

// Polygon is a closed ring of points, the last point connects back to the first.
type Polygon []Point

// Area of the polygon, always non-negative
func (p Polygon) Area() float64 {
	return math.Abs(p.signedDoubleArea() * 0.5)
}

// Winding reports the orientation of the ring (Y axis pointing up).
func (p Polygon) Winding() Winding {
	a := p.signedDoubleArea()
	switch {
	case a < 0:
		return Clockwise
	case a > 0:
		return CounterClockwise
	}
	return WindingNone
}

func (p Polygon) signedDoubleArea() float64 {
	var sum float64
	n := len(p)
	if n == 0 {
		return 0
	}
	// считаем относительно первой точки, чтобы не терять точность на больших координатах
	o := p[0]
	for i := range p {
		next := p[(i+1)%n]
		sum += (p[i].X-o.X)*(next.Y-o.Y) - (next.X-o.X)*(p[i].Y-o.Y)
	}
	return sum
}

func (p Polygon) reverse() {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
