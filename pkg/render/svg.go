package render

import (
	"fmt"
	"io"

	"github.com/0x0FACED/go-fortune/pkg/voronoi"
	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"
)

const (
	backgroundStyle = "fill:rgb(31,31,31)"
	edgeStyle       = "stroke:rgb(211,211,211);stroke-width:2"
	delaunayStyle   = "stroke:rgb(100,149,237);stroke-width:1;stroke-dasharray:4,3"
	hullStyle       = "fill:none;stroke:rgb(255,165,0);stroke-width:2"
	siteStyle       = "fill:rgb(144,238,144)"
)

// palette для областей без собственного цвета
var palette = []uint32{0x355c7d, 0x6c5b7b, 0xc06c84, 0xf67280, 0xf8b195, 0x2a9d8f, 0xe9c46a, 0x264653}

// SVGOptions selects what WriteSVG draws next to the Voronoi edges.
type SVGOptions struct {
	Width, Height int

	Regions  bool
	Delaunay bool
	Hull     bool
}

// screen maps diagram coordinates to the canvas, the y axis points up.
type screen struct {
	bounds voronoi.BoundingBox
	sx, sy float64
	height int
}

func newScreen(bounds voronoi.BoundingBox, width, height int) screen {
	return screen{
		bounds: bounds,
		sx:     float64(width) / bounds.Width(),
		sy:     float64(height) / bounds.Height(),
		height: height,
	}
}

func (s screen) point(p voronoi.Point) (int, int) {
	x := (p.X - s.bounds.MinX()) * s.sx
	y := (s.bounds.MaxY() - p.Y) * s.sy
	return int(x + 0.5), int(y + 0.5)
}

// errWriter запоминает первую ошибку записи: svgo их не возвращает
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteSVG draws the diagram as a standalone SVG document.
func WriteSVG(w io.Writer, d *voronoi.Diagram, o SVGOptions) error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("render: canvas %dx%d must be positive", o.Width, o.Height)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	sc := newScreen(d.Bounds(), o.Width, o.Height)

	canvas.Start(o.Width, o.Height)
	canvas.Rect(0, 0, o.Width, o.Height, backgroundStyle)

	if o.Regions {
		colors := d.SiteColors()
		canvas.Group(`id="regions"`)
		for i, region := range d.Regions() {
			if len(region) == 0 {
				continue
			}
			xs, ys := make([]int, len(region)), make([]int, len(region))
			for j, p := range region {
				xs[j], ys[j] = sc.point(p)
			}
			c := colors[i]
			if c == 0 {
				c = palette[i%len(palette)]
			}
			canvas.Polygon(xs, ys, fmt.Sprintf("fill:#%06x;fill-opacity:0.6", c&0xffffff))
		}
		canvas.Gend()
	}

	canvas.Group(`id="edges"`, edgeStyle)
	for _, e := range d.VoronoiEdges() {
		x1, y1 := sc.point(e.P0)
		x2, y2 := sc.point(e.P1)
		canvas.Line(x1, y1, x2, y2)
	}
	canvas.Gend()

	if o.Delaunay {
		canvas.Group(`id="delaunay"`, delaunayStyle)
		for _, e := range d.DelaunayEdges() {
			x1, y1 := sc.point(e.P0)
			x2, y2 := sc.point(e.P1)
			canvas.Line(x1, y1, x2, y2)
		}
		canvas.Gend()
	}

	if o.Hull {
		hull := d.Hull()
		xs, ys := make([]int, len(hull)), make([]int, len(hull))
		for i, p := range hull {
			xs[i], ys[i] = sc.point(p)
		}
		canvas.Polygon(xs, ys, `id="hull"`, hullStyle)
	}

	canvas.Group(`id="sites"`, siteStyle)
	for _, p := range d.SiteCoords() {
		x, y := sc.point(p)
		canvas.Circle(x, y, 3)
	}
	canvas.Gend()
	canvas.End()

	return errors.Wrap(ew.err, "render: write svg")
}
