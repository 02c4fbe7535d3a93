package render

import (
	"github.com/0x0FACED/go-fortune/pkg/voronoi"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOptions selects the overlays of the echarts page.
type ChartOptions struct {
	Title    string
	Delaunay bool
	Hull     bool
}

// segmentSeries is one named group of line segments drawn in one color.
type segmentSeries struct {
	name     string
	color    string
	thin     bool
	segments []voronoi.LineSegment
}

func chartSeries(d *voronoi.Diagram, o ChartOptions) []segmentSeries {
	series := []segmentSeries{{name: "Границы", color: "#d3d3d3", segments: d.VoronoiEdges()}}
	if o.Delaunay {
		series = append(series, segmentSeries{name: "Делоне", color: "cornflowerblue", thin: true, segments: d.DelaunayEdges()})
	}
	if o.Hull {
		hull := d.Hull()
		var segments []voronoi.LineSegment
		for i := range hull {
			if len(hull) < 2 {
				break
			}
			segments = append(segments, voronoi.LineSegment{P0: hull[i], P1: hull[(i+1)%len(hull)]})
		}
		series = append(series, segmentSeries{name: "Оболочка", color: "orange", segments: segments})
	}
	return series
}

func prepareScatter(scatter *charts.Scatter, title string) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Ширина",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Высота",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Chart преобразует диаграмму в Echarts для отображения: сайты точками, ребра линиями.
func Chart(d *voronoi.Diagram, o ChartOptions) *charts.Scatter {
	scatter := charts.NewScatter()
	if o.Title == "" {
		o.Title = "Диаграмма Вороного (Форчун)"
	}
	prepareScatter(scatter, o.Title)

	sites := d.SiteCoords()
	points := make([]opts.ScatterData, 0, len(sites))
	for _, p := range sites {
		points = append(points, opts.ScatterData{
			Value: []float64{p.X, p.Y},
		})
	}
	scatter.AddSeries("Станции", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, s := range chartSeries(d, o) {
		// каждый отрезок - отдельная серия с общим именем, легенда их группирует
		line := charts.NewLine()
		style := opts.LineStyle{Width: 2, Color: s.color}
		if s.thin {
			style.Width = 1
		}
		for _, seg := range s.segments {
			line.AddSeries(s.name, []opts.LineData{
				{Value: []float64{seg.P0.X, seg.P0.Y}},
				{Value: []float64{seg.P1.X, seg.P1.Y}},
			}).SetSeriesOptions(
				charts.WithLineStyleOpts(style),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: s.color,
				}),
			)
		}
		scatter.Overlap(line)
	}

	return scatter
}
