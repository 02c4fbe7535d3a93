package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/0x0FACED/go-fortune/pkg/voronoi"
)

// Генерируем случайные точки для станций. Координаты целые, повторы отбрасываются.
// seed 0 означает случайный seed.
func generateRandStations(n int, width, height int, seed int64) []voronoi.Point {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if n > width*height {
		n = width * height
	}
	stations := make([]voronoi.Point, 0, n)
	seen := make(map[voronoi.Point]struct{}, n)
	for len(stations) < n {
		p := voronoi.Point{
			X: float64(rng.Intn(width)),
			Y: float64(rng.Intn(height)),
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		stations = append(stations, p)
	}
	return stations
}

// generateFixStations раскладывает станции по сетке, по центрам ячеек.
func generateFixStations(n int, width, height int) []voronoi.Point {
	stations := make([]voronoi.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// условие нужно, ибо строк и столбцов может быть, например, на 20 станций, а мы 16-17 генерим
			if len(stations) == n {
				return stations
			}
			stations = append(stations, voronoi.Point{
				X: xStep/2 + float64(j)*xStep,
				Y: yStep/2 + float64(i)*yStep,
			})
		}
	}

	return stations
}
