package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// RadiusSeries extracts one body's distance from the origin across stored
// snapshot rows. Rows too short for the body are skipped.
func RadiusSeries(positions [][]float64, bodyIndex int) []float64 {
	offset := bodyIndex * 3
	series := make([]float64, 0, len(positions))
	for _, row := range positions {
		if len(row) < offset+3 {
			continue
		}
		x, y, z := row[offset], row[offset+1], row[offset+2]
		series = append(series, math.Sqrt(x*x+y*y+z*z))
	}
	return series
}

// CoordinateSeries extracts one coordinate (0=x, 1=y, 2=z) of one body.
func CoordinateSeries(positions [][]float64, bodyIndex, coord int) []float64 {
	offset := bodyIndex*3 + coord
	series := make([]float64, 0, len(positions))
	for _, row := range positions {
		if len(row) <= offset {
			continue
		}
		series = append(series, row[offset])
	}
	return series
}

// RenderSeries draws a terminal chart for a stored series.
func RenderSeries(values []float64, caption string, width, height int) string {
	if len(values) < 2 {
		return "(not enough samples to plot)"
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption))
}
