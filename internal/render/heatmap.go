package render

import (
	"math"

	"github.com/fogleman/gg"
)

// Heatmap raster geometry. The canvas is fixed at 800x800; the label gutters
// leave room for up to 20 column names on each axis.
const (
	heatmapWidth  = 800
	heatmapHeight = 800

	heatmapMarginTop   = 50.0
	heatmapMarginRight = 20.0
	heatmapGutter      = 110.0
	maxLabelChars      = 14
)

// Heatmap writes a correlation heatmap PNG: one colored cell per (i,j) pair
// of the matrix, hue interpolated from correlation -1 to +1, axis labels
// taken from the column names. The matrix must be square and align with the
// labels slice.
func Heatmap(path string, corr [][]float64, labels []string) error {
	n := len(corr)
	if n == 0 {
		return nil
	}

	dc := gg.NewContext(heatmapWidth, heatmapHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Correlation Heatmap", heatmapWidth/2, heatmapMarginTop/2, 0.5, 0.5)

	plotW := float64(heatmapWidth) - heatmapGutter - heatmapMarginRight
	plotH := float64(heatmapHeight) - heatmapMarginTop - heatmapGutter
	cellW := plotW / float64(n)
	cellH := plotH / float64(n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r, g, b := correlationColor(corr[i][j])
			dc.SetRGB(r, g, b)
			x := heatmapGutter + float64(i)*cellW
			y := heatmapMarginTop + float64(j)*cellH
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()
		}
	}

	dc.SetRGB(0, 0, 0)
	for i := 0; i < n && i < len(labels); i++ {
		label := truncateLabel(labels[i])

		// Row label, right-aligned in the left gutter.
		ly := heatmapMarginTop + (float64(i)+0.5)*cellH
		dc.DrawStringAnchored(label, heatmapGutter-6, ly, 1, 0.5)

		// Column label, rotated vertical below the grid.
		lx := heatmapGutter + (float64(i)+0.5)*cellW
		ty := heatmapMarginTop + plotH + 6
		dc.Push()
		dc.RotateAbout(-math.Pi/2, lx, ty)
		dc.DrawStringAnchored(label, lx, ty, 1, 0.5)
		dc.Pop()
	}

	return dc.SavePNG(path)
}

func truncateLabel(label string) string {
	if len(label) <= maxLabelChars {
		return label
	}
	return label[:maxLabelChars-1] + "…"
}
