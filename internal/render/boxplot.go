package render

import (
	"github.com/fogleman/gg"
)

const (
	boxplotWidth  = 900
	boxplotHeight = 500

	boxplotMarginTop    = 50.0
	boxplotMarginSide   = 60.0
	boxplotMarginBottom = 70.0
	boxFillFraction     = 0.6
)

// GroupSummary is the five-number summary of one box-plot group. The
// quartiles come from order-statistic indexing upstream; this package only
// draws them.
type GroupSummary struct {
	Label  string
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// BoxPlot writes a grouped box-and-whisker PNG, one box per group in the
// given order, x-axis labeled by group name.
func BoxPlot(path string, groups []GroupSummary) error {
	if len(groups) == 0 {
		return nil
	}

	globalMin, globalMax := groups[0].Min, groups[0].Max
	for _, g := range groups[1:] {
		if g.Min < globalMin {
			globalMin = g.Min
		}
		if g.Max > globalMax {
			globalMax = g.Max
		}
	}
	if globalMax == globalMin {
		// Degenerate range: pad so every box is drawable.
		globalMax = globalMin + 1
	}

	dc := gg.NewContext(boxplotWidth, boxplotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Box Plot by Group", boxplotWidth/2, boxplotMarginTop/2, 0.5, 0.5)

	plotW := float64(boxplotWidth) - 2*boxplotMarginSide
	plotH := float64(boxplotHeight) - boxplotMarginTop - boxplotMarginBottom
	slotW := plotW / float64(len(groups))

	// Value -> canvas y, larger values toward the top.
	toY := func(v float64) float64 {
		frac := (v - globalMin) / (globalMax - globalMin)
		return boxplotMarginTop + plotH*(1-frac)
	}

	for idx, g := range groups {
		slotX := boxplotMarginSide + float64(idx)*slotW
		boxW := slotW * boxFillFraction
		boxX := slotX + (slotW-boxW)/2
		centerX := slotX + slotW/2

		// Interquartile box.
		dc.SetRGBA(0.2, 0.4, 0.8, 0.3)
		dc.DrawRectangle(boxX, toY(g.Q3), boxW, toY(g.Q1)-toY(g.Q3))
		dc.Fill()

		dc.SetRGB(0.2, 0.4, 0.8)
		dc.SetLineWidth(2)
		dc.DrawLine(boxX, toY(g.Median), boxX+boxW, toY(g.Median))
		dc.Stroke()

		// Whiskers.
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawLine(centerX, toY(g.Q3), centerX, toY(g.Max))
		dc.DrawLine(centerX, toY(g.Q1), centerX, toY(g.Min))
		dc.Stroke()

		dc.DrawStringAnchored(truncateLabel(g.Label), centerX, float64(boxplotHeight)-boxplotMarginBottom/2, 0.5, 0.5)
	}

	return dc.SavePNG(path)
}
