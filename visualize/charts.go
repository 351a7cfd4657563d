// Package visualize renders the screening universe as charts: the classic
// price/premium quadrant map, the reset-gaming map, a yield/tenor bubble
// chart and the premium/momentum quadrant map. Axis labels are English
// because the bundled fonts have no CJK glyphs; bond codes still identify
// the points.
package visualize

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lokewei/cblib/screener"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// PricePremium draws bond price against conversion premium with the
// double-high thresholds as reference lines, splitting the plane into the
// four quadrants the daily notes talk about.
func PricePremium(ms []screener.Metrics, r screener.Rules, path string) error {
	pts := make(plotter.XYs, 0, len(ms))
	for _, m := range ms {
		if m.Suspended || m.Price.IsZero() {
			continue
		}
		pts = append(pts, plotter.XY{X: m.Price.InexactFloat64(), Y: m.PremiumPct})
	}
	if len(pts) == 0 {
		return fmt.Errorf("PricePremium: no plottable bonds")
	}

	p := plot.New()
	p.Title.Text = "Price vs Conversion Premium"
	p.X.Label.Text = "Bond price"
	p.Y.Label.Text = "Conversion premium (%)"
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("PricePremium: %w", err)
	}
	sc.GlyphStyle.Radius = vg.Points(3)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	minX, maxX, minY, maxY := bounds(pts)
	p.Add(vline(r.DoubleHighPrice, minY, maxY))
	p.Add(hline(r.DoubleHighPremiumPct, minX, maxX))

	return p.Save(chartWidth, chartHeight, path)
}

// ResetGamingMap plots how far each stock sits above its downward-revision
// trigger against how many window days are already satisfied. Bubble area
// tracks remaining issue size; the hot corner is bottom right.
func ResetGamingMap(ms []screener.Metrics, path string) error {
	pts := make(plotter.XYZs, 0, len(ms))
	for _, m := range ms {
		if m.Suspended || m.ResetRatio <= 0 {
			continue
		}
		size := m.SizeRemaining.InexactFloat64()
		if size <= 0 {
			size = 1
		}
		pts = append(pts, plotter.XYZ{
			X: float64(m.AdjustProgress.Satisfied),
			Y: m.ResetRatio,
			Z: size,
		})
	}
	if len(pts) == 0 {
		return fmt.Errorf("ResetGamingMap: no plottable bonds")
	}

	p := plot.New()
	p.Title.Text = "Reset Gaming Map"
	p.X.Label.Text = "Trigger days satisfied"
	p.Y.Label.Text = "Stock / reset trigger"
	p.Add(plotter.NewGrid())

	bub, err := bubbleScatter(pts)
	if err != nil {
		return fmt.Errorf("ResetGamingMap: %w", err)
	}
	p.Add(bub)

	// Below 1.0 the trigger condition is met on the day.
	p.Add(hline(1.0, 0, maxSatisfied(pts)))

	return p.Save(chartWidth, chartHeight, path)
}

// YTMTenor plots pre-tax yield to maturity against remaining tenor, bubble
// area again tracking remaining issue size.
func YTMTenor(ms []screener.Metrics, path string) error {
	pts := make(plotter.XYZs, 0, len(ms))
	for _, m := range ms {
		if m.Suspended || !m.YTMKnown || m.YearsLeft <= 0 {
			continue
		}
		size := m.SizeRemaining.InexactFloat64()
		if size <= 0 {
			size = 1
		}
		pts = append(pts, plotter.XYZ{X: m.YearsLeft, Y: m.YTMPreTaxPct, Z: size})
	}
	if len(pts) == 0 {
		return fmt.Errorf("YTMTenor: no plottable bonds")
	}

	p := plot.New()
	p.Title.Text = "Yield to Maturity vs Tenor"
	p.X.Label.Text = "Years to maturity"
	p.Y.Label.Text = "Pre-tax YTM (%)"
	p.Add(plotter.NewGrid())

	bub, err := bubbleScatter(pts)
	if err != nil {
		return fmt.Errorf("YTMTenor: %w", err)
	}
	p.Add(bub)

	return p.Save(chartWidth, chartHeight, path)
}

// PremiumMomentum draws conversion premium against the stock's daily move,
// split into four quadrants at zero momentum and at a premium threshold. The
// bottom-left quadrant, cheap conversion on a stock that is already moving,
// is the one the momentum screens hunt for.
func PremiumMomentum(ms []screener.Metrics, path string) error {
	const premiumSplit = 20.0

	pts := make(plotter.XYs, 0, len(ms))
	for _, m := range ms {
		if m.Suspended {
			continue
		}
		pts = append(pts, plotter.XY{X: m.PremiumPct, Y: m.StockChangePct})
	}
	if len(pts) == 0 {
		return fmt.Errorf("PremiumMomentum: no plottable bonds")
	}

	p := plot.New()
	p.Title.Text = "Conversion Premium vs Stock Momentum"
	p.X.Label.Text = "Conversion premium (%)"
	p.Y.Label.Text = "Stock daily change (%)"
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("PremiumMomentum: %w", err)
	}
	sc.GlyphStyle.Radius = vg.Points(3)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	minX, maxX, minY, maxY := bounds(pts)
	p.Add(hline(0, minX, maxX))
	p.Add(vline(premiumSplit, minY, maxY))

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: premiumSplit / 2, Y: maxY},
			{X: premiumSplit + (maxX-premiumSplit)/2, Y: maxY},
			{X: premiumSplit / 2, Y: minY},
			{X: premiumSplit + (maxX-premiumSplit)/2, Y: minY},
		},
		Labels: []string{
			"cheap + strong stock",
			"strong stock, rich premium",
			"cheap, weak stock",
			"rich premium, weak stock",
		},
	})
	if err != nil {
		return fmt.Errorf("PremiumMomentum: %w", err)
	}
	p.Add(labels)

	return p.Save(chartWidth, chartHeight, path)
}

// bubbleScatter sizes each glyph from the point's Z value, spanning a fixed
// radius range.
func bubbleScatter(pts plotter.XYZs) (*plotter.Scatter, error) {
	sc, err := plotter.NewScatter(plotter.XYValues{XYZer: pts})
	if err != nil {
		return nil, err
	}

	minZ, maxZ := pts[0].Z, pts[0].Z
	for _, pt := range pts[1:] {
		if pt.Z < minZ {
			minZ = pt.Z
		}
		if pt.Z > maxZ {
			maxZ = pt.Z
		}
	}

	minR, maxR := vg.Points(2), vg.Points(12)
	fill := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		frac := 0.5
		if maxZ > minZ {
			_, _, z := pts.XYZ(i)
			frac = (z - minZ) / (maxZ - minZ)
		}
		return draw.GlyphStyle{
			Color:  fill,
			Radius: minR + vg.Length(frac)*(maxR-minR),
			Shape:  draw.CircleGlyph{},
		}
	}
	return sc, nil
}

func bounds(pts plotter.XYs) (minX, maxX, minY, maxY float64) {
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, pt := range pts[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return minX, maxX, minY, maxY
}

func maxSatisfied(pts plotter.XYZs) float64 {
	max := 0.0
	for _, pt := range pts {
		if pt.X > max {
			max = pt.X
		}
	}
	return max
}

func vline(x, y0, y1 float64) *plotter.Line {
	l, _ := plotter.NewLine(plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}})
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return l
}

func hline(y, x0, x1 float64) *plotter.Line {
	l, _ := plotter.NewLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}})
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return l
}
