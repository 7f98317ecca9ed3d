// Package plot renders analysis results to PNG files: hazard-ratio
// intervals and stratified survival curves.
package plot

import (
	"fmt"

	"go-survival-analysis/internal/survival"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// hrPoints adapts coefficient estimates for the error-bar plotter: one
// point per covariate at (hazard ratio, row index) with the confidence
// interval as horizontal error.
type hrPoints []survival.Coefficient

func (p hrPoints) Len() int { return len(p) }

func (p hrPoints) XY(i int) (float64, float64) {
	return p[i].HazardRatio, float64(i)
}

func (p hrPoints) XError(i int) (float64, float64) {
	return p[i].HazardRatio - p[i].CILower, p[i].CIUpper - p[i].HazardRatio
}

// HazardRatios renders a forest-style plot of hazard ratios with 95%
// confidence intervals and a reference line at HR = 1.
func HazardRatios(coefs []survival.Coefficient, path string) error {
	if len(coefs) == 0 {
		return fmt.Errorf("no coefficients to plot")
	}

	p := plot.New()
	p.Title.Text = "Hazard Ratios with 95% Confidence Intervals"
	p.X.Label.Text = "Hazard Ratio"

	points := hrPoints(coefs)

	bars, err := plotter.NewXErrorBars(struct {
		plotter.XYer
		plotter.XErrorer
	}{points, points})
	if err != nil {
		return fmt.Errorf("failed to build error bars: %w", err)
	}
	p.Add(bars)

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	reference, err := plotter.NewLine(plotter.XYs{
		{X: 1, Y: -0.5},
		{X: 1, Y: float64(len(coefs)) - 0.5},
	})
	if err != nil {
		return fmt.Errorf("failed to build reference line: %w", err)
	}
	reference.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(reference)
	p.Legend.Add("No effect (HR=1)", reference)

	ticks := make([]plot.Tick, len(coefs))
	for i, c := range coefs {
		ticks[i] = plot.Tick{Value: float64(i), Label: c.Covariate}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = -1
	p.Y.Max = float64(len(coefs))

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save hazard ratio plot: %w", err)
	}
	return nil
}
