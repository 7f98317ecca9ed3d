package plot

import (
	"fmt"

	"go-survival-analysis/internal/survival"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SurvivalCurves renders stratified survival functions as step curves.
func SurvivalCurves(curves []survival.Curve, title, path string) error {
	if len(curves) == 0 {
		return fmt.Errorf("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (days)"
	p.Y.Label.Text = "Survival Probability"
	p.Y.Min = 0
	p.Y.Max = 1.05

	for i, curve := range curves {
		if len(curve.Times) != len(curve.Probabilities) {
			return fmt.Errorf("curve %q has %d times but %d probabilities", curve.Label, len(curve.Times), len(curve.Probabilities))
		}

		pts := make(plotter.XYs, len(curve.Times))
		for j := range curve.Times {
			pts[j].X = curve.Times[j]
			pts[j].Y = curve.Probabilities[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build curve %q: %w", curve.Label, err)
		}
		line.StepStyle = plotter.PostStep
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(curve.Label, line)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save survival curves plot: %w", err)
	}
	return nil
}
