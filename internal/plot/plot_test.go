package plot

import (
	"os"
	"path/filepath"
	"testing"

	"go-survival-analysis/internal/survival"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazardRatios(t *testing.T) {
	coefs := []survival.Coefficient{
		{Covariate: "age", Coef: 0.02, HazardRatio: 1.02, CILower: 1.01, CIUpper: 1.04, PValue: 0.001},
		{Covariate: "treatment", Coef: -0.9, HazardRatio: 0.41, CILower: 0.30, CIUpper: 0.55, PValue: 0.0001},
		{Covariate: "biomarker1", Coef: -0.01, HazardRatio: 0.99, CILower: 0.98, CIUpper: 1.00, PValue: 0.04},
	}

	path := filepath.Join(t.TempDir(), "hazard_ratios.png")
	require.NoError(t, HazardRatios(coefs, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHazardRatiosEmpty(t *testing.T) {
	assert.Error(t, HazardRatios(nil, filepath.Join(t.TempDir(), "out.png")))
}

func TestSurvivalCurves(t *testing.T) {
	curves := []survival.Curve{
		{Label: "Treatment A", Times: []float64{0, 200, 600, 1200}, Probabilities: []float64{1, 0.9, 0.7, 0.5}},
		{Label: "Treatment B", Times: []float64{0, 200, 600, 1200}, Probabilities: []float64{1, 0.95, 0.85, 0.75}},
		{Label: "Treatment C", Times: []float64{0, 200, 600, 1200}, Probabilities: []float64{1, 0.8, 0.55, 0.35}},
	}

	path := filepath.Join(t.TempDir(), "curves.png")
	require.NoError(t, SurvivalCurves(curves, "Survival by Treatment", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSurvivalCurvesLengthMismatch(t *testing.T) {
	curves := []survival.Curve{
		{Label: "A", Times: []float64{0, 1}, Probabilities: []float64{1}},
	}
	assert.Error(t, SurvivalCurves(curves, "t", filepath.Join(t.TempDir(), "out.png")))
}
