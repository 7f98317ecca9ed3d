package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"go-survival-analysis/internal/survival"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCoefficients() []survival.Coefficient {
	return []survival.Coefficient{
		{Covariate: "age", Coef: 0.02, HazardRatio: 1.02, CILower: 1.0, CIUpper: 1.05},
		{Covariate: "treatment", Coef: -0.9, HazardRatio: 0.41, CILower: 0.3, CIUpper: 0.55},
	}
}

func TestRenderHazardPlot(t *testing.T) {
	u := &analysisUsecase{log: logrus.New(), resultsDir: t.TempDir()}

	path, err := u.renderHazardPlot(uuid.New(), sampleCoefficients())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// A rendering failure must surface as an error, not collapse into an
// empty plot path on a committed analysis.
func TestRenderHazardPlotUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// resultsDir nested under a regular file cannot be created
	u := &analysisUsecase{log: logrus.New(), resultsDir: filepath.Join(blocker, "results")}

	path, err := u.renderHazardPlot(uuid.New(), sampleCoefficients())
	require.Error(t, err)
	assert.Empty(t, path)
}

func TestRenderCurvesPlot(t *testing.T) {
	u := &analysisUsecase{log: logrus.New(), resultsDir: t.TempDir()}

	curves := []survival.Curve{
		{Label: "A", Times: []float64{0, 100, 200}, Probabilities: []float64{1, 0.8, 0.6}},
		{Label: "B", Times: []float64{0, 100, 200}, Probabilities: []float64{1, 0.9, 0.85}},
	}

	path, err := u.renderCurvesPlot(uuid.New(), curves, "treatment")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderCurvesPlotMalformedCurve(t *testing.T) {
	u := &analysisUsecase{log: logrus.New(), resultsDir: t.TempDir()}

	curves := []survival.Curve{
		{Label: "A", Times: []float64{0, 100}, Probabilities: []float64{1}},
	}

	path, err := u.renderCurvesPlot(uuid.New(), curves, "treatment")
	require.Error(t, err)
	assert.Empty(t, path)
}
