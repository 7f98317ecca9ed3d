package usecase

import (
	"testing"

	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/domain/entity"
	"go-survival-analysis/internal/simulation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	cfg := simulation.DefaultConfig()
	baseline := 0.02
	treatmentB := 0.5
	recensor := true

	applyOverrides(&cfg, &dto.SimulationOverrides{
		BaselineHazard:   &baseline,
		TreatmentB:       &treatmentB,
		Recensor:         &recensor,
		TreatmentWeights: []float64{2, 1, 1},
	})

	assert.Equal(t, 0.02, cfg.BaselineHazard)
	assert.Equal(t, 0.5, cfg.TreatmentB)
	assert.True(t, cfg.Recensor)
	assert.Equal(t, []float64{2, 1, 1}, cfg.TreatmentWeights)
	// Untouched fields keep their defaults
	assert.Equal(t, 0.65, cfg.TreatmentA)
}

func TestApplyOverridesNil(t *testing.T) {
	cfg := simulation.DefaultConfig()
	applyOverrides(&cfg, nil)
	assert.Equal(t, simulation.DefaultConfig(), cfg)
}

func TestSimulationParamsRoundTrip(t *testing.T) {
	cfg := simulation.DefaultConfig()
	params := simulationParams(cfg)

	assert.Equal(t, cfg.BaselineHazard, params["baseline_hazard"])
	assert.Equal(t, cfg.HorizonDays, params["horizon_days"])
	assert.Equal(t, cfg.Recensor, params["recensor"])
}

func TestBuildSummary(t *testing.T) {
	cohort := &entity.Cohort{ID: uuid.New()}
	records := []entity.PatientRecord{
		{SurvivalTime: 100, Event: 1, Age: 40, Gender: "Male", Treatment: "A", Biomarker1: 40, Biomarker2: 90},
		{SurvivalTime: 200, Event: 0, Age: 50, Gender: "Female", Treatment: "B", Biomarker1: 50, Biomarker2: 100},
		{SurvivalTime: 300, Event: 1, Age: 60, Gender: "Male", Treatment: "A", Biomarker1: 60, Biomarker2: 110},
	}

	summary := buildSummary(cohort, records)
	require.NotNil(t, summary)

	assert.Equal(t, cohort.ID, summary.CohortID)
	assert.Equal(t, 3, summary.Size)
	assert.Equal(t, 2, summary.Events)
	assert.Equal(t, 1, summary.Censored)
	assert.InDelta(t, 2.0/3.0, summary.EventRate, 1e-9)

	assert.InDelta(t, 200, summary.SurvivalTime.Mean, 1e-9)
	assert.Equal(t, 100.0, summary.SurvivalTime.Min)
	assert.Equal(t, 300.0, summary.SurvivalTime.Max)
	assert.Equal(t, 200.0, summary.SurvivalTime.Median)
	assert.InDelta(t, 50, summary.Age.Mean, 1e-9)

	assert.Equal(t, map[string]int{"A": 2, "B": 1}, summary.TreatmentCounts)
	assert.Equal(t, map[string]int{"Male": 2, "Female": 1}, summary.GenderCounts)
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := buildSummary(&entity.Cohort{ID: uuid.New()}, nil)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Size)
	assert.Equal(t, 0.0, summary.EventRate)
	assert.Equal(t, dto.ColumnStats{}, summary.SurvivalTime)
}
