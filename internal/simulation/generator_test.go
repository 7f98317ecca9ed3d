package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRowCountAndIDs(t *testing.T) {
	records, err := Generate(500, 42, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, records, 500)

	for i, r := range records {
		assert.Equal(t, i+1, r.PatientID)
	}
}

func TestGenerateFieldRanges(t *testing.T) {
	cfg := DefaultConfig()
	records, err := Generate(500, 42, cfg)
	require.NoError(t, err)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Age, 30)
		assert.LessOrEqual(t, r.Age, 80)
		assert.Contains(t, []string{GenderMale, GenderFemale}, r.Gender)
		assert.Contains(t, []string{TreatmentA, TreatmentB, TreatmentC}, r.Treatment)
		assert.GreaterOrEqual(t, r.SurvivalTime, 0.0)
		assert.LessOrEqual(t, r.SurvivalTime, cfg.HorizonDays)
		assert.Contains(t, []int{0, 1}, r.Event)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	first, err := Generate(200, 7, DefaultConfig())
	require.NoError(t, err)
	second, err := Generate(200, 7, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateDifferentSeedsDiverge(t *testing.T) {
	first, err := Generate(50, 1, DefaultConfig())
	require.NoError(t, err)
	second, err := Generate(50, 2, DefaultConfig())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateSingleRecord(t *testing.T) {
	records, err := Generate(1, 42, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].PatientID)
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	_, err := Generate(0, 42, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidSampleCount)

	_, err = Generate(-5, 42, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidSampleCount)
}

func TestGenerateEventRateBand(t *testing.T) {
	records, err := Generate(5000, 42, DefaultConfig())
	require.NoError(t, err)

	s := Summarize(records)
	assert.Greater(t, s.EventRate, 0.60)
	assert.Less(t, s.EventRate, 0.90)
	assert.Equal(t, 5000, s.Events+s.Censored)
}

func TestGenerateZeroBaselineHazardCensorsEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaselineHazard = 0

	records, err := Generate(300, 42, cfg)
	require.NoError(t, err)

	for _, r := range records {
		assert.Equal(t, 0, r.Event)
		assert.GreaterOrEqual(t, r.SurvivalTime, cfg.CensoringMinDays)
		assert.LessOrEqual(t, r.SurvivalTime, cfg.CensoringMaxDays)
	}
}

func TestGenerateRecensorRaisesCensoringRate(t *testing.T) {
	base := DefaultConfig()
	base.Recensor = false
	comparison, err := Generate(3000, 42, base)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Recensor = true
	cfg.RecensorProb = 0.3
	recensored, err := Generate(3000, 42, cfg)
	require.NoError(t, err)

	assert.Greater(t, Summarize(recensored).Censored, Summarize(comparison).Censored)
	for _, r := range recensored {
		assert.LessOrEqual(t, r.SurvivalTime, cfg.HorizonDays)
	}
}

// With the default rates most latent times land inside the censoring
// window; only the re-censoring coin keeps the aggregate event rate near
// the 70% target. It must stay enabled by default.
func TestDefaultConfigRecensorEnabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Recensor)
	assert.Equal(t, 0.3, cfg.RecensorProb)

	cfg.Recensor = false
	records, err := Generate(5000, 42, cfg)
	require.NoError(t, err)
	assert.Greater(t, Summarize(records).EventRate, 0.90)
}

func TestHazardRateTreatmentOrdering(t *testing.T) {
	cfg := DefaultConfig()

	b := cfg.hazardRate(TreatmentB, 50, 50)
	a := cfg.hazardRate(TreatmentA, 50, 50)
	c := cfg.hazardRate(TreatmentC, 50, 50)

	assert.Less(t, b, a)
	assert.Less(t, a, c)
	assert.InDelta(t, cfg.BaselineHazard, c, 1e-12)
}

func TestHazardRateClampsBiomarkerMultiplier(t *testing.T) {
	cfg := DefaultConfig()

	// A biomarker far above the reference would drive the multiplier
	// negative without the floor.
	rate := cfg.hazardRate(TreatmentC, 50, 500)
	assert.InDelta(t, cfg.BaselineHazard*cfg.MultiplierFloor, rate, 1e-12)
	assert.Greater(t, rate, 0.0)
}

func TestHazardRateRisesWithAge(t *testing.T) {
	cfg := DefaultConfig()

	young := cfg.hazardRate(TreatmentC, 30, 50)
	old := cfg.hazardRate(TreatmentC, 80, 50)
	assert.Greater(t, old, young)
}

func TestWeightedChoiceHonorsDegenerateWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreatmentWeights = []float64{0, 0, 1}

	records, err := Generate(100, 42, cfg)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, TreatmentC, r.Treatment)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Events)
	assert.Equal(t, 0.0, s.EventRate)
}
