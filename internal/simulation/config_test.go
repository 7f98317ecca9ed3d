package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative baseline hazard", func(c *Config) { c.BaselineHazard = -0.01 }},
		{"zero treatment multiplier", func(c *Config) { c.TreatmentB = 0 }},
		{"zero multiplier floor", func(c *Config) { c.MultiplierFloor = 0 }},
		{"inverted age range", func(c *Config) { c.AgeMin = 80; c.AgeMax = 30 }},
		{"zero age reference", func(c *Config) { c.AgeReference = 0 }},
		{"negative biomarker spread", func(c *Config) { c.Biomarker1SD = -1 }},
		{"zero horizon", func(c *Config) { c.HorizonDays = 0 }},
		{"inverted censoring window", func(c *Config) { c.CensoringMinDays = 1825; c.CensoringMaxDays = 365 }},
		{"censoring beyond horizon", func(c *Config) { c.CensoringMaxDays = 4000 }},
		{"wrong gender weight count", func(c *Config) { c.GenderWeights = []float64{1} }},
		{"negative treatment weight", func(c *Config) { c.TreatmentWeights = []float64{1, -1, 1} }},
		{"all-zero treatment weights", func(c *Config) { c.TreatmentWeights = []float64{0, 0, 0} }},
		{"recensor prob above one", func(c *Config) { c.RecensorProb = 1.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateAllowsZeroBaseline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaselineHazard = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidateAllowsNonUniformWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenderWeights = []float64{0.55, 0.45}
	cfg.TreatmentWeights = []float64{0.35, 0.35, 0.30}
	assert.NoError(t, cfg.Validate())
}
