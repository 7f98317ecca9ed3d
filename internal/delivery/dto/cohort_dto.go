package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// GenerateCohortRequest asks for a new synthetic cohort. Overrides are
// optional; anything left nil falls back to the configured defaults.
type GenerateCohortRequest struct {
	Name      string               `json:"name" validate:"required,min=2,max=255"`
	Size      int                  `json:"size" validate:"required,gt=0,lte=100000"`
	Seed      int64                `json:"seed"`
	Overrides *SimulationOverrides `json:"overrides,omitempty"`
}

type SimulationOverrides struct {
	BaselineHazard   *float64  `json:"baseline_hazard,omitempty" validate:"omitempty,gte=0"`
	TreatmentA       *float64  `json:"treatment_a,omitempty" validate:"omitempty,gt=0"`
	TreatmentB       *float64  `json:"treatment_b,omitempty" validate:"omitempty,gt=0"`
	TreatmentC       *float64  `json:"treatment_c,omitempty" validate:"omitempty,gt=0"`
	MultiplierFloor  *float64  `json:"multiplier_floor,omitempty" validate:"omitempty,gt=0"`
	GenderWeights    []float64 `json:"gender_weights,omitempty"`
	TreatmentWeights []float64 `json:"treatment_weights,omitempty"`
	Recensor         *bool     `json:"recensor,omitempty"`
	RecensorProb     *float64  `json:"recensor_prob,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Response DTOs

type CohortResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Seed          int64     `json:"seed"`
	Size          int       `json:"size"`
	EventCount    int       `json:"event_count"`
	CensoredCount int       `json:"censored_count"`
	EventRate     float64   `json:"event_rate"`
	CreatedBy     *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ColumnStats holds descriptive statistics for one numeric column.
type ColumnStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

type CohortSummaryResponse struct {
	CohortID        uuid.UUID      `json:"cohort_id"`
	Size            int            `json:"size"`
	Events          int            `json:"events"`
	Censored        int            `json:"censored"`
	EventRate       float64        `json:"event_rate"`
	SurvivalTime    ColumnStats    `json:"survival_time"`
	Age             ColumnStats    `json:"age"`
	Biomarker1      ColumnStats    `json:"biomarker1"`
	Biomarker2      ColumnStats    `json:"biomarker2"`
	TreatmentCounts map[string]int `json:"treatment_counts"`
	GenderCounts    map[string]int `json:"gender_counts"`
}
