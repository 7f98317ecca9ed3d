package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RunAnalysisRequest struct {
	StratifyBy string `json:"stratify_by" validate:"omitempty,oneof=treatment gender"`
}

// Response DTOs

type CoefficientResponse struct {
	Covariate   string  `json:"covariate"`
	Coef        float64 `json:"coef"`
	StdErr      float64 `json:"std_err"`
	HazardRatio float64 `json:"hazard_ratio"`
	CILower     float64 `json:"ci_lower"`
	CIUpper     float64 `json:"ci_upper"`
	PValue      float64 `json:"p_value"`
}

type AnalysisResponse struct {
	ID              uuid.UUID             `json:"id"`
	CohortID        uuid.UUID             `json:"cohort_id"`
	Status          string                `json:"status"`
	Concordance     float64               `json:"concordance"`
	LogLikelihood   float64               `json:"log_likelihood"`
	NumObservations int                   `json:"num_observations"`
	NumEvents       int                   `json:"num_events"`
	Coefficients    []CoefficientResponse `json:"coefficients,omitempty"`
	HazardPlotPath  string                `json:"hazard_plot_path,omitempty"`
	CurvesPlotPath  string                `json:"curves_plot_path,omitempty"`
	ErrorDetail     string                `json:"error_detail,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

type AssumptionResponse struct {
	Covariate string  `json:"covariate"`
	PValue    float64 `json:"p_value"`
	Violated  bool    `json:"violated"`
}
