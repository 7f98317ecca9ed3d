package entity

import (
	"time"

	"github.com/google/uuid"
)

// Analysis status constants
const (
	AnalysisStatusCompleted = "completed"
	AnalysisStatusFailed    = "failed"
)

// Analysis records one Cox regression run against a cohort: the model-level
// statistics returned by the fitting service, the rendered plot files, and
// the per-covariate estimates.
type Analysis struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CohortID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"cohort_id"`
	Status          string     `gorm:"type:varchar(20);not null;index" json:"status"`
	Concordance     float64    `json:"concordance"`
	LogLikelihood   float64    `json:"log_likelihood"`
	NumObservations int        `json:"num_observations"`
	NumEvents       int        `json:"num_events"`
	HazardPlotPath  string     `gorm:"type:text" json:"hazard_plot_path,omitempty"`
	CurvesPlotPath  string     `gorm:"type:text" json:"curves_plot_path,omitempty"`
	ErrorDetail     string     `gorm:"type:text" json:"error_detail,omitempty"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Cohort       *Cohort               `gorm:"foreignKey:CohortID" json:"cohort,omitempty"`
	Coefficients []AnalysisCoefficient `gorm:"foreignKey:AnalysisID;constraint:OnDelete:CASCADE" json:"coefficients,omitempty"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// AnalysisCoefficient is one fitted covariate: log hazard coefficient,
// hazard ratio, and 95% confidence interval bounds.
type AnalysisCoefficient struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	AnalysisID  uuid.UUID `gorm:"type:uuid;not null;index" json:"analysis_id"`
	Covariate   string    `gorm:"type:varchar(50);not null" json:"covariate"`
	Coef        float64   `json:"coef"`
	StdErr      float64   `json:"std_err"`
	HazardRatio float64   `json:"hazard_ratio"`
	CILower     float64   `json:"ci_lower"`
	CIUpper     float64   `json:"ci_upper"`
	PValue      float64   `json:"p_value"`
}

func (AnalysisCoefficient) TableName() string {
	return "analysis_coefficients"
}
