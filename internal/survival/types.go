// Package survival defines the port to the external Cox regression
// service. Partial-likelihood optimization, Kaplan-Meier estimation, and
// proportional-hazards testing all happen on the other side of this
// boundary; this package only prepares well-formed input and consumes the
// fitted output.
package survival

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Dataset is the fitting input: durations, event indicators, and an
// encoded covariate matrix with one row per subject. Labels keeps the raw
// categorical values for stratified curve requests.
type Dataset struct {
	DurationCol string
	EventCol    string
	Durations   []float64
	Events      []int
	Covariates  []string
	Matrix      *mat.Dense
	Labels      map[string][]string
}

// Coefficient is one fitted covariate estimate.
type Coefficient struct {
	Covariate   string  `json:"covariate"`
	Coef        float64 `json:"coef"`
	StdErr      float64 `json:"std_err"`
	HazardRatio float64 `json:"hazard_ratio"`
	CILower     float64 `json:"ci_lower"`
	CIUpper     float64 `json:"ci_upper"`
	PValue      float64 `json:"p_value"`
}

// FitResult is the model-level output of a Cox regression fit.
type FitResult struct {
	Coefficients    []Coefficient `json:"coefficients"`
	Concordance     float64       `json:"concordance"`
	LogLikelihood   float64       `json:"log_likelihood"`
	NumObservations int           `json:"num_observations"`
	NumEvents       int           `json:"num_events"`
}

// Curve is one stratified survival function as step-function points.
type Curve struct {
	Label         string    `json:"label"`
	Times         []float64 `json:"times"`
	Probabilities []float64 `json:"probabilities"`
}

// AssumptionResult reports the proportional-hazards test for one covariate.
type AssumptionResult struct {
	Covariate string  `json:"covariate"`
	PValue    float64 `json:"p_value"`
	Violated  bool    `json:"violated"`
}

// Fitter is the survival regression capability consumed as a black box.
type Fitter interface {
	Fit(ctx context.Context, ds *Dataset) (*FitResult, error)
	SurvivalCurves(ctx context.Context, ds *Dataset, stratifyBy string) ([]Curve, error)
	CheckAssumptions(ctx context.Context, ds *Dataset) ([]AssumptionResult, error)
}
