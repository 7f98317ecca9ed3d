package survival

import (
	"errors"
	"sort"

	"go-survival-analysis/internal/domain/entity"

	"gonum.org/v1/gonum/mat"
)

var ErrEmptyDataset = errors.New("cannot encode an empty dataset")

// Covariate column order handed to the fitter.
var covariates = []string{"age", "gender", "treatment", "biomarker1", "biomarker2"}

// Encode builds the fitting dataset from cohort records. Categorical
// covariates are label-encoded over their sorted distinct values, so the
// encoding is a function of the data alone and stable across runs.
func Encode(records []entity.PatientRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	genders := make([]string, len(records))
	treatments := make([]string, len(records))
	for i, r := range records {
		genders[i] = r.Gender
		treatments[i] = r.Treatment
	}
	genderCode := labelEncoding(genders)
	treatmentCode := labelEncoding(treatments)

	ds := &Dataset{
		DurationCol: "duration",
		EventCol:    "event",
		Durations:   make([]float64, len(records)),
		Events:      make([]int, len(records)),
		Covariates:  covariates,
		Matrix:      mat.NewDense(len(records), len(covariates), nil),
		Labels: map[string][]string{
			"gender":    genders,
			"treatment": treatments,
		},
	}

	for i, r := range records {
		ds.Durations[i] = r.SurvivalTime
		ds.Events[i] = r.Event
		ds.Matrix.SetRow(i, []float64{
			float64(r.Age),
			float64(genderCode[r.Gender]),
			float64(treatmentCode[r.Treatment]),
			r.Biomarker1,
			r.Biomarker2,
		})
	}

	return ds, nil
}

func labelEncoding(values []string) map[string]int {
	seen := map[string]bool{}
	classes := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)

	encoding := make(map[string]int, len(classes))
	for i, c := range classes {
		encoding[c] = i
	}
	return encoding
}
