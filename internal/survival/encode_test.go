package survival

import (
	"testing"

	"go-survival-analysis/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []entity.PatientRecord {
	return []entity.PatientRecord{
		{PatientID: 1, SurvivalTime: 100, Event: 1, Age: 60, Gender: "Male", Treatment: "C", Biomarker1: 55.5, Biomarker2: 101},
		{PatientID: 2, SurvivalTime: 400, Event: 0, Age: 35, Gender: "Female", Treatment: "A", Biomarker1: 42.1, Biomarker2: 88},
		{PatientID: 3, SurvivalTime: 900, Event: 1, Age: 71, Gender: "Female", Treatment: "B", Biomarker1: 61.8, Biomarker2: 130},
	}
}

func TestEncodeShape(t *testing.T) {
	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, "duration", ds.DurationCol)
	assert.Equal(t, "event", ds.EventCol)
	assert.Equal(t, []float64{100, 400, 900}, ds.Durations)
	assert.Equal(t, []int{1, 0, 1}, ds.Events)
	assert.Equal(t, []string{"age", "gender", "treatment", "biomarker1", "biomarker2"}, ds.Covariates)

	rows, cols := ds.Matrix.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
}

func TestEncodeLabelEncodingIsSorted(t *testing.T) {
	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	// Female=0, Male=1; A=0, B=1, C=2 over sorted class names.
	assert.Equal(t, 1.0, ds.Matrix.At(0, 1))
	assert.Equal(t, 0.0, ds.Matrix.At(1, 1))
	assert.Equal(t, 2.0, ds.Matrix.At(0, 2))
	assert.Equal(t, 0.0, ds.Matrix.At(1, 2))
	assert.Equal(t, 1.0, ds.Matrix.At(2, 2))
}

func TestEncodeKeepsRawLabels(t *testing.T) {
	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"Male", "Female", "Female"}, ds.Labels["gender"])
	assert.Equal(t, []string{"C", "A", "B"}, ds.Labels["treatment"])
}

func TestEncodeEmpty(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
