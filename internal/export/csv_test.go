package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"go-survival-analysis/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecords(t *testing.T) {
	records := []entity.PatientRecord{
		{PatientID: 1, SurvivalTime: 123.456, Event: 1, Age: 45, Gender: "Male", Treatment: "B", Biomarker1: 50.5, Biomarker2: 99.99},
		{PatientID: 2, SurvivalTime: 1825, Event: 0, Age: 80, Gender: "Female", Treatment: "C", Biomarker1: 31.2, Biomarker2: 120},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "patient_id,survival_time,event,age,gender,treatment,biomarker1,biomarker2", lines[0])
	assert.Equal(t, "1,123.46,1,45,Male,B,50.50,99.99", lines[1])
	assert.Equal(t, "2,1825.00,0,80,Female,C,31.20,120.00", lines[2])
}

func TestWriteRecordsEmptyCohortStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil))

	reader := csv.NewReader(&buf)
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Header, rows[0])
}
