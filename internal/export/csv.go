// Package export serializes cohorts as delimited text for downstream
// tooling. The column set and order are fixed; numeric fields use plain
// decimal formatting with no locale dependence.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go-survival-analysis/internal/domain/entity"
)

// Header is the canonical cohort CSV column order.
var Header = []string{
	"patient_id",
	"survival_time",
	"event",
	"age",
	"gender",
	"treatment",
	"biomarker1",
	"biomarker2",
}

// WriteRecords writes a header row followed by one row per record.
func WriteRecords(w io.Writer, records []entity.PatientRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.PatientID),
			strconv.FormatFloat(r.SurvivalTime, 'f', 2, 64),
			strconv.Itoa(r.Event),
			strconv.Itoa(r.Age),
			r.Gender,
			r.Treatment,
			strconv.FormatFloat(r.Biomarker1, 'f', 2, 64),
			strconv.FormatFloat(r.Biomarker2, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", r.PatientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
