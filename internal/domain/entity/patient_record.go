package entity

import (
	"github.com/google/uuid"
)

// PatientRecord is one simulated patient row within a cohort. PatientID is
// sequential from 1 within its cohort; Event is 1 when the latent event
// time was observed and 0 when the record is censored.
type PatientRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	CohortID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cohort_patient,priority:1" json:"cohort_id"`
	PatientID    int       `gorm:"not null;uniqueIndex:idx_cohort_patient,priority:2" json:"patient_id"`
	SurvivalTime float64   `gorm:"not null" json:"survival_time"`
	Event        int       `gorm:"not null" json:"event"`
	Age          int       `gorm:"not null" json:"age"`
	Gender       string    `gorm:"type:varchar(10);not null" json:"gender"`
	Treatment    string    `gorm:"type:char(1);not null" json:"treatment"`
	Biomarker1   float64   `gorm:"not null" json:"biomarker1"`
	Biomarker2   float64   `gorm:"not null" json:"biomarker2"`
}

func (PatientRecord) TableName() string {
	return "patient_records"
}
