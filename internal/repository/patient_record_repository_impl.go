package repository

import (
	"context"

	"go-survival-analysis/internal/domain/entity"
	domainRepo "go-survival-analysis/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Insert batch size for cohort records
const recordBatchSize = 500

type patientRecordRepository struct{}

func NewPatientRecordRepository() domainRepo.PatientRecordRepository {
	return &patientRecordRepository{}
}

func (r *patientRecordRepository) CreateBatch(ctx context.Context, db *gorm.DB, records []entity.PatientRecord) error {
	return db.WithContext(ctx).CreateInBatches(records, recordBatchSize).Error
}

func (r *patientRecordRepository) FindByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) ([]entity.PatientRecord, error) {
	var records []entity.PatientRecord
	err := db.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		Order("patient_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *patientRecordRepository) DeleteByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) error {
	return db.WithContext(ctx).Where("cohort_id = ?", cohortID).Delete(&entity.PatientRecord{}).Error
}
