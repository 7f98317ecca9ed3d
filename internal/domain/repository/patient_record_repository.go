package repository

import (
	"context"

	"go-survival-analysis/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRecordRepository interface {
	CreateBatch(ctx context.Context, db *gorm.DB, records []entity.PatientRecord) error
	FindByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) ([]entity.PatientRecord, error)
	DeleteByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) error
}
