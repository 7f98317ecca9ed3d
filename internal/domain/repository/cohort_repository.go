package repository

import (
	"context"

	"go-survival-analysis/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CohortRepository interface {
	Create(ctx context.Context, db *gorm.DB, cohort *entity.Cohort) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Cohort, error)
	FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Cohort, int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
