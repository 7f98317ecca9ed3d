package repository

import (
	"context"

	"go-survival-analysis/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisRepository interface {
	Create(ctx context.Context, db *gorm.DB, analysis *entity.Analysis) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Analysis, error)
	FindByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) ([]entity.Analysis, error)
}
