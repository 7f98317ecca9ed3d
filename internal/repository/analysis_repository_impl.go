package repository

import (
	"context"
	"errors"

	"go-survival-analysis/internal/domain/entity"
	domainRepo "go-survival-analysis/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type analysisRepository struct{}

func NewAnalysisRepository() domainRepo.AnalysisRepository {
	return &analysisRepository{}
}

func (r *analysisRepository) Create(ctx context.Context, db *gorm.DB, analysis *entity.Analysis) error {
	return db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Analysis, error) {
	var analysis entity.Analysis
	err := db.WithContext(ctx).Preload("Coefficients").Where("id = ?", id).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) FindByCohortID(ctx context.Context, db *gorm.DB, cohortID uuid.UUID) ([]entity.Analysis, error) {
	var analyses []entity.Analysis
	err := db.WithContext(ctx).
		Preload("Coefficients").
		Where("cohort_id = ?", cohortID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
