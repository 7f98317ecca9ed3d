package repository

import (
	"context"
	"errors"

	"go-survival-analysis/internal/domain/entity"
	domainRepo "go-survival-analysis/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cohortRepository struct{}

func NewCohortRepository() domainRepo.CohortRepository {
	return &cohortRepository{}
}

func (r *cohortRepository) Create(ctx context.Context, db *gorm.DB, cohort *entity.Cohort) error {
	return db.WithContext(ctx).Create(cohort).Error
}

func (r *cohortRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Cohort, error) {
	var cohort entity.Cohort
	err := db.WithContext(ctx).Where("id = ?", id).First(&cohort).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cohort, nil
}

func (r *cohortRepository) FindAll(ctx context.Context, db *gorm.DB, offset, limit int) ([]entity.Cohort, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(&entity.Cohort{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cohorts []entity.Cohort
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&cohorts).Error
	if err != nil {
		return nil, 0, err
	}
	return cohorts, total, nil
}

func (r *cohortRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Cohort{}).Error
}
