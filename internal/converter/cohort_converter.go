package converter

import (
	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/domain/entity"
)

// CohortToResponse converts a Cohort entity to CohortResponse DTO
func CohortToResponse(cohort *entity.Cohort) *dto.CohortResponse {
	if cohort == nil {
		return nil
	}

	eventRate := 0.0
	if cohort.Size > 0 {
		eventRate = float64(cohort.EventCount) / float64(cohort.Size)
	}

	return &dto.CohortResponse{
		ID:            cohort.ID,
		Name:          cohort.Name,
		Seed:          cohort.Seed,
		Size:          cohort.Size,
		EventCount:    cohort.EventCount,
		CensoredCount: cohort.CensoredCount,
		EventRate:     eventRate,
		CreatedBy:     cohort.CreatedBy,
		CreatedAt:     cohort.CreatedAt,
	}
}

// CohortsToResponses converts a slice of Cohort entities to DTOs
func CohortsToResponses(cohorts []entity.Cohort) []dto.CohortResponse {
	responses := make([]dto.CohortResponse, len(cohorts))
	for i := range cohorts {
		responses[i] = *CohortToResponse(&cohorts[i])
	}
	return responses
}
