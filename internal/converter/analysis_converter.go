package converter

import (
	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/domain/entity"
)

// AnalysisToResponse converts an Analysis entity to AnalysisResponse DTO
func AnalysisToResponse(analysis *entity.Analysis) *dto.AnalysisResponse {
	if analysis == nil {
		return nil
	}

	coefficients := make([]dto.CoefficientResponse, len(analysis.Coefficients))
	for i, c := range analysis.Coefficients {
		coefficients[i] = dto.CoefficientResponse{
			Covariate:   c.Covariate,
			Coef:        c.Coef,
			StdErr:      c.StdErr,
			HazardRatio: c.HazardRatio,
			CILower:     c.CILower,
			CIUpper:     c.CIUpper,
			PValue:      c.PValue,
		}
	}

	return &dto.AnalysisResponse{
		ID:              analysis.ID,
		CohortID:        analysis.CohortID,
		Status:          analysis.Status,
		Concordance:     analysis.Concordance,
		LogLikelihood:   analysis.LogLikelihood,
		NumObservations: analysis.NumObservations,
		NumEvents:       analysis.NumEvents,
		Coefficients:    coefficients,
		HazardPlotPath:  analysis.HazardPlotPath,
		CurvesPlotPath:  analysis.CurvesPlotPath,
		ErrorDetail:     analysis.ErrorDetail,
		CreatedAt:       analysis.CreatedAt,
	}
}

// AnalysesToResponses converts a slice of Analysis entities to DTOs
func AnalysesToResponses(analyses []entity.Analysis) []dto.AnalysisResponse {
	responses := make([]dto.AnalysisResponse, len(analyses))
	for i := range analyses {
		responses[i] = *AnalysisToResponse(&analyses[i])
	}
	return responses
}
