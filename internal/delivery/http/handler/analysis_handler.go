package handler

import (
	"encoding/json"
	"net/http"

	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/usecase"
	"go-survival-analysis/pkg/response"
	"go-survival-analysis/pkg/validator"
)

type AnalysisHandler struct {
	analysisUsecase usecase.AnalysisUsecase
	validator       *validator.CustomValidator
}

func NewAnalysisHandler(analysisUsecase usecase.AnalysisUsecase, validator *validator.CustomValidator) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
		validator:       validator,
	}
}

// RunAnalysis handles fitting a Cox model against a cohort
// @Summary Run Cox regression
// @Description Fit a Cox proportional hazards model against the cohort and render its plots
// @Tags Analyses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Cohort ID"
// @Param request body dto.RunAnalysisRequest false "Run Analysis Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /cohorts/{id}/analyses [post]
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	cohortID, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	// Body is optional; an empty one means default stratification
	req := dto.RunAnalysisRequest{}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID := userIDPtr(r)

	analysis, err := h.analysisUsecase.RunAnalysis(r.Context(), userID, cohortID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		case usecase.ErrCohortEmpty:
			response.Error(w, http.StatusUnprocessableEntity, "Cohort has no records to analyze", nil)
		case usecase.ErrFitterFailed:
			response.Error(w, http.StatusBadGateway, "Survival fitter request failed", nil)
		default:
			response.InternalServerError(w, "Failed to run analysis")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Analysis completed successfully", analysis)
}

// GetAnalysis handles getting a single analysis
// @Summary Get analysis
// @Description Get one analysis with its fitted coefficients
// @Tags Analyses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid analysis ID", nil)
		return
	}

	analysis, err := h.analysisUsecase.GetAnalysis(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAnalysisNotFound:
			response.NotFound(w, "Analysis not found")
		default:
			response.InternalServerError(w, "Failed to get analysis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Analysis retrieved successfully", analysis)
}

// ListAnalyses handles listing a cohort's analyses
// @Summary List analyses
// @Description List all analyses run against a cohort, newest first
// @Tags Analyses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cohorts/{id}/analyses [get]
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	cohortID, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	analyses, err := h.analysisUsecase.ListAnalyses(r.Context(), cohortID)
	if err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		default:
			response.InternalServerError(w, "Failed to list analyses")
		}
		return
	}

	response.Success(w, http.StatusOK, "Analyses retrieved successfully", analyses)
}

// CheckAssumptions handles the proportional hazards assumption check
// @Summary Check proportional hazards assumptions
// @Description Run the proportional hazards test for each covariate of an analysis
// @Tags Analyses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /analyses/{id}/assumptions [get]
func (h *AnalysisHandler) CheckAssumptions(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid analysis ID", nil)
		return
	}

	results, err := h.analysisUsecase.CheckAssumptions(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAnalysisNotFound:
			response.NotFound(w, "Analysis not found")
		case usecase.ErrCohortEmpty:
			response.Error(w, http.StatusUnprocessableEntity, "Cohort has no records to analyze", nil)
		case usecase.ErrFitterFailed:
			response.Error(w, http.StatusBadGateway, "Survival fitter request failed", nil)
		default:
			response.InternalServerError(w, "Failed to check assumptions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assumption check completed successfully", results)
}
