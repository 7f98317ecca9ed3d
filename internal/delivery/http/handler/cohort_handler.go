package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/delivery/http/middleware"
	"go-survival-analysis/internal/simulation"
	"go-survival-analysis/internal/usecase"
	"go-survival-analysis/pkg/response"
	"go-survival-analysis/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CohortHandler struct {
	cohortUsecase usecase.CohortUsecase
	validator     *validator.CustomValidator
}

func NewCohortHandler(cohortUsecase usecase.CohortUsecase, validator *validator.CustomValidator) *CohortHandler {
	return &CohortHandler{
		cohortUsecase: cohortUsecase,
		validator:     validator,
	}
}

// GenerateCohort handles synthetic cohort generation
// @Summary Generate a synthetic cohort
// @Description Generate a reproducible synthetic survival dataset from a seed
// @Tags Cohorts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateCohortRequest true "Generate Cohort Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /cohorts [post]
func (h *CohortHandler) GenerateCohort(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateCohortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	userID := userIDPtr(r)

	cohort, err := h.cohortUsecase.GenerateCohort(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, simulation.ErrInvalidSampleCount), errors.Is(err, simulation.ErrInvalidConfig):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to generate cohort")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Cohort generated successfully", cohort)
}

// ListCohorts handles listing cohorts with pagination
// @Summary List cohorts
// @Description List generated cohorts, newest first
// @Tags Cohorts
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /cohorts [get]
func (h *CohortHandler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cohorts, total, err := h.cohortUsecase.ListCohorts(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list cohorts")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Cohorts retrieved successfully", cohorts, meta)
}

// GetCohort handles getting a single cohort
// @Summary Get cohort
// @Description Get one cohort by ID
// @Tags Cohorts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cohorts/{id} [get]
func (h *CohortHandler) GetCohort(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	cohort, err := h.cohortUsecase.GetCohort(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		default:
			response.InternalServerError(w, "Failed to get cohort")
		}
		return
	}

	response.Success(w, http.StatusOK, "Cohort retrieved successfully", cohort)
}

// DeleteCohort handles deleting a cohort and its records
// @Summary Delete cohort
// @Description Delete a cohort, its records, and its analyses
// @Tags Cohorts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cohorts/{id} [delete]
func (h *CohortHandler) DeleteCohort(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	userID := userIDPtr(r)

	if err := h.cohortUsecase.DeleteCohort(r.Context(), userID, id); err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		default:
			response.InternalServerError(w, "Failed to delete cohort")
		}
		return
	}

	response.Success(w, http.StatusOK, "Cohort deleted successfully", nil)
}

// ExportCohort handles CSV export of a cohort
// @Summary Export cohort as CSV
// @Description Download the cohort rows as a CSV file
// @Tags Cohorts
// @Security BearerAuth
// @Produce text/csv
// @Param id path string true "Cohort ID"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} response.Response
// @Router /cohorts/{id}/export [get]
func (h *CohortHandler) ExportCohort(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	// Buffer the export so a missing cohort still yields a JSON error
	// instead of half-written CSV headers.
	var buf bytes.Buffer
	if _, err := h.cohortUsecase.ExportCohortCSV(r.Context(), id, &buf); err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		default:
			response.InternalServerError(w, "Failed to export cohort")
		}
		return
	}

	response.CSVHeaders(w, fmt.Sprintf("cohort_%s.csv", id))
	w.Write(buf.Bytes())
}

// GetCohortSummary handles descriptive statistics for a cohort
// @Summary Get cohort summary
// @Description Get descriptive statistics for the cohort's numeric and categorical columns
// @Tags Cohorts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cohorts/{id}/summary [get]
func (h *CohortHandler) GetCohortSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cohort ID", nil)
		return
	}

	summary, err := h.cohortUsecase.GetCohortSummary(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrCohortNotFound:
			response.NotFound(w, "Cohort not found")
		default:
			response.InternalServerError(w, "Failed to get cohort summary")
		}
		return
	}

	response.Success(w, http.StatusOK, "Cohort summary retrieved successfully", summary)
}

func parseUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func userIDPtr(r *http.Request) *uuid.UUID {
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		return &userID
	}
	return nil
}
