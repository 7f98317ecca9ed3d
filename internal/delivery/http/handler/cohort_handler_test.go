package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/usecase"
	"go-survival-analysis/pkg/response"
	"go-survival-analysis/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCohortUsecase struct {
	cohort  *dto.CohortResponse
	summary *dto.CohortSummaryResponse
	csv     string
	err     error
}

func (s *stubCohortUsecase) GenerateCohort(ctx context.Context, userID *uuid.UUID, req *dto.GenerateCohortRequest) (*dto.CohortResponse, error) {
	return s.cohort, s.err
}

func (s *stubCohortUsecase) GetCohort(ctx context.Context, id uuid.UUID) (*dto.CohortResponse, error) {
	return s.cohort, s.err
}

func (s *stubCohortUsecase) ListCohorts(ctx context.Context, page, limit int) ([]dto.CohortResponse, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []dto.CohortResponse{*s.cohort}, 1, nil
}

func (s *stubCohortUsecase) DeleteCohort(ctx context.Context, userID *uuid.UUID, id uuid.UUID) error {
	return s.err
}

func (s *stubCohortUsecase) ExportCohortCSV(ctx context.Context, id uuid.UUID, w io.Writer) (*dto.CohortResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	w.Write([]byte(s.csv))
	return s.cohort, nil
}

func (s *stubCohortUsecase) GetCohortSummary(ctx context.Context, id uuid.UUID) (*dto.CohortSummaryResponse, error) {
	return s.summary, s.err
}

func newCohortHandler(stub *stubCohortUsecase) *CohortHandler {
	return NewCohortHandler(stub, validator.NewValidator())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGenerateCohortValidation(t *testing.T) {
	h := newCohortHandler(&stubCohortUsecase{})

	// Missing name and non-positive size must be rejected before the usecase runs
	body := `{"size": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cohorts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GenerateCohort(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestGenerateCohortSuccess(t *testing.T) {
	cohort := &dto.CohortResponse{ID: uuid.New(), Name: "trial-1", Seed: 42, Size: 100}
	h := newCohortHandler(&stubCohortUsecase{cohort: cohort})

	body := `{"name": "trial-1", "size": 100, "seed": 42}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cohorts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GenerateCohort(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestGetCohortNotFound(t *testing.T) {
	h := newCohortHandler(&stubCohortUsecase{err: usecase.ErrCohortNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cohorts/x", nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.New().String()})
	rec := httptest.NewRecorder()

	h.GetCohort(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCohortInvalidID(t *testing.T) {
	h := newCohortHandler(&stubCohortUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cohorts/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	h.GetCohort(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCohortCSV(t *testing.T) {
	id := uuid.New()
	csv := "patient_id,survival_time,event,age,gender,treatment,biomarker1,biomarker2\n1,100.00,1,45,Male,B,50.00,99.00\n"
	h := newCohortHandler(&stubCohortUsecase{cohort: &dto.CohortResponse{ID: id}, csv: csv})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cohorts/x/export", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()

	h.ExportCohort(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cohort_"+id.String())
	assert.Equal(t, csv, rec.Body.String())
}

func TestExportCohortNotFound(t *testing.T) {
	h := newCohortHandler(&stubCohortUsecase{err: usecase.ErrCohortNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cohorts/x/export", nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.New().String()})
	rec := httptest.NewRecorder()

	h.ExportCohort(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
