package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-survival-analysis/internal/converter"
	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/domain/entity"
	"go-survival-analysis/internal/domain/repository"
	"go-survival-analysis/internal/plot"
	"go-survival-analysis/internal/service"
	"go-survival-analysis/internal/survival"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrCohortEmpty      = errors.New("cohort has no records to analyze")
	ErrFitterFailed     = errors.New("survival fitter request failed")
)

type AnalysisUsecase interface {
	RunAnalysis(ctx context.Context, userID *uuid.UUID, cohortID uuid.UUID, req *dto.RunAnalysisRequest) (*dto.AnalysisResponse, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*dto.AnalysisResponse, error)
	ListAnalyses(ctx context.Context, cohortID uuid.UUID) ([]dto.AnalysisResponse, error)
	CheckAssumptions(ctx context.Context, id uuid.UUID) ([]dto.AssumptionResponse, error)
}

type analysisUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cohortRepo   repository.CohortRepository
	recordRepo   repository.PatientRecordRepository
	analysisRepo repository.AnalysisRepository
	auditService service.AuditService
	fitter       survival.Fitter
	resultsDir   string
}

func NewAnalysisUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cohortRepo repository.CohortRepository,
	recordRepo repository.PatientRecordRepository,
	analysisRepo repository.AnalysisRepository,
	auditService service.AuditService,
	fitter survival.Fitter,
	resultsDir string,
) AnalysisUsecase {
	return &analysisUsecase{
		db:           db,
		log:          log,
		cohortRepo:   cohortRepo,
		recordRepo:   recordRepo,
		analysisRepo: analysisRepo,
		auditService: auditService,
		fitter:       fitter,
		resultsDir:   resultsDir,
	}
}

// RunAnalysis fits a Cox model against the cohort through the external
// fitter, renders the hazard ratio and survival curve plots, and persists
// the estimates. A fitter failure is recorded as a failed analysis row
// before the error is surfaced; a plot rendering failure aborts the run
// without persisting anything.
func (u *analysisUsecase) RunAnalysis(ctx context.Context, userID *uuid.UUID, cohortID uuid.UUID, req *dto.RunAnalysisRequest) (*dto.AnalysisResponse, error) {
	cohort, err := u.cohortRepo.FindByID(ctx, u.db, cohortID)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	records, err := u.recordRepo.FindByCohortID(ctx, u.db, cohortID)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrCohortEmpty
	}

	ds, err := survival.Encode(records)
	if err != nil {
		u.log.Warnf("Failed to encode dataset: %+v", err)
		return nil, err
	}

	stratifyBy := req.StratifyBy
	if stratifyBy == "" {
		stratifyBy = "treatment"
	}

	fit, err := u.fitter.Fit(ctx, ds)
	if err != nil {
		u.log.Warnf("Fitter rejected cohort %s: %+v", cohortID, err)
		u.recordFailure(ctx, userID, cohortID, err)
		return nil, ErrFitterFailed
	}

	analysis := &entity.Analysis{
		ID:              uuid.New(),
		CohortID:        cohortID,
		Status:          entity.AnalysisStatusCompleted,
		Concordance:     fit.Concordance,
		LogLikelihood:   fit.LogLikelihood,
		NumObservations: fit.NumObservations,
		NumEvents:       fit.NumEvents,
		CreatedBy:       userID,
	}

	for _, c := range fit.Coefficients {
		analysis.Coefficients = append(analysis.Coefficients, entity.AnalysisCoefficient{
			AnalysisID:  analysis.ID,
			Covariate:   c.Covariate,
			Coef:        c.Coef,
			StdErr:      c.StdErr,
			HazardRatio: c.HazardRatio,
			CILower:     c.CILower,
			CIUpper:     c.CIUpper,
			PValue:      c.PValue,
		})
	}

	hazardPath, err := u.renderHazardPlot(analysis.ID, fit.Coefficients)
	if err != nil {
		u.log.Warnf("Failed to render hazard ratio plot: %+v", err)
		return nil, err
	}
	analysis.HazardPlotPath = hazardPath

	curves, err := u.fitter.SurvivalCurves(ctx, ds, stratifyBy)
	if err != nil {
		u.log.Warnf("Failed to fetch survival curves: %+v", err)
		u.recordFailure(ctx, userID, cohortID, err)
		return nil, ErrFitterFailed
	}

	curvesPath, err := u.renderCurvesPlot(analysis.ID, curves, stratifyBy)
	if err != nil {
		u.log.Warnf("Failed to render survival curves plot: %+v", err)
		return nil, err
	}
	analysis.CurvesPlotPath = curvesPath

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.analysisRepo.Create(ctx, tx, analysis); err != nil {
		u.log.Warnf("Failed to create analysis: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, userID, entity.AuditActionAnalysisRun, "analysis", analysis.ID.String(), map[string]interface{}{
		"cohort_id":   cohortID.String(),
		"status":      analysis.Status,
		"concordance": analysis.Concordance,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AnalysisToResponse(analysis), nil
}

func (u *analysisUsecase) GetAnalysis(ctx context.Context, id uuid.UUID) (*dto.AnalysisResponse, error) {
	analysis, err := u.analysisRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find analysis: %+v", err)
		return nil, err
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	return converter.AnalysisToResponse(analysis), nil
}

func (u *analysisUsecase) ListAnalyses(ctx context.Context, cohortID uuid.UUID) ([]dto.AnalysisResponse, error) {
	cohort, err := u.cohortRepo.FindByID(ctx, u.db, cohortID)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	analyses, err := u.analysisRepo.FindByCohortID(ctx, u.db, cohortID)
	if err != nil {
		u.log.Warnf("Failed to list analyses: %+v", err)
		return nil, err
	}

	return converter.AnalysesToResponses(analyses), nil
}

// CheckAssumptions re-encodes the analysis's cohort and asks the fitter for
// the proportional hazards test per covariate.
func (u *analysisUsecase) CheckAssumptions(ctx context.Context, id uuid.UUID) ([]dto.AssumptionResponse, error) {
	analysis, err := u.analysisRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find analysis: %+v", err)
		return nil, err
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	records, err := u.recordRepo.FindByCohortID(ctx, u.db, analysis.CohortID)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrCohortEmpty
	}

	ds, err := survival.Encode(records)
	if err != nil {
		u.log.Warnf("Failed to encode dataset: %+v", err)
		return nil, err
	}

	results, err := u.fitter.CheckAssumptions(ctx, ds)
	if err != nil {
		u.log.Warnf("Failed to check assumptions: %+v", err)
		return nil, ErrFitterFailed
	}

	responses := make([]dto.AssumptionResponse, len(results))
	for i, r := range results {
		responses[i] = dto.AssumptionResponse{
			Covariate: r.Covariate,
			PValue:    r.PValue,
			Violated:  r.Violated,
		}
	}

	return responses, nil
}

// recordFailure persists a failed analysis row so the run is visible in the
// cohort's history. Best effort; the original fit error is what the caller
// sees.
func (u *analysisUsecase) recordFailure(ctx context.Context, userID *uuid.UUID, cohortID uuid.UUID, fitErr error) {
	analysis := &entity.Analysis{
		ID:          uuid.New(),
		CohortID:    cohortID,
		Status:      entity.AnalysisStatusFailed,
		ErrorDetail: fitErr.Error(),
		CreatedBy:   userID,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.analysisRepo.Create(ctx, tx, analysis); err != nil {
		u.log.Warnf("Failed to record failed analysis: %+v", err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
	}
}

func (u *analysisUsecase) renderHazardPlot(analysisID uuid.UUID, coefs []survival.Coefficient) (string, error) {
	if err := os.MkdirAll(u.resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(u.resultsDir, fmt.Sprintf("hazard_ratios_%s.png", analysisID))
	if err := plot.HazardRatios(coefs, path); err != nil {
		return "", fmt.Errorf("render hazard ratio plot: %w", err)
	}
	return path, nil
}

func (u *analysisUsecase) renderCurvesPlot(analysisID uuid.UUID, curves []survival.Curve, stratifyBy string) (string, error) {
	if err := os.MkdirAll(u.resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(u.resultsDir, fmt.Sprintf("survival_curves_%s.png", analysisID))
	title := fmt.Sprintf("Survival curves by %s", stratifyBy)
	if err := plot.SurvivalCurves(curves, title, path); err != nil {
		return "", fmt.Errorf("render survival curves plot: %w", err)
	}
	return path, nil
}
