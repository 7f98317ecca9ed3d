package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go-survival-analysis/config"
	"go-survival-analysis/internal/converter"
	"go-survival-analysis/internal/delivery/dto"
	"go-survival-analysis/internal/domain/entity"
	"go-survival-analysis/internal/domain/repository"
	"go-survival-analysis/internal/export"
	"go-survival-analysis/internal/service"
	"go-survival-analysis/internal/simulation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"
)

var (
	ErrCohortNotFound = errors.New("cohort not found")
)

const summaryCacheTTL = time.Hour

type CohortUsecase interface {
	GenerateCohort(ctx context.Context, userID *uuid.UUID, req *dto.GenerateCohortRequest) (*dto.CohortResponse, error)
	GetCohort(ctx context.Context, id uuid.UUID) (*dto.CohortResponse, error)
	ListCohorts(ctx context.Context, page, limit int) ([]dto.CohortResponse, int64, error)
	DeleteCohort(ctx context.Context, userID *uuid.UUID, id uuid.UUID) error
	ExportCohortCSV(ctx context.Context, id uuid.UUID, w io.Writer) (*dto.CohortResponse, error)
	GetCohortSummary(ctx context.Context, id uuid.UUID) (*dto.CohortSummaryResponse, error)
}

type cohortUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cohortRepo   repository.CohortRepository
	recordRepo   repository.PatientRecordRepository
	auditService service.AuditService
	redisClient  *redis.Client
	simDefaults  config.SimulationConfig
}

func NewCohortUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cohortRepo repository.CohortRepository,
	recordRepo repository.PatientRecordRepository,
	auditService service.AuditService,
	redisClient *redis.Client,
	simDefaults config.SimulationConfig,
) CohortUsecase {
	return &cohortUsecase{
		db:           db,
		log:          log,
		cohortRepo:   cohortRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
		redisClient:  redisClient,
		simDefaults:  simDefaults,
	}
}

// GenerateCohort draws a synthetic cohort and persists it together with its
// generation parameters, so the exact dataset can be reproduced from the row
// alone.
func (u *cohortUsecase) GenerateCohort(ctx context.Context, userID *uuid.UUID, req *dto.GenerateCohortRequest) (*dto.CohortResponse, error) {
	cfg := u.baseConfig()
	applyOverrides(&cfg, req.Overrides)

	records, err := simulation.Generate(req.Size, req.Seed, cfg)
	if err != nil {
		return nil, err
	}
	summary := simulation.Summarize(records)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cohort := &entity.Cohort{
		ID:            uuid.New(),
		Name:          req.Name,
		Seed:          req.Seed,
		Size:          req.Size,
		Params:        simulationParams(cfg),
		EventCount:    summary.Events,
		CensoredCount: summary.Censored,
		CreatedBy:     userID,
	}

	if err := u.cohortRepo.Create(ctx, tx, cohort); err != nil {
		u.log.Warnf("Failed to create cohort: %+v", err)
		return nil, err
	}

	rows := make([]entity.PatientRecord, len(records))
	for i, r := range records {
		rows[i] = entity.PatientRecord{
			CohortID:     cohort.ID,
			PatientID:    r.PatientID,
			SurvivalTime: r.SurvivalTime,
			Event:        r.Event,
			Age:          r.Age,
			Gender:       r.Gender,
			Treatment:    r.Treatment,
			Biomarker1:   r.Biomarker1,
			Biomarker2:   r.Biomarker2,
		}
	}

	if err := u.recordRepo.CreateBatch(ctx, tx, rows); err != nil {
		u.log.Warnf("Failed to create patient records: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, userID, entity.AuditActionCohortGenerate, "cohort", cohort.ID.String(), map[string]interface{}{
		"name": cohort.Name,
		"seed": cohort.Seed,
		"size": cohort.Size,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CohortToResponse(cohort), nil
}

func (u *cohortUsecase) GetCohort(ctx context.Context, id uuid.UUID) (*dto.CohortResponse, error) {
	cohort, err := u.cohortRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	return converter.CohortToResponse(cohort), nil
}

func (u *cohortUsecase) ListCohorts(ctx context.Context, page, limit int) ([]dto.CohortResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cohorts, total, err := u.cohortRepo.FindAll(ctx, u.db, (page-1)*limit, limit)
	if err != nil {
		u.log.Warnf("Failed to list cohorts: %+v", err)
		return nil, 0, err
	}

	return converter.CohortsToResponses(cohorts), total, nil
}

func (u *cohortUsecase) DeleteCohort(ctx context.Context, userID *uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cohort, err := u.cohortRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return err
	}
	if cohort == nil {
		return ErrCohortNotFound
	}

	if err := u.recordRepo.DeleteByCohortID(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete patient records: %+v", err)
		return err
	}

	if err := u.cohortRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete cohort: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionCohortDelete, "cohort", id.String(), map[string]interface{}{
		"name": cohort.Name,
		"seed": cohort.Seed,
		"size": cohort.Size,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Drop the cached summary; a stale entry would outlive the cohort
	if err := u.redisClient.Del(ctx, summaryCacheKey(id)).Err(); err != nil {
		u.log.Warnf("Failed to invalidate summary cache: %+v", err)
	}

	return nil
}

// ExportCohortCSV streams the cohort rows to w in the canonical column
// order. The cohort is returned so the caller can name the download.
func (u *cohortUsecase) ExportCohortCSV(ctx context.Context, id uuid.UUID, w io.Writer) (*dto.CohortResponse, error) {
	cohort, err := u.cohortRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	records, err := u.recordRepo.FindByCohortID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}

	if err := export.WriteRecords(w, records); err != nil {
		u.log.Warnf("Failed to write CSV export: %+v", err)
		return nil, err
	}

	return converter.CohortToResponse(cohort), nil
}

func (u *cohortUsecase) GetCohortSummary(ctx context.Context, id uuid.UUID) (*dto.CohortSummaryResponse, error) {
	cacheKey := summaryCacheKey(id)
	if cached, err := u.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		summary := &dto.CohortSummaryResponse{}
		if err := json.Unmarshal([]byte(cached), summary); err == nil {
			return summary, nil
		}
		u.log.Warnf("Failed to decode cached summary, recomputing: %+v", err)
	} else if err != redis.Nil {
		u.log.Warnf("Failed to read summary cache: %+v", err)
	}

	cohort, err := u.cohortRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find cohort: %+v", err)
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	records, err := u.recordRepo.FindByCohortID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient records: %+v", err)
		return nil, err
	}

	summary := buildSummary(cohort, records)

	if data, err := json.Marshal(summary); err == nil {
		if err := u.redisClient.Set(ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
			u.log.Warnf("Failed to cache summary: %+v", err)
		}
	}

	return summary, nil
}

func (u *cohortUsecase) baseConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.BaselineHazard = u.simDefaults.BaselineHazard
	cfg.TreatmentA = u.simDefaults.TreatmentA
	cfg.TreatmentB = u.simDefaults.TreatmentB
	cfg.MultiplierFloor = u.simDefaults.MultiplierFloor
	cfg.HorizonDays = u.simDefaults.HorizonDays
	cfg.RecensorProb = u.simDefaults.RecensorProb
	return cfg
}

func applyOverrides(cfg *simulation.Config, o *dto.SimulationOverrides) {
	if o == nil {
		return
	}
	if o.BaselineHazard != nil {
		cfg.BaselineHazard = *o.BaselineHazard
	}
	if o.TreatmentA != nil {
		cfg.TreatmentA = *o.TreatmentA
	}
	if o.TreatmentB != nil {
		cfg.TreatmentB = *o.TreatmentB
	}
	if o.TreatmentC != nil {
		cfg.TreatmentC = *o.TreatmentC
	}
	if o.MultiplierFloor != nil {
		cfg.MultiplierFloor = *o.MultiplierFloor
	}
	if len(o.GenderWeights) > 0 {
		cfg.GenderWeights = o.GenderWeights
	}
	if len(o.TreatmentWeights) > 0 {
		cfg.TreatmentWeights = o.TreatmentWeights
	}
	if o.Recensor != nil {
		cfg.Recensor = *o.Recensor
	}
	if o.RecensorProb != nil {
		cfg.RecensorProb = *o.RecensorProb
	}
}

// simulationParams flattens the generation config into the cohort's jsonb
// params column.
func simulationParams(cfg simulation.Config) entity.JSON {
	return entity.JSON{
		"baseline_hazard":   cfg.BaselineHazard,
		"treatment_a":       cfg.TreatmentA,
		"treatment_b":       cfg.TreatmentB,
		"treatment_c":       cfg.TreatmentC,
		"multiplier_floor":  cfg.MultiplierFloor,
		"horizon_days":      cfg.HorizonDays,
		"censoring_min":     cfg.CensoringMinDays,
		"censoring_max":     cfg.CensoringMaxDays,
		"gender_weights":    cfg.GenderWeights,
		"treatment_weights": cfg.TreatmentWeights,
		"recensor":          cfg.Recensor,
		"recensor_prob":     cfg.RecensorProb,
	}
}

func summaryCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("cohort:summary:%s", id.String())
}

func buildSummary(cohort *entity.Cohort, records []entity.PatientRecord) *dto.CohortSummaryResponse {
	n := len(records)
	survivalTimes := make([]float64, n)
	ages := make([]float64, n)
	biomarker1s := make([]float64, n)
	biomarker2s := make([]float64, n)
	treatmentCounts := map[string]int{}
	genderCounts := map[string]int{}
	events := 0

	for i, r := range records {
		survivalTimes[i] = r.SurvivalTime
		ages[i] = float64(r.Age)
		biomarker1s[i] = r.Biomarker1
		biomarker2s[i] = r.Biomarker2
		treatmentCounts[r.Treatment]++
		genderCounts[r.Gender]++
		if r.Event == 1 {
			events++
		}
	}

	eventRate := 0.0
	if n > 0 {
		eventRate = float64(events) / float64(n)
	}

	return &dto.CohortSummaryResponse{
		CohortID:        cohort.ID,
		Size:            n,
		Events:          events,
		Censored:        n - events,
		EventRate:       eventRate,
		SurvivalTime:    columnStats(survivalTimes),
		Age:             columnStats(ages),
		Biomarker1:      columnStats(biomarker1s),
		Biomarker2:      columnStats(biomarker2s),
		TreatmentCounts: treatmentCounts,
		GenderCounts:    genderCounts,
	}
}

func columnStats(values []float64) dto.ColumnStats {
	if len(values) == 0 {
		return dto.ColumnStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return dto.ColumnStats{
		Mean:   stat.Mean(values, nil),
		Std:    stat.StdDev(values, nil),
		Min:    sorted[0],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}
