package converter

import (
	"testing"
	"time"

	"go-survival-analysis/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohortToResponse(t *testing.T) {
	id := uuid.New()
	creator := uuid.New()
	cohort := &entity.Cohort{
		ID:            id,
		Name:          "trial-1",
		Seed:          42,
		Size:          500,
		EventCount:    350,
		CensoredCount: 150,
		CreatedBy:     &creator,
		CreatedAt:     time.Now(),
	}

	resp := CohortToResponse(cohort)
	require.NotNil(t, resp)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, 350, resp.EventCount)
	assert.InDelta(t, 0.7, resp.EventRate, 1e-9)
}

func TestCohortToResponseNil(t *testing.T) {
	assert.Nil(t, CohortToResponse(nil))
}

func TestUserToResponseRoleNames(t *testing.T) {
	admin := UserToResponse(&entity.User{RoleID: entity.RoleIDAdmin})
	analyst := UserToResponse(&entity.User{RoleID: entity.RoleIDAnalyst})

	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, entity.RoleAnalyst, analyst.Role)
}

func TestAnalysisToResponseCoefficients(t *testing.T) {
	analysis := &entity.Analysis{
		ID:       uuid.New(),
		CohortID: uuid.New(),
		Status:   entity.AnalysisStatusCompleted,
		Coefficients: []entity.AnalysisCoefficient{
			{Covariate: "treatment", HazardRatio: 0.41, CILower: 0.3, CIUpper: 0.55},
		},
	}

	resp := AnalysisToResponse(analysis)
	require.NotNil(t, resp)
	require.Len(t, resp.Coefficients, 1)
	assert.Equal(t, "treatment", resp.Coefficients[0].Covariate)
	assert.Equal(t, 0.41, resp.Coefficients[0].HazardRatio)
}
