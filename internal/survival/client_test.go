package survival

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-survival-analysis/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(config.FitterConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return client, srv
}

func TestClientFit(t *testing.T) {
	var gotPath string
	var gotReq fitRequest

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(FitResult{
			Coefficients: []Coefficient{
				{Covariate: "treatment", Coef: -0.9, HazardRatio: 0.41, CILower: 0.3, CIUpper: 0.55, PValue: 0.001},
			},
			Concordance:     0.72,
			NumObservations: 3,
			NumEvents:       2,
		})
	}))
	defer srv.Close()

	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	result, err := client.Fit(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, "/v1/cox/fit", gotPath)
	assert.Equal(t, "duration", gotReq.DurationCol)
	assert.Len(t, gotReq.Rows, 3)
	assert.Len(t, gotReq.Rows[0], 5)
	assert.Equal(t, 0.72, result.Concordance)
	require.Len(t, result.Coefficients, 1)
	assert.Equal(t, 0.41, result.Coefficients[0].HazardRatio)
}

func TestClientSurvivalCurves(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cox/curves", r.URL.Path)
		var req curvesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "treatment", req.StrataCol)
		json.NewEncoder(w).Encode([]Curve{
			{Label: "A", Times: []float64{0, 100}, Probabilities: []float64{1, 0.9}},
			{Label: "B", Times: []float64{0, 100}, Probabilities: []float64{1, 0.95}},
		})
	}))
	defer srv.Close()

	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	curves, err := client.SurvivalCurves(context.Background(), ds, "treatment")
	require.NoError(t, err)
	require.Len(t, curves, 2)
	assert.Equal(t, "A", curves[0].Label)
}

func TestClientSurvivalCurvesUnknownStratum(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	_, err = client.SurvivalCurves(context.Background(), ds, "biomarker1")
	assert.Error(t, err)
}

func TestClientCheckAssumptions(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cox/assumptions", r.URL.Path)
		json.NewEncoder(w).Encode([]AssumptionResult{
			{Covariate: "age", PValue: 0.4, Violated: false},
		})
	}))
	defer srv.Close()

	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	results, err := client.CheckAssumptions(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Violated)
}

func TestClientSurfacesServiceErrors(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "singular design matrix", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	ds, err := Encode(sampleRecords())
	require.NoError(t, err)

	_, err = client.Fit(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "singular design matrix")
}
