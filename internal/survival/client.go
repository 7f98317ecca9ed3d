package survival

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-survival-analysis/config"
)

// Client talks to the external fitting service over JSON/HTTP. It is the
// only Fitter implementation shipped with the service; tests substitute
// their own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.FitterConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Wire format shared by all three endpoints.
type fitRequest struct {
	DurationCol string      `json:"duration_col"`
	EventCol    string      `json:"event_col"`
	Covariates  []string    `json:"covariates"`
	Durations   []float64   `json:"durations"`
	Events      []int       `json:"events"`
	Rows        [][]float64 `json:"rows"`
}

type curvesRequest struct {
	Durations  []float64 `json:"durations"`
	Events     []int     `json:"events"`
	StrataCol  string    `json:"strata_col"`
	StrataVals []string  `json:"strata_values"`
}

func (c *Client) Fit(ctx context.Context, ds *Dataset) (*FitResult, error) {
	var result FitResult
	if err := c.post(ctx, "/v1/cox/fit", newFitRequest(ds), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SurvivalCurves(ctx context.Context, ds *Dataset, stratifyBy string) ([]Curve, error) {
	labels, ok := ds.Labels[stratifyBy]
	if !ok {
		return nil, fmt.Errorf("dataset has no categorical column %q to stratify by", stratifyBy)
	}

	req := curvesRequest{
		Durations:  ds.Durations,
		Events:     ds.Events,
		StrataCol:  stratifyBy,
		StrataVals: labels,
	}

	var curves []Curve
	if err := c.post(ctx, "/v1/cox/curves", req, &curves); err != nil {
		return nil, err
	}
	return curves, nil
}

func (c *Client) CheckAssumptions(ctx context.Context, ds *Dataset) ([]AssumptionResult, error) {
	var results []AssumptionResult
	if err := c.post(ctx, "/v1/cox/assumptions", newFitRequest(ds), &results); err != nil {
		return nil, err
	}
	return results, nil
}

func newFitRequest(ds *Dataset) fitRequest {
	rows := make([][]float64, len(ds.Durations))
	for i := range rows {
		rows[i] = ds.Matrix.RawRowView(i)
	}
	return fitRequest{
		DurationCol: ds.DurationCol,
		EventCol:    ds.EventCol,
		Covariates:  ds.Covariates,
		Durations:   ds.Durations,
		Events:      ds.Events,
		Rows:        rows,
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode fitter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build fitter request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fitter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fitter returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode fitter response: %w", err)
	}
	return nil
}
