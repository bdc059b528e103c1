// Package healthdata is an HTTP client for a biometric export service.
package healthdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/metrics"
)

// Metric names understood by the export service.
const (
	MetricSteps            = "steps"
	MetricSleepHours       = "sleep_hours"
	MetricWeightKg         = "weight_kg"
	MetricRestingHeartRate = "resting_heart_rate"
)

// Client reads daily summaries from the export service.
type Client struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewClient creates a new health data client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  http.DefaultClient,
	}
}

var _ metrics.Provider = (*Client)(nil)

// IsAvailable reports whether a service URL is configured.
func (c *Client) IsAvailable() bool {
	return c.BaseURL != ""
}

// RequestAuthorization checks that the service accepts our key.
func (c *Client) RequestAuthorization(ctx context.Context) error {
	resp, err := c.get(ctx, "/v1/authorization", nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.ErrAuthorizationDenied
	default:
		return statusError(resp)
	}
}

// FetchDay queries the four metrics for day concurrently. A metric that
// fails or has no data is left nil; only cancellation fails the fetch.
func (c *Client) FetchDay(ctx context.Context, day journal.DateKey) (metrics.Snapshot, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var (
		snapshot  metrics.Snapshot
		steps     *float64
		heartRate *float64
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(metric string, dest **float64) {
		g.Go(func() error {
			value, err := c.fetchMetric(gctx, metric, day)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.WarnContext(ctx, "metric query failed",
					slog.String("metric", metric),
					slog.String("day", day.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			*dest = value
			return nil
		})
	}
	fetch(MetricSteps, &steps)
	fetch(MetricSleepHours, &snapshot.SleepHours)
	fetch(MetricWeightKg, &snapshot.WeightKg)
	fetch(MetricRestingHeartRate, &heartRate)

	if err := g.Wait(); err != nil {
		return metrics.Snapshot{}, err
	}

	snapshot.Steps = roundInt(steps)
	snapshot.RestingHeartRate = roundInt(heartRate)
	return snapshot, nil
}

type metricResponse struct {
	Value *float64 `json:"value"`
}

// fetchMetric returns nil, nil when the service has no data for the day.
func (c *Client) fetchMetric(ctx context.Context, metric string, day journal.DateKey) (*float64, error) {
	resp, err := c.get(ctx, "/v1/metrics/"+metric, url.Values{"date": {day.String()}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	default:
		return nil, statusError(resp)
	}

	var body metricResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", metric, err)
	}
	return body.Value, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if !c.IsAvailable() {
		return nil, apperr.ErrProviderUnavailable
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &apperr.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}

// roundInt rounds half away from zero.
func roundInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
