package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-gamedash/components/game"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Range      string
	HTTPClient *http.Client
}

// HTTPClient pulls the analytics week from a remote BI endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	rng     string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting live analytics APIs.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	rng := cfg.Range
	if rng == "" {
		rng = "7d"
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		rng:     rng,
		client:  httpClient,
	}, nil
}

// FetchWeek implements Client by calling the remote analytics endpoint.
func (c *HTTPClient) FetchWeek(ctx context.Context) (game.AnalyticsData, error) {
	var resp weekResponse
	if err := c.do(ctx, http.MethodPost, "/analytics/query", weekRequest{Range: c.rng}, &resp); err != nil {
		return game.AnalyticsData{}, err
	}
	return resp.toData(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analytics: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type weekRequest struct {
	Range string `json:"range"`
}

type usersPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type revenuePoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

type metric struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Change float64 `json:"change_pct"`
}

type weekResponse struct {
	Users   []usersPoint   `json:"users"`
	Revenue []revenuePoint `json:"revenue"`
	Metrics []metric       `json:"metrics"`
}

func (r weekResponse) toData() game.AnalyticsData {
	out := game.AnalyticsData{
		DailyUsers:  make([]game.DailyUsers, len(r.Users)),
		Revenue:     make([]game.Revenue, len(r.Revenue)),
		Performance: make([]game.Performance, len(r.Metrics)),
	}
	for i, p := range r.Users {
		out.DailyUsers[i] = game.DailyUsers{Date: p.Day, Users: p.Count}
	}
	for i, p := range r.Revenue {
		out.Revenue[i] = game.Revenue{Date: p.Day, Amount: p.Amount}
	}
	for i, m := range r.Metrics {
		out.Performance[i] = game.Performance{Metric: m.Name, Value: m.Value, Change: m.Change}
	}
	return out
}
