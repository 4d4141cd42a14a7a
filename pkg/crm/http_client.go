package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	salesboard "github.com/goliatone/go-salesboard/components/salesboard"
)

// HTTPConfig configures the HTTP CRM client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads dashboard sections from a CRM exposing REST endpoints.
// Every endpoint answers with {"data": ...}.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a live CRM.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, goerrors.New("crm: base url is required", goerrors.CategoryBadInput)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) FetchKPIs(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.KPICard, error) {
	var cards []salesboard.KPICard
	if err := c.get(ctx, "/kpis", query.Values(), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *HTTPClient) FetchPipeline(ctx context.Context, query salesboard.DashboardQuery) (*salesboard.PipelineData, error) {
	var pipeline *salesboard.PipelineData
	if err := c.get(ctx, "/pipeline", query.Values(), &pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func (c *HTTPClient) FetchReps(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.RepPerformance, error) {
	var reps []salesboard.RepPerformance
	if err := c.get(ctx, "/reps", query.Values(), &reps); err != nil {
		return nil, err
	}
	return reps, nil
}

func (c *HTTPClient) FetchActivities(ctx context.Context, query salesboard.DashboardQuery) ([]salesboard.Activity, error) {
	var activities []salesboard.Activity
	if err := c.get(ctx, "/activities", query.Values(), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *HTTPClient) FetchHeader(ctx context.Context, viewer salesboard.ViewerContext) (salesboard.HeaderData, error) {
	params := url.Values{}
	if viewer.UserID != "" {
		params.Set("user_id", viewer.UserID)
	}
	if viewer.Locale != "" {
		params.Set("locale", viewer.Locale)
	}
	var header salesboard.HeaderData
	if err := c.get(ctx, "/header", params, &header); err != nil {
		return salesboard.HeaderData{}, err
	}
	return header, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "crm: build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "crm: http request").
			WithMetadata(map[string]any{"path": path})
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		category := goerrors.CategoryExternal
		if resp.StatusCode == http.StatusNotFound {
			category = goerrors.CategoryNotFound
		}
		return goerrors.New("crm: remote error "+http.StatusText(resp.StatusCode), category).
			WithMetadata(map[string]any{"path": path, "status": resp.StatusCode, "body": strings.TrimSpace(buf.String())})
	}
	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "crm: decode response").
			WithMetadata(map[string]any{"path": path})
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(body.Data, target); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "crm: decode "+strings.TrimPrefix(path, "/")).
			WithMetadata(map[string]any{"path": path})
	}
	return nil
}
