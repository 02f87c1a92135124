// Package carboninterface is an HTTP client for the Carbon Interface
// estimates API.
package carboninterface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://www.carboninterface.com/api/v1"

	maxBodyBytes    = 1 << 20
	maxErrBodyBytes = 512
)

// Client posts estimate requests and returns carbon_kg as an exact decimal.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty baseURL means DefaultBaseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "carboninterface"),
	}
}

// Estimate posts req to /estimates and returns data.attributes.carbon_kg.
// Errors are *NetworkError, *UpstreamError or *MalformedResponseError.
func (c *Client) Estimate(ctx context.Context, req Request) (decimal.Decimal, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("carboninterface: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimates", bytes.NewReader(payload))
	if err != nil {
		return decimal.Zero, fmt.Errorf("carboninterface: create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "estimate request", slog.String("type", req.EstimateType()))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return decimal.Zero, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return decimal.Zero, &NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, &UpstreamError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrBodyBytes)}
	}

	kg, err := parseCarbonKg(body)
	if err != nil {
		return decimal.Zero, err
	}

	c.log.DebugContext(ctx, "estimate response",
		slog.String("type", req.EstimateType()),
		slog.Int("status", resp.StatusCode),
		slog.String("carbon_kg", kg.String()),
		slog.Duration("duration", time.Since(start)),
	)

	return kg, nil
}

// parseCarbonKg accepts carbon_kg as either a JSON string or a JSON number.
func parseCarbonKg(body []byte) (decimal.Decimal, error) {
	var resp estimateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return decimal.Zero, &MalformedResponseError{Reason: "decode json", Err: err}
	}

	if resp.Data == nil || resp.Data.Attributes == nil {
		return decimal.Zero, &MalformedResponseError{Reason: "missing data.attributes"}
	}

	raw := bytes.TrimSpace(resp.Data.Attributes.CarbonKg)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, &MalformedResponseError{Reason: "missing carbon_kg"}
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, &MalformedResponseError{Reason: "decode carbon_kg", Err: err}
		}
	}

	kg, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, &MalformedResponseError{Reason: fmt.Sprintf("carbon_kg %q is not a decimal", text), Err: err}
	}

	return kg, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
