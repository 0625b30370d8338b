// Package midas - client для Midas API (APY feed yield-bearing токенів)
package midas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const RequestTimeout = 10 * time.Second

// Client для роботи з Midas API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient створює новий Midas API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// GetAPYs отримує APY по символах токенів ("mbtc" -> 0.042).
// Значення дробові, не відсотки.
func (c *Client) GetAPYs(ctx context.Context) (map[string]float64, error) {
	endpoint := fmt.Sprintf("%s/apys", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	apys := make(map[string]float64)
	if err := json.Unmarshal(body, &apys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal apys response: %w", err)
	}

	return apys, nil
}
