// Package footprint - client для Footprint Analytics card API
// (organic rates таблиця для LayerBank reserves)
package footprint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const RequestTimeout = 10 * time.Second

// ReserveRow - один рядок card query: ставки одного reserve.
// Rates - дробові значення (0.05 = 5%).
type ReserveRow struct {
	LatestUpdate       string
	Reserve            string
	LiquidityRate      float64
	VariableBorrowRate float64
}

type cardResponse struct {
	Data struct {
		Rows [][]interface{} `json:"rows"`
		Cols []struct {
			DisplayName string `json:"display_name"`
		} `json:"cols"`
	} `json:"data"`
}

// Client для роботи з Footprint Analytics API
type Client struct {
	baseURL    string
	apiKey     string
	cardID     string
	httpClient *http.Client
}

// NewClient створює новий Footprint API client
func NewClient(baseURL, apiKey, cardID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cardID:  cardID,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// QueryCard виконує card query та повертає reserve rows.
// Очікувані колонки: latest_update, reserve, liquidityrate, variableborrowrate.
func (c *Client) QueryCard(ctx context.Context) ([]ReserveRow, error) {
	endpoint := fmt.Sprintf("%s/%s/query", c.baseURL, c.cardID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response cardResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card response: %w", err)
	}

	rows := make([]ReserveRow, 0, len(response.Data.Rows))
	for _, raw := range response.Data.Rows {
		if len(raw) < 4 {
			continue
		}
		rows = append(rows, ReserveRow{
			LatestUpdate:       toString(raw[0]),
			Reserve:            toString(raw[1]),
			LiquidityRate:      toFloat(raw[2]),
			VariableBorrowRate: toFloat(raw[3]),
		})
	}

	return rows, nil
}

// toString дефенсивно конвертує cell у string
func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// toFloat дефенсивно конвертує cell у float64 (0 для null/невалідних)
func toFloat(v interface{}) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
