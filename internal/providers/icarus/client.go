// Package icarus - client для Icarus Tools analytics API
// (оцінка Uniswap-style LP позицій по token id)
package icarus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const RequestTimeout = 10 * time.Second

// PositionEvent - одна подія позиції з поточними значеннями
type PositionEvent struct {
	Owner         string        `json:"owner"`
	CurrentValues CurrentValues `json:"current_values"`
}

type CurrentValues struct {
	TotalValueCurrent float64 `json:"total_value_current"`
}

type PositionProfit struct {
	UncollectedUSDFees float64 `json:"uncollected_usd_fees"`
}

// Position - аналітика однієї LP позиції
type Position struct {
	PositionEvents   []PositionEvent `json:"position_events"`
	CurrentLiquidity json.Number     `json:"current_liquidity"`
	PositionProfit   PositionProfit  `json:"position_profit"`
}

type positionResponse struct {
	Result struct {
		Position *Position `json:"position"`
	} `json:"result"`
}

// Client для роботи з Icarus Tools API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient створює новий Icarus API client
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// GetPosition отримує аналітику позиції по token id.
// Повертає nil без помилки якщо позиції немає у відповіді.
func (c *Client) GetPosition(ctx context.Context, tokenID int64) (*Position, error) {
	payload := map[string]interface{}{
		"params": []map[string]interface{}{
			{"token_id": tokenID},
		},
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

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

	var response positionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal position response: %w", err)
	}

	return response.Result.Position, nil
}
