// Package explorer - client для Rootstock Explorer API v3 (нативний rBTC баланс)
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const RequestTimeout = 10 * time.Second

// NativeBalance - нативний rBTC баланс адреси.
// Balance вже відформатований як decimal string у v3 API.
type NativeBalance struct {
	Balance  string `json:"balance"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals string `json:"decimals"`
	IsNative bool   `json:"is_native"`
}

type balancesResponse struct {
	Data []struct {
		Balance string `json:"balance"`
	} `json:"data"`
}

// Client для роботи з Rootstock Explorer API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient створює новий Explorer API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// GetNativeBalance отримує останній rBTC баланс для адреси.
// Повертає nil без помилки якщо балансу немає.
func (c *Client) GetNativeBalance(ctx context.Context, address string) (*NativeBalance, error) {
	// Explorer API вимагає lowercase адреси
	lowercase := strings.ToLower(address)
	endpoint := fmt.Sprintf("%s/balances/address/%s?take=1", c.baseURL, url.PathEscape(lowercase))

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

	var response balancesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Data) == 0 {
		return nil, nil
	}

	return &NativeBalance{
		Balance:  response.Data[0].Balance,
		Symbol:   "rBTC",
		Name:     "Rootstock Smart Bitcoin",
		Decimals: "18",
		IsNative: true,
	}, nil
}
