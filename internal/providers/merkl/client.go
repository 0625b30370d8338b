package merkl

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

// Client для роботи з Merkl API v4
type Client struct {
	baseURL    string
	chainID    string
	httpClient *http.Client
}

// NewClient створює новий Merkl API client
func NewClient(baseURL, chainID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		chainID: chainID,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// WithTimeout повертає копію клієнта з іншим таймаутом
// (використовується для lightweight probe з коротким таймаутом)
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return &Client{
		baseURL:    c.baseURL,
		chainID:    c.chainID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetUserRewards отримує claimable винагороди для адреси
func (c *Client) GetUserRewards(ctx context.Context, address string) ([]ChainRewards, error) {
	lowercase := strings.ToLower(address)

	params := url.Values{}
	params.Set("chainId", c.chainID)
	params.Set("test", "false")
	params.Set("claimableOnly", "true")
	params.Set("breakdownPage", "0")

	endpoint := fmt.Sprintf("%s/users/%s/rewards?%s", c.baseURL, url.PathEscape(lowercase), params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// Merkl повертає масив chain об'єктів, але одиночний об'єкт теж зустрічається
	var chains []ChainRewards
	if err := json.Unmarshal(body, &chains); err == nil {
		return chains, nil
	}

	var single ChainRewards
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rewards response: %w", err)
	}
	return []ChainRewards{single}, nil
}

// GetOpportunityByCampaign отримує zero-or-one opportunity для campaign id.
// Повертає nil без помилки якщо opportunity не знайдена.
func (c *Client) GetOpportunityByCampaign(ctx context.Context, campaignID string) (*OpportunityData, error) {
	params := url.Values{}
	params.Set("campaignId", campaignID)

	endpoint := fmt.Sprintf("%s/opportunities/?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// Відповідь може бути списком opportunities або одиночним об'єктом
	var list []OpportunityData
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}

	var single OpportunityData
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunity response: %w", err)
	}
	if single.ID == "" {
		return nil, nil
	}
	return &single, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
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

	return io.ReadAll(resp.Body)
}
