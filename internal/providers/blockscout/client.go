package blockscout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/models"
)

const (
	RequestTimeout = 10 * time.Second
	MaxRetries     = 3
	RetryDelay     = 2 * time.Second
)

// Client для роботи з Rootstock Blockscout API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient створює новий Blockscout API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// GetTokenBalances отримує всі баланси токенів для адреси
func (c *Client) GetTokenBalances(ctx context.Context, address string) ([]models.TokenBalance, error) {
	endpoint := fmt.Sprintf("%s/addresses/%s/token-balances", c.baseURL, url.PathEscape(address))

	var response TokenBalancesResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get token balances: %w", err)
	}

	return response, nil
}

// GetNFTs отримує NFT items для адреси (ERC-721, ERC-404, ERC-1155)
func (c *Client) GetNFTs(ctx context.Context, address string) ([]NFTItem, error) {
	lowercase := strings.ToLower(address)
	endpoint := fmt.Sprintf("%s/addresses/%s/nft?type=ERC-721%%2CERC-404%%2CERC-1155", c.baseURL, url.PathEscape(lowercase))

	var response NFTResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get NFT data: %w", err)
	}

	return response.Items, nil
}

// GetTokenInfo отримує інформацію про токен (включно з exchange_rate)
func (c *Client) GetTokenInfo(ctx context.Context, tokenAddress string) (*TokenInfo, error) {
	endpoint := fmt.Sprintf("%s/tokens/%s", c.baseURL, url.PathEscape(tokenAddress))

	var info TokenInfo
	if err := c.doRequest(ctx, endpoint, &info); err != nil {
		return nil, fmt.Errorf("failed to get token info %s: %w", tokenAddress, err)
	}

	return &info, nil
}

// doRequest виконує GET запит з retry логікою
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error

	for i := 0; i < MaxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(RetryDelay * time.Duration(i)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)

			// Don't retry on 4xx errors
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return lastErr
			}
			continue
		}

		if err := json.Unmarshal(body, result); err != nil {
			lastErr = fmt.Errorf("failed to unmarshal response: %w", err)
			continue
		}

		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", MaxRetries, lastErr)
}
