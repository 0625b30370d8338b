// Package balance - токен-баланси адреси: Blockscout для токенів,
// Rootstock Explorer для нативного rBTC.
package balance

import (
	"context"
	"fmt"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/blockscout"
	"github.com/GabrielaCA88/ibitracker/internal/providers/explorer"
)

// Нативний rBTC у портфелі: Blockscout не знає нативного активу,
// тому ціна береться з WRBTC контракту
const (
	nativeAddress = "0x0000000000000000000000000000000000000000"
	nativeIconURL = "https://assets.coingecko.com/coins/images/5070/small/RBTC-logo.png?1718152038"
)

// TokenSource - джерело токен-балансів та метаданих (Blockscout)
type TokenSource interface {
	GetTokenBalances(ctx context.Context, address string) ([]models.TokenBalance, error)
	GetTokenInfo(ctx context.Context, tokenAddress string) (*blockscout.TokenInfo, error)
}

// NativeSource - джерело нативного rBTC балансу (Explorer)
type NativeSource interface {
	GetNativeBalance(ctx context.Context, address string) (*explorer.NativeBalance, error)
}

// Service збирає баланси адреси
type Service struct {
	tokens TokenSource
	native NativeSource
	// wrbtcAddress - адреса WRBTC контракту для price fallback
	wrbtcAddress string
	log          *logger.Logger
}

// NewService створює balance service
func NewService(tokens TokenSource, native NativeSource, wrbtcAddress string, log *logger.Logger) *Service {
	return &Service{
		tokens:       tokens,
		native:       native,
		wrbtcAddress: wrbtcAddress,
		log:          log,
	}
}

// GetTokenBalances повертає всі токен-баланси адреси як є,
// включно з ERC-721 (їх використовує evidence перевірка)
func (s *Service) GetTokenBalances(ctx context.Context, address string) ([]models.TokenBalance, error) {
	balances, err := s.tokens.GetTokenBalances(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balances for %s: %w", address, err)
	}
	return balances, nil
}

// GetERC20Balances повертає токен-баланси без ERC-721
// (NFT обробляються окремим сервісом)
func (s *Service) GetERC20Balances(ctx context.Context, address string) ([]models.TokenBalance, error) {
	balances, err := s.GetTokenBalances(ctx, address)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.TokenBalance, 0, len(balances))
	for _, balance := range balances {
		if balance.Token.Type == models.TokenTypeERC721 {
			continue
		}
		filtered = append(filtered, balance)
	}
	return filtered, nil
}

// GetPortfolioBalances повертає баланси для portfolio view: ERC-721
// виключені, нативний rBTC вставлений на початок списку з ціною від
// WRBTC, а токен RBTC перейменований у WRBTC щоб не дублювати назву.
func (s *Service) GetPortfolioBalances(ctx context.Context, address string) ([]models.TokenBalance, error) {
	balances, err := s.GetERC20Balances(ctx, address)
	if err != nil {
		return nil, err
	}

	native, err := s.native.GetNativeBalance(ctx, address)
	if err != nil {
		s.log.Warn("Could not fetch native rBTC balance for %s: %v", address, err)
	}
	if native == nil {
		return balances, nil
	}

	nativeBalance := models.TokenBalance{
		Token: models.Token{
			AddressHash:  nativeAddress,
			Name:         "Rootstock Smart Bitcoin",
			Symbol:       "rBTC",
			Type:         models.TokenTypeNative,
			Decimals:     "18",
			ExchangeRate: s.rbtcPrice(ctx, balances),
			IconURL:      nativeIconURL,
		},
		Value: native.Balance,
	}

	// RBTC токен - це wrapped актив, перейменовуємо щоб відрізнявся
	// від нативного rBTC
	for i := range balances {
		if balances[i].Token.Symbol == "RBTC" {
			balances[i].Token.Name = "Wrapped Rootstock Smart Bitcoin"
			balances[i].Token.Symbol = "WRBTC"
			break
		}
	}

	return append([]models.TokenBalance{nativeBalance}, balances...), nil
}

// rbtcPrice шукає ціну rBTC серед наявних токенів (RBTC/WRBTC),
// з fallback на WRBTC контракт у Blockscout
func (s *Service) rbtcPrice(ctx context.Context, balances []models.TokenBalance) string {
	for _, balance := range balances {
		if balance.Token.Symbol == "RBTC" || balance.Token.Symbol == "WRBTC" {
			if balance.Token.ExchangeRate != "" {
				return balance.Token.ExchangeRate
			}
		}
	}

	info, err := s.tokens.GetTokenInfo(ctx, s.wrbtcAddress)
	if err != nil {
		s.log.Warn("Could not fetch WRBTC price from Blockscout: %v", err)
		return ""
	}
	if info == nil || info.ExchangeRate == "" {
		s.log.Warn("No exchange_rate in WRBTC token info")
		return ""
	}

	s.log.Info("Retrieved WRBTC price from Blockscout: $%s", info.ExchangeRate)
	return info.ExchangeRate
}
