// Package yieldtoken - дані yield-bearing токенів Midas: APY з
// Midas API, ціни з токенів Merkl винагород адреси.
package yieldtoken

import (
	"context"
	"strings"

	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
)

// APYSource - джерело Midas APY даних
type APYSource interface {
	GetAPYs(ctx context.Context) (map[string]float64, error)
}

// RewardSource - джерело Merkl винагород (ціни токенів)
type RewardSource interface {
	GetUserRewards(ctx context.Context, address string) ([]merkl.ChainRewards, error)
}

// Service збирає yield token дані для адреси
type Service struct {
	apys    APYSource
	rewards RewardSource
	cache   *cache.Cache
	// tokens - lowercased адреса токена -> Midas APY ключ (напр. "mbtc")
	tokens map[string]string
	log    *logger.Logger
}

// NewService створює yield token service
func NewService(apys APYSource, rewards RewardSource, c *cache.Cache, tokens map[string]string, log *logger.Logger) *Service {
	normalized := make(map[string]string, len(tokens))
	for address, symbol := range tokens {
		normalized[strings.ToLower(address)] = symbol
	}
	return &Service{
		apys:    apys,
		rewards: rewards,
		cache:   c,
		tokens:  normalized,
		log:     log,
	}
}

// GetYieldTokenData повертає Midas токени адреси з APR (відсотки)
// та ціною. Токен потрапляє у результат тільки якщо його ціна
// присутня серед токенів Merkl винагород адреси.
func (s *Service) GetYieldTokenData(ctx context.Context, address string) *models.YieldTokenData {
	result := models.EmptyYieldTokenData()
	result.Address = address

	prices, err := s.rewardTokenPrices(ctx, address)
	if err != nil {
		s.log.Error("❌ Error getting Merkl price data for %s: %v", address, err)
		result.Error = err.Error()
		return result
	}

	aprs := s.midasAPYs(ctx)

	for tokenAddress, symbol := range s.tokens {
		price, ok := prices[tokenAddress]
		if !ok {
			continue
		}

		result.YieldTokens = append(result.YieldTokens, models.YieldToken{
			TokenAddress: tokenAddress,
			TokenSymbol:  symbol,
			Price:        price,
			APR:          aprs[symbol] * 100,
			Protocol:     "Midas",
		})
	}

	result.TotalYieldTokens = len(result.YieldTokens)
	s.log.Info("Yield token data for %s: %d tokens", address, result.TotalYieldTokens)
	return result
}

// GetTokenAPR повертає APR (відсотки) одного Midas токена за символом
func (s *Service) GetTokenAPR(ctx context.Context, symbol string) float64 {
	return s.midasAPYs(ctx)[symbol] * 100
}

// midasAPYs читає APY map з кешем. Помилка API дає порожню map.
func (s *Service) midasAPYs(ctx context.Context) map[string]float64 {
	if cached, ok := s.cache.Get(cache.KeyMidasAPYs); ok {
		if apys, ok := cached.(map[string]float64); ok {
			return apys
		}
	}

	apys, err := s.apys.GetAPYs(ctx)
	if err != nil {
		s.log.Error("❌ Error fetching Midas APY data: %v", err)
		return map[string]float64{}
	}

	s.cache.Set(cache.KeyMidasAPYs, apys)
	return apys
}

// rewardTokenPrices витягує ціни Midas токенів з винагород адреси
func (s *Service) rewardTokenPrices(ctx context.Context, address string) (map[string]float64, error) {
	chains, err := s.rewards.GetUserRewards(ctx, address)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64)
	for _, chain := range chains {
		for _, reward := range chain.Rewards {
			tokenAddress := strings.ToLower(reward.Token.Address)
			if _, ok := s.tokens[tokenAddress]; ok {
				prices[tokenAddress] = reward.Token.Price
			}
		}
	}

	s.log.Debug("Retrieved Merkl price data for %d tokens", len(prices))
	return prices, nil
}
