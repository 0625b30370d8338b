// Package rewards - зведення claimable Merkl винагород для адреси.
// Також постачає campaign ids, які lending модулі використовують
// для пошуку incentive opportunities.
package rewards

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
)

// MerklSource - джерело user rewards від Merkl API
type MerklSource interface {
	GetUserRewards(ctx context.Context, address string) ([]merkl.ChainRewards, error)
}

// Service обробляє Merkl rewards для адрес
type Service struct {
	client MerklSource
	probe  MerklSource
	log    *logger.Logger
}

// NewService створює rewards service.
// probe - клієнт з коротким timeout для evidence перевірок;
// nil означає використати основний client.
func NewService(client, probe MerklSource, log *logger.Logger) *Service {
	if probe == nil {
		probe = client
	}
	return &Service{
		client: client,
		probe:  probe,
		log:    log,
	}
}

// GetAddressRewardsSummary повертає зведення всіх claimable винагород
// адреси: amounts у читабельному вигляді, USD вартості, campaign ids.
func (s *Service) GetAddressRewardsSummary(ctx context.Context, address string) (*models.RewardsSummary, error) {
	chains, err := s.client.GetUserRewards(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards for %s: %w", address, err)
	}

	summary := models.EmptyRewardsSummary()
	summary.Address = address

	seenCampaigns := make(map[string]bool)
	totalUSD := 0.0

	for _, chain := range chains {
		for _, raw := range chain.Rewards {
			reward := processReward(raw)
			if reward == nil {
				continue
			}

			for _, breakdown := range raw.Breakdowns {
				if breakdown.CampaignID != "" && !seenCampaigns[breakdown.CampaignID] {
					seenCampaigns[breakdown.CampaignID] = true
					summary.CampaignIDs = append(summary.CampaignIDs, breakdown.CampaignID)
				}
			}

			totalUSD += reward.USDValue
			summary.Rewards = append(summary.Rewards, *reward)
		}
	}

	summary.TotalRewards = len(summary.Rewards)
	summary.TotalUSDValue = totalUSD
	summary.TotalUSDValueFormatted = formatUSDValue(totalUSD)

	s.log.Info("✅ Rewards summary for %s: %d rewards, %s total", address, summary.TotalRewards, summary.TotalUSDValueFormatted)
	return summary, nil
}

// GetCampaignIDs повертає унікальні campaign ids з breakdowns
// винагород адреси
func (s *Service) GetCampaignIDs(ctx context.Context, address string) ([]string, error) {
	chains, err := s.client.GetUserRewards(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign IDs for %s: %w", address, err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, chain := range chains {
		for _, reward := range chain.Rewards {
			for _, breakdown := range reward.Breakdowns {
				if breakdown.CampaignID == "" || seen[breakdown.CampaignID] {
					continue
				}
				seen[breakdown.CampaignID] = true
				ids = append(ids, breakdown.CampaignID)
			}
		}
	}

	s.log.Debug("Found %d campaign IDs for %s", len(ids), address)
	return ids, nil
}

// HasClaimableRewards - швидка evidence перевірка. Будь-яка помилка
// або timeout трактується як відсутність винагород.
func (s *Service) HasClaimableRewards(ctx context.Context, address string, timeout time.Duration) bool {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chains, err := s.probe.GetUserRewards(probeCtx, address)
	if err != nil {
		s.log.Debug("Merkl probe failed for %s: %v", address, err)
		return false
	}

	for _, chain := range chains {
		for _, reward := range chain.Rewards {
			if reward.Amount != "" && reward.Amount != "0" {
				return true
			}
		}
	}
	return false
}

// processReward конвертує сиру винагороду в модель.
// Повертає nil для нульових або непарсованих amounts.
func processReward(raw merkl.RewardData) *models.Reward {
	amount, ok := new(big.Int).SetString(raw.Amount, 10)
	if !ok || amount.Sign() == 0 {
		return nil
	}

	numeric := tokenAmount(amount, raw.Token.Decimals)
	usdValue := numeric * raw.Token.Price

	reward := &models.Reward{
		Amount:            raw.Amount,
		AmountFormatted:   formatTokenAmount(numeric),
		AmountNumeric:     numeric,
		USDValue:          usdValue,
		USDValueFormatted: formatUSDValue(usdValue),
		Token: models.RewardToken{
			Address:  raw.Token.Address,
			Symbol:   raw.Token.Symbol,
			Decimals: raw.Token.Decimals,
			Price:    raw.Token.Price,
		},
	}
	if len(raw.Breakdowns) > 0 {
		reward.CampaignID = raw.Breakdowns[0].CampaignID
	}

	return reward
}

// tokenAmount конвертує raw amount у дробове значення за decimals
func tokenAmount(amount *big.Int, decimals int) float64 {
	if decimals <= 0 {
		result, _ := new(big.Float).SetInt(amount).Float64()
		return result
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	result, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), divisor).Float64()
	return result
}

// formatTokenAmount форматує кількість токенів з K/M суфіксами
func formatTokenAmount(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("%.2fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%.2fK", amount/1_000)
	case amount >= 1:
		return fmt.Sprintf("%.4f", amount)
	default:
		return fmt.Sprintf("%.6f", amount)
	}
}

// formatUSDValue форматує USD вартість з K/M суфіксами
func formatUSDValue(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("$%.2fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("$%.2fK", value/1_000)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}
