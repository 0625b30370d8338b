// Package nftvalue - оцінка NFT LP позицій: інвентар з Blockscout
// зіставляється з аналітикою позицій Icarus Tools.
package nftvalue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/blockscout"
	"github.com/GabrielaCA88/ibitracker/internal/providers/icarus"
)

// NFTInventorySource - джерело NFT інвентаря адреси
type NFTInventorySource interface {
	GetNFTs(ctx context.Context, address string) ([]blockscout.NFTItem, error)
}

// PositionSource - джерело аналітики LP позицій
type PositionSource interface {
	GetPosition(ctx context.Context, tokenID int64) (*icarus.Position, error)
}

// Service оцінює NFT позиції адреси
type Service struct {
	inventory NFTInventorySource
	positions PositionSource
	log       *logger.Logger
}

// NewService створює NFT valuation service
func NewService(inventory NFTInventorySource, positions PositionSource, log *logger.Logger) *Service {
	return &Service{
		inventory: inventory,
		positions: positions,
		log:       log,
	}
}

// GetAddressNFTValuations повертає оцінені NFT позиції адреси.
// Позиції без ліквідності або без match по owner пропускаються.
func (s *Service) GetAddressNFTValuations(ctx context.Context, address string) ([]models.NFTValuation, error) {
	items, err := s.inventory.GetNFTs(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get NFTs for %s: %w", address, err)
	}
	if len(items) == 0 {
		s.log.Info("No NFTs found for address: %s", address)
		return []models.NFTValuation{}, nil
	}

	valuations := []models.NFTValuation{}
	for _, item := range items {
		if item.ID == "" || item.Token.AddressHash == "" {
			s.log.Warn("Skipping NFT with missing data: id=%q contract=%q", item.ID, item.Token.AddressHash)
			continue
		}

		valuation, err := s.valuePosition(ctx, item)
		if err != nil {
			s.log.Error("❌ Error valuing NFT %s: %v", item.ID, err)
			continue
		}
		if valuation != nil {
			valuations = append(valuations, *valuation)
		}
	}

	s.log.Info("✅ Found %d valued NFTs for address: %s", len(valuations), address)
	return valuations, nil
}

// valuePosition оцінює одну NFT позицію через Icarus.
// Повертає nil без помилки коли позиція не знайдена, owner не
// збігається з контрактом, або ліквідність нульова.
func (s *Service) valuePosition(ctx context.Context, item blockscout.NFTItem) (*models.NFTValuation, error) {
	tokenID, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token id %q: %w", item.ID, err)
	}

	position, err := s.positions.GetPosition(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, nil
	}

	contractAddress := strings.ToLower(item.Token.AddressHash)
	for _, event := range position.PositionEvents {
		if event.Owner == "" || strings.ToLower(event.Owner) != contractAddress {
			continue
		}

		liquidity, _ := position.CurrentLiquidity.Float64()
		if liquidity == 0 {
			continue
		}

		totalValue := event.CurrentValues.TotalValueCurrent
		uncollectedFees := position.PositionProfit.UncollectedUSDFees

		s.log.Info("Found position %s: liquidity %s, value %.2f, uncollected fees %.2f", item.ID, position.CurrentLiquidity.String(), totalValue, uncollectedFees)

		return &models.NFTValuation{
			NFTID:                    item.ID,
			ContractAddress:          contractAddress,
			Name:                     item.Name,
			TokenName:                item.Token.Name,
			TokenSymbol:              item.Token.Symbol,
			TokenType:                item.TokenType,
			CurrentLiquidity:         position.CurrentLiquidity.String(),
			TotalValueUSD:            totalValue,
			TotalValueFormatted:      formatValue(totalValue),
			UncollectedUSDFees:       uncollectedFees,
			UncollectedFeesFormatted: formatValue(uncollectedFees),
		}, nil
	}

	s.log.Debug("No matching position found for token_id: %s", item.ID)
	return nil, nil
}

// formatValue форматує USD вартість з K/M суфіксами
func formatValue(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%.2fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.2fK", value/1_000)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}
