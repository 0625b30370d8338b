package lending

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// CampaignIDSource постачає campaign ids адреси з rewards API
type CampaignIDSource interface {
	GetCampaignIDs(ctx context.Context, address string) ([]string, error)
}

// Service координує lending модулі всіх протоколів
type Service struct {
	protocols map[string]ProtocolModule
	campaigns CampaignIDSource
	tropykus  *TropykusModule
	log       *logger.Logger
}

// NewService створює lending service з переданими модулями.
// tropykus може бути nil якщо портфельний режим не потрібен.
func NewService(modules []ProtocolModule, campaigns CampaignIDSource, tropykus *TropykusModule, log *logger.Logger) *Service {
	protocols := make(map[string]ProtocolModule, len(modules))
	for _, module := range modules {
		protocols[module.Protocol()] = module
	}
	return &Service{
		protocols: protocols,
		campaigns: campaigns,
		tropykus:  tropykus,
		log:       log,
	}
}

// Protocols повертає відсортовані назви зареєстрованих протоколів
func (s *Service) Protocols() []string {
	names := make([]string, 0, len(s.protocols))
	for name := range s.protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetLendingDataForAddress повертає merged APR data всіх протоколів
// для адреси. Campaign ids беруться з rewards API; модулі працюють
// паралельно, відмова одного не чіпає решту.
func (s *Service) GetLendingDataForAddress(ctx context.Context, address string, walletTokens []models.TokenBalance) map[string]*models.APRData {
	campaignIDs, err := s.campaigns.GetCampaignIDs(ctx, address)
	if err != nil {
		s.log.Error("❌ Error getting campaign IDs for %s: %v", address, err)
		campaignIDs = []string{}
	}

	results := make(map[string]*models.APRData, len(s.protocols))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, module := range s.protocols {
		wg.Add(1)
		go func(name string, module ProtocolModule) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("❌ Panic in %s module: %v", name, r)
					mu.Lock()
					data := models.EmptyAPRData(name, campaignIDs)
					data.Error = fmt.Sprintf("internal error: %v", r)
					results[name] = data
					mu.Unlock()
				}
			}()

			data := module.GetAPRData(ctx, campaignIDs, walletTokens)
			mu.Lock()
			results[name] = data
			mu.Unlock()
		}(name, module)
	}
	wg.Wait()

	return results
}

// GetProtocolData повертає merged APR data одного протоколу
func (s *Service) GetProtocolData(ctx context.Context, protocol, address string, walletTokens []models.TokenBalance) (*models.APRData, error) {
	module, ok := s.protocols[protocol]
	if !ok {
		return nil, fmt.Errorf("unknown protocol: %s", protocol)
	}

	campaignIDs, err := s.campaigns.GetCampaignIDs(ctx, address)
	if err != nil {
		s.log.Error("❌ Error getting campaign IDs for %s: %v", address, err)
		campaignIDs = []string{}
	}

	return module.GetAPRData(ctx, campaignIDs, walletTokens), nil
}

// GetPriceData повертає ціни токенів одного протоколу
func (s *Service) GetPriceData(ctx context.Context, protocol, address string) (*models.PriceData, error) {
	module, ok := s.protocols[protocol]
	if !ok {
		return nil, fmt.Errorf("unknown protocol: %s", protocol)
	}

	campaignIDs, err := s.campaigns.GetCampaignIDs(ctx, address)
	if err != nil {
		s.log.Error("❌ Error getting campaign IDs for %s: %v", address, err)
		campaignIDs = []string{}
	}

	return module.GetPriceData(ctx, campaignIDs), nil
}

// GetTropykusPortfolio повертає on-chain Tropykus позиції гаманця
func (s *Service) GetTropykusPortfolio(ctx context.Context, address string, balances []models.TokenBalance) *models.TropykusPortfolio {
	if s.tropykus == nil {
		return models.EmptyTropykusPortfolio()
	}
	return s.tropykus.GetPortfolioData(ctx, address, balances)
}

// MarketOverview повертає merged APR data всіх протоколів без
// прив'язки до гаманця: всі reserves, без campaign ids.
func (s *Service) MarketOverview(ctx context.Context) map[string]*models.APRData {
	results := make(map[string]*models.APRData, len(s.protocols))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, module := range s.protocols {
		wg.Add(1)
		go func(name string, module ProtocolModule) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("❌ Panic in %s market overview: %v", name, r)
					mu.Lock()
					data := models.EmptyAPRData(name, []string{})
					data.Error = fmt.Sprintf("internal error: %v", r)
					results[name] = data
					mu.Unlock()
				}
			}()

			data := module.GetAPRData(ctx, []string{}, nil)
			mu.Lock()
			results[name] = data
			mu.Unlock()
		}(name, module)
	}
	wg.Wait()

	return results
}
