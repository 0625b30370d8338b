package lending

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/GabrielaCA88/ibitracker/internal/chain"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// MarketReader - on-chain джерело Tropykus маркетів
type MarketReader interface {
	AllMarkets(ctx context.Context) ([]common.Address, error)
	MarketRates(ctx context.Context, market common.Address) (*chain.MarketRates, error)
}

// TropykusModule читає organic ставки з Tropykus контрактів
// (Compound fork на Rootstock) та зливає їх з Merkl campaigns
type TropykusModule struct {
	reader        MarketReader
	opportunities OpportunitySource
	matcher       CampaignMatcher
	blocksPerYear int64
	log           *logger.Logger
}

// NewTropykusModule створює Tropykus модуль
func NewTropykusModule(reader MarketReader, opportunities OpportunitySource, matcher CampaignMatcher, blocksPerYear int64, log *logger.Logger) *TropykusModule {
	if matcher == nil {
		matcher = FirstCampaignMatcher
	}
	return &TropykusModule{
		reader:        reader,
		opportunities: opportunities,
		matcher:       matcher,
		blocksPerYear: blocksPerYear,
		log:           log,
	}
}

func (m *TropykusModule) Protocol() string {
	return "Tropykus"
}

// GetAPRData повертає merged APR data для Tropykus.
// Organic ставки читаються з контрактів; відмова RPC не скасовує
// merge incentive сторони.
func (m *TropykusModule) GetAPRData(ctx context.Context, campaignIDs []string, walletTokens []models.TokenBalance) *models.APRData {
	result := models.EmptyAPRData(m.Protocol(), campaignIDs)

	markets, err := m.marketRates(ctx)
	if err != nil {
		m.log.Error("❌ Error reading Tropykus markets: %v", err)
		result.Error = err.Error()
	}

	organic := make([]models.OrganicRate, 0, len(markets))
	for _, market := range markets {
		organic = append(organic, marketToOrganic(market, m.blocksPerYear))
	}

	incentives := fetchOpportunities(ctx, m.opportunities, campaignIDs, m.log)

	positions := Merge(MergeInput{
		Organic:      organic,
		Incentives:   incentives,
		CampaignIDs:  campaignIDs,
		WalletTokens: walletAddresses(walletTokens),
		Matcher:      m.matcher,
	})

	result.PortfolioEntries = positions
	result.CampaignBreakdowns = GroupByCampaign(positions)

	m.log.Info("Tropykus APR data: %d entries from %d markets and %d campaigns", len(positions), len(markets), len(campaignIDs))
	return result
}

// GetPriceData повертає ціни токенів з Merkl opportunities
func (m *TropykusModule) GetPriceData(ctx context.Context, campaignIDs []string) *models.PriceData {
	return buildPriceData(ctx, m.opportunities, m.Protocol(), campaignIDs, m.log)
}

// GetPortfolioData повертає Tropykus позиції гаманця: kToken баланси
// зіставлені з маркетами comptroller. APR - у відсотках.
func (m *TropykusModule) GetPortfolioData(ctx context.Context, address string, balances []models.TokenBalance) *models.TropykusPortfolio {
	portfolio := models.EmptyTropykusPortfolio()

	balancesByAddress := make(map[string]models.TokenBalance, len(balances))
	for _, balance := range balances {
		if addr := balance.Address(); addr != "" {
			balancesByAddress[addr] = balance
		}
	}
	if len(balancesByAddress) == 0 {
		return portfolio
	}

	markets, err := m.marketRates(ctx)
	if err != nil {
		m.log.Error("❌ Error reading Tropykus markets for %s: %v", address, err)
		portfolio.Error = err.Error()
		return portfolio
	}

	for _, market := range markets {
		marketAddr := strings.ToLower(market.Market.Hex())
		balance, ok := balancesByAddress[marketAddr]
		if !ok {
			continue
		}

		item := models.TropykusPortfolioItem{
			MarketAddress: marketAddr,
			Symbol:        market.Symbol,
			Name:          balance.Token.Name,
			Balance:       balance.AmountFloat(),
			SupplyAPR:     chain.RatePerBlockToAnnual(market.SupplyRatePerBlock, m.blocksPerYear) * 100,
			BorrowAPR:     chain.RatePerBlockToAnnual(market.BorrowRatePerBlock, m.blocksPerYear) * 100,
			ExchangeRate:  chain.MantissaToFloat(market.ExchangeRateStored),
		}
		if market.Underlying != (common.Address{}) {
			item.UnderlyingAddress = strings.ToLower(market.Underlying.Hex())
		}

		portfolio.PortfolioItems = append(portfolio.PortfolioItems, item)
	}

	portfolio.TotalItems = len(portfolio.PortfolioItems)
	m.log.Info("Tropykus portfolio for %s: %d positions", address, portfolio.TotalItems)
	return portfolio
}

// marketRates читає всі маркети паралельно. Відмова одного маркету
// логується та пропускається, не пошкоджуючи решту.
func (m *TropykusModule) marketRates(ctx context.Context) ([]*chain.MarketRates, error) {
	addresses, err := m.reader.AllMarkets(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		markets []*chain.MarketRates
	)

	for _, addr := range addresses {
		wg.Add(1)
		go func(market common.Address) {
			defer wg.Done()

			rates, err := m.reader.MarketRates(ctx, market)
			if err != nil {
				m.log.Warn("Skipping Tropykus market %s: %v", market.Hex(), err)
				return
			}

			mu.Lock()
			markets = append(markets, rates)
			mu.Unlock()
		}(addr)
	}

	wg.Wait()
	return markets, nil
}

// marketToOrganic конвертує on-chain ставки у organic record.
// Маркети без underlying (нативний rBTC) використовують адресу
// самого маркету як reserve.
func marketToOrganic(market *chain.MarketRates, blocksPerYear int64) models.OrganicRate {
	reserve := strings.ToLower(market.Underlying.Hex())
	if market.Underlying == (common.Address{}) {
		reserve = strings.ToLower(market.Market.Hex())
	}

	return models.OrganicRate{
		ReserveAddress:      reserve,
		ReceiptTokenAddress: strings.ToLower(market.Market.Hex()),
		LiquidityRate:       chain.RatePerBlockToAnnual(market.SupplyRatePerBlock, blocksPerYear),
		VariableBorrowRate:  chain.RatePerBlockToAnnual(market.BorrowRatePerBlock, blocksPerYear),
	}
}
