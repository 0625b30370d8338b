package lending

import (
	"context"

	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/footprint"
)

// OrganicRateSource - джерело organic ставок LayerBank reserves
type OrganicRateSource interface {
	QueryCard(ctx context.Context) ([]footprint.ReserveRow, error)
}

// LayerBankModule зливає organic ставки з Footprint Analytics card
// з incentivized ставками Merkl campaigns
type LayerBankModule struct {
	opportunities OpportunitySource
	rates         OrganicRateSource
	matcher       CampaignMatcher
	cache         *cache.Cache
	log           *logger.Logger
}

// NewLayerBankModule створює LayerBank модуль
func NewLayerBankModule(opportunities OpportunitySource, rates OrganicRateSource, matcher CampaignMatcher, c *cache.Cache, log *logger.Logger) *LayerBankModule {
	if matcher == nil {
		matcher = FirstCampaignMatcher
	}
	return &LayerBankModule{
		opportunities: opportunities,
		rates:         rates,
		matcher:       matcher,
		cache:         c,
		log:           log,
	}
}

func (m *LayerBankModule) Protocol() string {
	return "LayerBank"
}

// GetAPRData повертає merged APR data для LayerBank.
// Відмова organic джерела не скасовує merge: incentive entries
// все одно потрапляють у результат, а Error поле несе причину.
func (m *LayerBankModule) GetAPRData(ctx context.Context, campaignIDs []string, walletTokens []models.TokenBalance) *models.APRData {
	result := models.EmptyAPRData(m.Protocol(), campaignIDs)

	organic, lastUpdated, err := m.organicRates(ctx)
	if err != nil {
		m.log.Error("❌ Error getting LayerBank organic rates: %v", err)
		result.Error = err.Error()
	}
	result.LastUpdated = lastUpdated

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

	m.log.Info("LayerBank APR data: %d entries from %d reserves and %d campaigns", len(positions), len(organic), len(campaignIDs))
	return result
}

// GetPriceData повертає ціни токенів з Merkl opportunities
func (m *LayerBankModule) GetPriceData(ctx context.Context, campaignIDs []string) *models.PriceData {
	return buildPriceData(ctx, m.opportunities, m.Protocol(), campaignIDs, m.log)
}

// organicRates читає card rows з кешем. Повертає rates та
// найсвіжіший latest_update серед рядків.
func (m *LayerBankModule) organicRates(ctx context.Context) ([]models.OrganicRate, string, error) {
	if cached, ok := m.cache.Get(cache.KeyOrganicRates); ok {
		if rates, ok := cached.(cachedOrganicRates); ok {
			m.log.Debug("Using cached LayerBank organic rates (%d reserves)", len(rates.Rates))
			return rates.Rates, rates.LastUpdated, nil
		}
	}

	rows, err := m.rates.QueryCard(ctx)
	if err != nil {
		return nil, "", err
	}

	rates := make([]models.OrganicRate, 0, len(rows))
	lastUpdated := ""
	for _, row := range rows {
		if row.Reserve == "" {
			continue
		}
		rates = append(rates, models.OrganicRate{
			ReserveAddress:     row.Reserve,
			LiquidityRate:      row.LiquidityRate,
			VariableBorrowRate: row.VariableBorrowRate,
			LastUpdate:         row.LatestUpdate,
		})
		if row.LatestUpdate > lastUpdated {
			lastUpdated = row.LatestUpdate
		}
	}

	m.cache.Set(cache.KeyOrganicRates, cachedOrganicRates{Rates: rates, LastUpdated: lastUpdated})
	m.log.Info("✅ LayerBank organic rates loaded: %d reserves, latest update %s", len(rates), lastUpdated)
	return rates, lastUpdated, nil
}

type cachedOrganicRates struct {
	Rates       []models.OrganicRate
	LastUpdated string
}
