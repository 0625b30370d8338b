package lending

import (
	"context"
	"strings"
	"sync"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
)

// OpportunitySource - incentive-campaign provider (Merkl)
type OpportunitySource interface {
	GetOpportunityByCampaign(ctx context.Context, campaignID string) (*merkl.OpportunityData, error)
}

// fetchOpportunities забирає opportunities для всіх campaign ids
// паралельно. Кожен fetch незалежний: помилка одного просто виключає
// його результат. Повертаються тільки LIVE opportunities з APR > 0.
func fetchOpportunities(ctx context.Context, source OpportunitySource, campaignIDs []string, log *logger.Logger) []models.Opportunity {
	if len(campaignIDs) == 0 {
		return nil
	}

	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		opportunities []models.Opportunity
	)

	for _, campaignID := range campaignIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			data, err := source.GetOpportunityByCampaign(ctx, id)
			if err != nil {
				log.Error("Error processing campaign %s: %v", id, err)
				return
			}
			if data == nil {
				return
			}

			opp, ok := opportunityToModel(data)
			if !ok {
				return
			}

			mu.Lock()
			opportunities = append(opportunities, opp)
			mu.Unlock()

			log.Info("Campaign %s: %.4f%% APR, Status: %s, Action: %s", opp.CampaignID, opp.APR, opp.Status, opp.Action)
		}(campaignID)
	}

	wg.Wait()
	return opportunities
}

// opportunityToModel конвертує Merkl opportunity у модель.
// Перший токен несе ціну, другий - адресу reserve; explorer адреса
// завжди Token 0 (збігається з portfolio картками).
func opportunityToModel(data *merkl.OpportunityData) (models.Opportunity, bool) {
	if data.ID == "" || data.Status != models.StatusLive || data.APR <= 0 {
		return models.Opportunity{}, false
	}

	opp := models.Opportunity{
		CampaignID: data.ID,
		Status:     data.Status,
		Action:     data.Action,
		APR:        data.APR,
	}

	if len(data.Tokens) >= 2 {
		opp.Price = data.Tokens[0].Price
		opp.ReserveTokenAddress = strings.ToLower(data.Tokens[1].Address)
		opp.ExplorerTokenAddress = strings.ToLower(data.Tokens[0].Address)
	}

	return opp, true
}

// buildPriceData збирає token prices з opportunities для GetPriceData.
// Ключі - lowercased explorer адреси.
func buildPriceData(ctx context.Context, source OpportunitySource, protocol string, campaignIDs []string, log *logger.Logger) *models.PriceData {
	priceData := models.EmptyPriceData(protocol, campaignIDs)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, campaignID := range campaignIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			data, err := source.GetOpportunityByCampaign(ctx, id)
			if err != nil {
				log.Error("Error getting price for campaign %s: %v", id, err)
				return
			}
			if data == nil || data.ID == "" || len(data.Tokens) < 2 {
				return
			}

			price := data.Tokens[0].Price
			explorerAddress := strings.ToLower(data.Tokens[0].Address)
			reserveAddress := strings.ToLower(data.Tokens[1].Address)

			if explorerAddress == "" || price <= 0 {
				return
			}

			mu.Lock()
			priceData.TokenPrices[explorerAddress] = models.TokenPrice{
				Price:          price,
				CampaignID:     data.ID,
				ReserveAddress: reserveAddress,
			}
			mu.Unlock()
		}(campaignID)
	}

	wg.Wait()

	log.Info("%s price data retrieved for %d tokens from %d campaigns", protocol, len(priceData.TokenPrices), len(campaignIDs))
	return priceData
}

// walletAddresses витягує lowercased адреси з балансів гаманця.
// nil baланси => nil (market overview mode).
func walletAddresses(walletTokens []models.TokenBalance) []string {
	if walletTokens == nil {
		return nil
	}
	addresses := make([]string, 0, len(walletTokens))
	for _, token := range walletTokens {
		if addr := token.Address(); addr != "" {
			addresses = append(addresses, addr)
		}
	}
	return addresses
}
