// Package lending - multi-protocol APR та price сервіс.
// Зливає organic ставки (аналітика або контракти) з incentivized
// ставками Merkl campaigns у єдині portfolio entries.
package lending

import (
	"context"

	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// ProtocolModule - capability interface одного lending протоколу.
// walletTokens == nil означає market overview mode (всі reserves);
// непорожній список обмежує merge до токенів гаманця.
type ProtocolModule interface {
	Protocol() string
	GetAPRData(ctx context.Context, campaignIDs []string, walletTokens []models.TokenBalance) *models.APRData
	GetPriceData(ctx context.Context, campaignIDs []string) *models.PriceData
}

// CampaignMatcher визначає який Merkl campaign id приписати merged entry.
// Numeric id від opportunities API не збігається з hex id від rewards API,
// тому правило відповідності - pluggable.
type CampaignMatcher func(opp models.Opportunity, campaignIDs []string) string

// FirstCampaignMatcher - fallback який бере перший campaign id зі списку.
// TODO: замінити на матчинг через campaign sub-resource Merkl API коли
// opportunities почнуть повертати hex id.
func FirstCampaignMatcher(_ models.Opportunity, campaignIDs []string) string {
	if len(campaignIDs) > 0 {
		return campaignIDs[0]
	}
	return ""
}
