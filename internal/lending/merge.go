package lending

import (
	"strings"

	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// роль токена відносно organic record
type tokenRole int

const (
	roleReserve tokenRole = iota
	roleReceipt
	roleDebt
)

type organicMatch struct {
	record models.OrganicRate
	role   tokenRole
}

// MergeInput - входи merge engine. Всі адреси нормалізуються до
// lowercase всередині, caller може передавати як є.
type MergeInput struct {
	Organic     []models.OrganicRate
	Incentives  []models.Opportunity
	CampaignIDs []string
	// WalletTokens - lowercased адреси токенів гаманця.
	// nil => market overview mode. Порожній slice => жодного match.
	WalletTokens []string
	Matcher      CampaignMatcher
}

// Merge зливає organic та incentivized ставки у merged positions.
//
// Market mode: кожен organic reserve без incentives дає LEND та BORROW
// entries з нульовим incentivized APR; reserve з incentives дає одну
// entry на кожну opportunity. Wallet mode: merge обмежений токенами
// гаманця, unmatched reserves пропускаються повністю.
//
// Incentives чиї reserves не мають organic record все одно потрапляють
// у результат з organic_apr = 0, щоб відмова organic джерела не губила
// incentive дані.
func Merge(in MergeInput) []models.MergedPosition {
	matcher := in.Matcher
	if matcher == nil {
		matcher = FirstCampaignMatcher
	}

	organic := normalizeOrganic(in.Organic)
	incentives := normalizeIncentives(in.Incentives)

	incentivesByReserve := make(map[string][]models.Opportunity)
	for _, inc := range incentives {
		incentivesByReserve[inc.ReserveTokenAddress] = append(incentivesByReserve[inc.ReserveTokenAddress], inc)
	}

	positions := make([]models.MergedPosition, 0, len(organic)*2)
	consumedReserves := make(map[string]bool)

	if in.WalletTokens == nil {
		// Market overview mode: всі reserves
		for _, org := range organic {
			consumedReserves[org.ReserveAddress] = true
			reserveIncs := incentivesByReserve[org.ReserveAddress]

			if len(reserveIncs) == 0 {
				positions = append(positions, newPosition(org, nil, models.ActionLend, in.CampaignIDs, matcher))
				positions = append(positions, newPosition(org, nil, models.ActionBorrow, in.CampaignIDs, matcher))
				continue
			}

			for i := range reserveIncs {
				inc := reserveIncs[i]
				positions = append(positions, newPosition(org, &inc, incentiveAction(inc), in.CampaignIDs, matcher))
			}
		}
	} else {
		// Wallet-scoped mode: тільки токени гаманця, address-exact match
		lookup := buildOrganicLookup(organic)
		for _, token := range in.WalletTokens {
			match, ok := lookup[strings.ToLower(token)]
			if !ok {
				continue
			}

			org := match.record
			consumedReserves[org.ReserveAddress] = true

			for _, action := range actionsForRole(match.role) {
				emitted := false
				for i := range incentivesByReserve[org.ReserveAddress] {
					inc := incentivesByReserve[org.ReserveAddress][i]
					if incentiveAction(inc) != action {
						continue
					}
					positions = append(positions, newPosition(org, &inc, action, in.CampaignIDs, matcher))
					emitted = true
				}
				if !emitted {
					positions = append(positions, newPosition(org, nil, action, in.CampaignIDs, matcher))
				}
			}
		}
	}

	// Incentives без organic record: organic сторона дорівнює нулю
	walletSet := walletTokenSet(in.WalletTokens)
	for _, inc := range incentives {
		if consumedReserves[inc.ReserveTokenAddress] {
			continue
		}
		if in.WalletTokens != nil && !walletSet[inc.ReserveTokenAddress] && !walletSet[inc.ExplorerTokenAddress] {
			continue
		}
		org := models.OrganicRate{ReserveAddress: inc.ReserveTokenAddress}
		positions = append(positions, newPosition(org, &inc, incentiveAction(inc), in.CampaignIDs, matcher))
	}

	return positions
}

// GroupByCampaign групує positions за campaign id
func GroupByCampaign(positions []models.MergedPosition) map[string][]models.MergedPosition {
	breakdowns := make(map[string][]models.MergedPosition)
	for _, p := range positions {
		breakdowns[p.CampaignID] = append(breakdowns[p.CampaignID], p)
	}
	return breakdowns
}

func newPosition(org models.OrganicRate, inc *models.Opportunity, action string, campaignIDs []string, matcher CampaignMatcher) models.MergedPosition {
	var organicAPR float64
	switch action {
	case models.ActionBorrow:
		// BORROW - це вартість, зберігається зі знаком мінус
		organicAPR = -(org.VariableBorrowRate * 100)
	default:
		organicAPR = org.LiquidityRate * 100
	}

	position := models.MergedPosition{
		ReserveAddress:     org.ReserveAddress,
		Action:             action,
		OrganicAPR:         organicAPR,
		IncentivizedAPR:    0,
		TotalAPR:           organicAPR,
		LiquidityRate:      org.LiquidityRate,
		VariableBorrowRate: org.VariableBorrowRate,
		LastUpdate:         org.LastUpdate,
	}

	if inc != nil {
		position.IncentivizedAPR = inc.APR
		position.TotalAPR = organicAPR + inc.APR
		position.Status = inc.Status
		position.ExplorerAddress = inc.ExplorerTokenAddress
		position.Price = inc.Price
		position.CampaignID = matcher(*inc, campaignIDs)
	} else {
		position.CampaignID = matcher(models.Opportunity{}, campaignIDs)
	}

	return position
}

// incentiveAction повертає дію opportunity з LEND за замовчуванням
func incentiveAction(inc models.Opportunity) string {
	if inc.Action == models.ActionBorrow {
		return models.ActionBorrow
	}
	return models.ActionLend
}

func actionsForRole(role tokenRole) []string {
	switch role {
	case roleReceipt:
		return []string{models.ActionLend}
	case roleDebt:
		return []string{models.ActionBorrow}
	default:
		// Match по самому reserve (аналітичні джерела не знають
		// receipt/debt адрес) - обидві сторони
		return []string{models.ActionLend, models.ActionBorrow}
	}
}

// buildOrganicLookup індексує organic records за reserve, receipt та debt
// адресами. Receipt/debt ролі мають пріоритет над reserve при колізії.
func buildOrganicLookup(organic []models.OrganicRate) map[string]organicMatch {
	lookup := make(map[string]organicMatch, len(organic)*2)
	for _, org := range organic {
		if org.ReserveAddress != "" {
			if _, exists := lookup[org.ReserveAddress]; !exists {
				lookup[org.ReserveAddress] = organicMatch{record: org, role: roleReserve}
			}
		}
		if org.ReceiptTokenAddress != "" {
			lookup[org.ReceiptTokenAddress] = organicMatch{record: org, role: roleReceipt}
		}
		if org.DebtTokenAddress != "" {
			lookup[org.DebtTokenAddress] = organicMatch{record: org, role: roleDebt}
		}
	}
	return lookup
}

func normalizeOrganic(organic []models.OrganicRate) []models.OrganicRate {
	normalized := make([]models.OrganicRate, 0, len(organic))
	for _, org := range organic {
		org.ReserveAddress = strings.ToLower(org.ReserveAddress)
		org.ReceiptTokenAddress = strings.ToLower(org.ReceiptTokenAddress)
		org.DebtTokenAddress = strings.ToLower(org.DebtTokenAddress)
		if org.ReserveAddress == "" && org.ReceiptTokenAddress == "" {
			continue
		}
		normalized = append(normalized, org)
	}
	return normalized
}

func normalizeIncentives(incentives []models.Opportunity) []models.Opportunity {
	normalized := make([]models.Opportunity, 0, len(incentives))
	for _, inc := range incentives {
		inc.ReserveTokenAddress = strings.ToLower(inc.ReserveTokenAddress)
		inc.ExplorerTokenAddress = strings.ToLower(inc.ExplorerTokenAddress)
		if inc.ReserveTokenAddress == "" {
			continue
		}
		normalized = append(normalized, inc)
	}
	return normalized
}

func walletTokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(t)] = true
	}
	return set
}
