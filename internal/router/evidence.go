// Package router - evidence-gated оркестрація сервісів. Спершу
// збираються дешеві сигнали з токен-балансів та короткого Merkl
// probe, потім запускаються тільки потрібні сервіси.
package router

import (
	"context"
	"strings"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// RewardsProbe - швидка перевірка наявності claimable винагород
type RewardsProbe interface {
	HasClaimableRewards(ctx context.Context, address string, timeout time.Duration) bool
}

// EvidenceGate збирає evidence прапорці для адреси
type EvidenceGate struct {
	probe        RewardsProbe
	probeTimeout time.Duration
	log          *logger.Logger
}

// NewEvidenceGate створює evidence gate
func NewEvidenceGate(probe RewardsProbe, probeTimeout time.Duration, log *logger.Logger) *EvidenceGate {
	return &EvidenceGate{
		probe:        probe,
		probeTimeout: probeTimeout,
		log:          log,
	}
}

// Gather збирає evidence з токен-балансів та Merkl probe.
// Внутрішня помилка дає всі прапорці true, щоб жоден сервіс
// не був пропущений через збій самої перевірки.
func (g *EvidenceGate) Gather(ctx context.Context, address string, balances []models.TokenBalance) (evidence models.Evidence) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("❌ Error gathering evidence for %s: %v", address, r)
			evidence = models.AllEvidence()
		}
	}()

	for _, balance := range balances {
		if !evidence.HasYieldToken && looksLikeYieldToken(balance) {
			evidence.HasYieldToken = true
		}
		if !evidence.HasLending && looksLikeLendingReceipt(balance) {
			evidence.HasLending = true
		}
		if !evidence.HasNFTs && balance.Token.Type == models.TokenTypeERC721 {
			evidence.HasNFTs = true
		}
	}

	evidence.HasMerkleRewards = g.probe.HasClaimableRewards(ctx, address, g.probeTimeout)

	g.log.Info("Evidence gathered for %s: %+v", address, evidence)
	return evidence
}

// looksLikeYieldToken перевіряє назву токена на yield-маркери
func looksLikeYieldToken(balance models.TokenBalance) bool {
	name := strings.ToLower(balance.Token.Name)
	for _, keyword := range yieldKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

var yieldKeywords = []string{"midas"}

// looksLikeLendingReceipt - евристика receipt/debt токенів money
// markets без hardcoded адрес: тип ERC-20, позитивний баланс, та
// типові префікси символів (kRBTC, lUSDC, cToken, aToken, variable
// debt) або маркери у назві.
func looksLikeLendingReceipt(balance models.TokenBalance) bool {
	if balance.Token.Type != models.TokenTypeERC20 {
		return false
	}
	if !balance.HasPositiveValue() {
		return false
	}

	symbol := strings.ToLower(balance.Token.Symbol)
	name := strings.ToLower(balance.Token.Name)

	for _, prefix := range receiptSymbolPrefixes {
		if strings.HasPrefix(symbol, prefix) {
			return true
		}
	}
	for _, marker := range receiptNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

var (
	// kTokens (Tropykus), cTokens, aTokens, lTokens (LayerBank), variable debt
	receiptSymbolPrefixes = []string{"k", "c", "a", "l", "variable"}
	receiptNameMarkers    = []string{"ktoken", "ltoken", "atoken", "layerbank", "avalon", "tropykus", "variable", "debt"}
)
