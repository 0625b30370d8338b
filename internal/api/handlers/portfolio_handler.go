package handlers

import (
	"context"
	"net/http"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
	"github.com/GabrielaCA88/ibitracker/internal/router"
)

// BalanceService - баланси адреси
type BalanceService interface {
	GetTokenBalances(ctx context.Context, address string) ([]models.TokenBalance, error)
	GetERC20Balances(ctx context.Context, address string) ([]models.TokenBalance, error)
	GetPortfolioBalances(ctx context.Context, address string) ([]models.TokenBalance, error)
}

// PortfolioHandler обробляє portfolio запити: баланси, NFT, винагороди,
// yield токени та повний address aggregate
type PortfolioHandler struct {
	balances BalanceService
	router   *router.Router
	nft      router.NFTService
	rewards  router.RewardsService
	yield    router.YieldService
	log      *logger.Logger
}

// NewPortfolioHandler створює новий PortfolioHandler
func NewPortfolioHandler(balances BalanceService, r *router.Router, nft router.NFTService, rewards router.RewardsService, yield router.YieldService, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		balances: balances,
		router:   r,
		nft:      nft,
		rewards:  rewards,
		yield:    yield,
		log:      log,
	}
}

// GetTokenBalances повертає токен-баланси адреси (без ERC-721)
func (h *PortfolioHandler) GetTokenBalances(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	balances, err := h.balances.GetERC20Balances(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching token balances for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch token balances")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address":        address,
		"token_balances": balances,
		"total_tokens":   len(balances),
	})
}

// GetAddressInfo повертає повний aggregate адреси: баланси портфеля
// плюс результат evidence-gated обробки
func (h *PortfolioHandler) GetAddressInfo(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	// Сирі баланси (з ERC-721) потрібні evidence перевіркам
	rawBalances, err := h.balances.GetTokenBalances(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching balances for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch token balances")
		return
	}

	result := h.router.ProcessAddress(r.Context(), address, rawBalances)

	portfolioBalances, err := h.balances.GetPortfolioBalances(r.Context(), address)
	if err != nil {
		h.log.Warn("Could not build portfolio balances for %s: %v", address, err)
		portfolioBalances = []models.TokenBalance{}
	}

	nftTotalUSD := 0.0
	for _, valuation := range result.NFTValuations {
		nftTotalUSD += valuation.TotalValueUSD
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address":                 result.Address,
		"evidence":                result.Evidence,
		"token_balances":          portfolioBalances,
		"token_count":             len(portfolioBalances),
		"nft_valuations":          result.NFTValuations,
		"nft_count":               len(result.NFTValuations),
		"nft_total_value_usd":     nftTotalUSD,
		"merkle_rewards":          result.MerkleRewards.Rewards,
		"merkle_rewards_count":    result.MerkleRewards.TotalRewards,
		"merkle_rewards_total_usd": result.MerkleRewards.TotalUSDValue,
		"yield_tokens":            result.YieldTokens.YieldTokens,
		"yield_tokens_count":      result.YieldTokens.TotalYieldTokens,
		"lending_portfolio":       result.LendingPortfolio,
	})
}

// GetNFTValuations повертає оцінені NFT позиції адреси
func (h *PortfolioHandler) GetNFTValuations(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	valuations, err := h.nft.GetAddressNFTValuations(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching NFT valuations for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Error fetching NFT valuations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address":        address,
		"nft_valuations": valuations,
		"total_nfts":     len(valuations),
	})
}

// GetMerkleRewards повертає зведення Merkl винагород адреси
func (h *PortfolioHandler) GetMerkleRewards(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	summary, err := h.rewards.GetAddressRewardsSummary(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching Merkl rewards for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Error fetching Merkle rewards")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetYieldTokens повертає yield token дані адреси
func (h *PortfolioHandler) GetYieldTokens(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	respondJSON(w, http.StatusOK, h.yield.GetYieldTokenData(r.Context(), address))
}
