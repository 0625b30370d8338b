package handlers

import (
	"net/http"

	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/lending"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// LendingHandler обробляє lending запити
type LendingHandler struct {
	lending  *lending.Service
	balances BalanceService
	cache    *cache.Cache
	log      *logger.Logger
}

// NewLendingHandler створює новий LendingHandler
func NewLendingHandler(lendingService *lending.Service, balances BalanceService, c *cache.Cache, log *logger.Logger) *LendingHandler {
	return &LendingHandler{
		lending:  lendingService,
		balances: balances,
		cache:    c,
		log:      log,
	}
}

// GetLendingData повертає merged lending дані всіх протоколів для адреси
func (h *LendingHandler) GetLendingData(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	walletTokens, err := h.balances.GetTokenBalances(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching balances for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Error fetching lending data")
		return
	}

	lendingData := h.lending.GetLendingDataForAddress(r.Context(), address, walletTokens)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address":      address,
		"lending_data": lendingData,
	})
}

// GetTropykusPortfolio повертає Tropykus позиції гаманця
func (h *LendingHandler) GetTropykusPortfolio(w http.ResponseWriter, r *http.Request) {
	address := pathAddress(w, r)
	if address == "" {
		return
	}

	walletTokens, err := h.balances.GetTokenBalances(r.Context(), address)
	if err != nil {
		h.log.Error("❌ Error fetching balances for %s: %v", address, err)
		respondError(w, http.StatusInternalServerError, "Error fetching Tropykus portfolio data")
		return
	}

	portfolio := h.lending.GetTropykusPortfolio(r.Context(), address, walletTokens)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"address":            address,
		"tropykus_portfolio": portfolio,
	})
}

// GetMarketOverview повертає market overview всіх протоколів.
// Відповідь йде з кешу який прогріває scheduler; при порожньому кеші
// overview будується синхронно.
func (h *LendingHandler) GetMarketOverview(w http.ResponseWriter, r *http.Request) {
	if cached, ok := h.cache.Get(cache.KeyMarketOverview); ok {
		if overview, ok := cached.(map[string]*models.APRData); ok {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"protocols": overview,
				"cached":    true,
			})
			return
		}
	}

	overview := h.lending.MarketOverview(r.Context())
	h.cache.Set(cache.KeyMarketOverview, overview)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"protocols": overview,
		"cached":    false,
	})
}
