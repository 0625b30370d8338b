// Package api - HTTP сервер portfolio aggregator-а
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/GabrielaCA88/ibitracker/internal/api/handlers"
	"github.com/GabrielaCA88/ibitracker/internal/api/middleware"
	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/config"
	"github.com/GabrielaCA88/ibitracker/internal/lending"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/router"
)

// Dependencies - сервіси які сервер виставляє через API
type Dependencies struct {
	Balances BalanceService
	Router   *router.Router
	NFT      router.NFTService
	Rewards  router.RewardsService
	Yield    router.YieldService
	Lending  *lending.Service
	Cache    *cache.Cache
}

// BalanceService re-export для зручності wiring у main
type BalanceService = handlers.BalanceService

// Server представляє HTTP сервер
type Server struct {
	config     *config.Config
	httpServer *http.Server
	router     *mux.Router
	log        *logger.Logger

	rateLimiter *middleware.RateLimiter

	healthHandler    *handlers.HealthHandler
	portfolioHandler *handlers.PortfolioHandler
	lendingHandler   *handlers.LendingHandler
}

// NewServer створює новий API server
func NewServer(cfg *config.Config, deps Dependencies, log *logger.Logger) *Server {
	s := &Server{
		config: cfg,
		log:    log,
	}

	s.rateLimiter = middleware.NewRateLimiter(cfg.API.RateLimit)

	s.healthHandler = handlers.NewHealthHandler(cfg.Chain.ChainID)
	s.portfolioHandler = handlers.NewPortfolioHandler(deps.Balances, deps.Router, deps.NFT, deps.Rewards, deps.Yield, log)
	s.lendingHandler = handlers.NewLendingHandler(deps.Lending, deps.Balances, deps.Cache, log)

	s.setupRouter()

	return s
}

// setupRouter налаштовує всі роути та middleware
func (s *Server) setupRouter() {
	r := mux.NewRouter()

	// Global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(s.log))
	r.Use(middleware.RecoveryMiddleware(s.log))
	r.Use(middleware.CORSMiddleware(s.config.API.AllowedOrigins))
	r.Use(s.rateLimiter.RateLimitMiddleware)

	// Health check
	r.HandleFunc("/health", s.healthHandler.Health).Methods("GET")
	r.HandleFunc("/ping", s.healthHandler.Ping).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Portfolio
	api.HandleFunc("/token-balances/{address}", s.portfolioHandler.GetTokenBalances).Methods("GET")
	api.HandleFunc("/address-info/{address}", s.portfolioHandler.GetAddressInfo).Methods("GET")
	api.HandleFunc("/nft-valuations/{address}", s.portfolioHandler.GetNFTValuations).Methods("GET")
	api.HandleFunc("/merkle-rewards/{address}", s.portfolioHandler.GetMerkleRewards).Methods("GET")
	api.HandleFunc("/yield-tokens/{address}", s.portfolioHandler.GetYieldTokens).Methods("GET")

	// Lending
	api.HandleFunc("/lending-data/{address}", s.lendingHandler.GetLendingData).Methods("GET")
	api.HandleFunc("/tropykus-portfolio/{address}", s.lendingHandler.GetTropykusPortfolio).Methods("GET")
	api.HandleFunc("/market-overview", s.lendingHandler.GetMarketOverview).Methods("GET")

	s.router = r
}

// Start запускає HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.API.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // address aggregate чекає провайдерів
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("🚀 API server starting on %s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop зупиняє HTTP сервер gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("🛑 Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("✅ API server stopped")
	return nil
}

// Router повертає router для тестування
func (s *Server) Router() *mux.Router {
	return s.router
}
