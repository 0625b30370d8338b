package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/api"
	"github.com/GabrielaCA88/ibitracker/internal/balance"
	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/chain"
	"github.com/GabrielaCA88/ibitracker/internal/config"
	"github.com/GabrielaCA88/ibitracker/internal/lending"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/nftvalue"
	"github.com/GabrielaCA88/ibitracker/internal/providers/blockscout"
	"github.com/GabrielaCA88/ibitracker/internal/providers/explorer"
	"github.com/GabrielaCA88/ibitracker/internal/providers/footprint"
	"github.com/GabrielaCA88/ibitracker/internal/providers/icarus"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
	"github.com/GabrielaCA88/ibitracker/internal/providers/midas"
	"github.com/GabrielaCA88/ibitracker/internal/refresh"
	"github.com/GabrielaCA88/ibitracker/internal/rewards"
	"github.com/GabrielaCA88/ibitracker/internal/router"
	"github.com/GabrielaCA88/ibitracker/internal/yieldtoken"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.App.LogLevel)
	defer appLog.Sync()

	appLog.Info("🚀 Starting ibitracker API...")
	appLog.Info("Environment: %s", cfg.App.Environment)

	// Provider clients
	blockscoutClient := blockscout.NewClient(cfg.Providers.BlockscoutBase)
	explorerClient := explorer.NewClient(cfg.Providers.ExplorerBase)
	merklClient := merkl.NewClient(cfg.Providers.MerklBase, cfg.Chain.ChainID)
	footprintClient := footprint.NewClient(cfg.Providers.FootprintBase, cfg.Providers.FootprintAPIKey, cfg.Providers.FootprintCardID)
	midasClient := midas.NewClient(cfg.Providers.MidasBase)
	icarusClient := icarus.NewClient(cfg.Providers.IcarusBase)

	// Rootstock RPC
	chainClient, err := chain.NewClient(cfg.Chain.RPCURL, cfg.Chain.Comptroller)
	if err != nil {
		appLog.Fatal("Failed to connect to Rootstock RPC: %v", err)
	}
	defer chainClient.Close()
	appLog.Info("✅ Rootstock RPC connected: %s", cfg.Chain.RPCURL)

	appCache := cache.New(time.Duration(cfg.Providers.CacheTTLMinutes) * time.Minute)
	probeTimeout := time.Duration(cfg.Providers.ProbeTimeoutSecs) * time.Second

	// Services
	balanceService := balance.NewService(blockscoutClient, explorerClient, cfg.Providers.WRBTCAddress, appLog)
	rewardsService := rewards.NewService(merklClient, merklClient.WithTimeout(probeTimeout), appLog)
	nftService := nftvalue.NewService(blockscoutClient, icarusClient, appLog)
	yieldService := yieldtoken.NewService(midasClient, merklClient, appCache, cfg.Providers.MidasTokens, appLog)

	layerbank := lending.NewLayerBankModule(merklClient, footprintClient, lending.FirstCampaignMatcher, appCache, appLog)
	tropykus := lending.NewTropykusModule(chainClient, merklClient, lending.FirstCampaignMatcher, cfg.Chain.BlocksPerYear, appLog)
	lendingService := lending.NewService(
		[]lending.ProtocolModule{layerbank, tropykus},
		rewardsService,
		tropykus,
		appLog,
	)

	// Evidence-gated router з лінивими фабриками
	gate := router.NewEvidenceGate(rewardsService, probeTimeout, appLog)
	addressRouter := router.New(gate, router.Factories{
		NFT:     func() router.NFTService { return nftService },
		Rewards: func() router.RewardsService { return rewardsService },
		Yield:   func() router.YieldService { return yieldService },
		Lending: func() router.LendingService { return lendingService },
	}, appLog)

	// Background market overview refresh
	var scheduler *refresh.Scheduler
	if cfg.Refresh.Enabled {
		scheduler = refresh.NewScheduler(cfg.Refresh.CronSpec, lendingService, appCache, appLog)
		if err := scheduler.Start(); err != nil {
			appLog.Fatal("Failed to start refresh scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// API server
	server := api.NewServer(cfg, api.Dependencies{
		Balances: balanceService,
		Router:   addressRouter,
		NFT:      nftService,
		Rewards:  rewardsService,
		Yield:    yieldService,
		Lending:  lendingService,
		Cache:    appCache,
	}, appLog)

	go func() {
		if err := server.Start(); err != nil {
			appLog.Fatal("Failed to start server: %v", err)
		}
	}()

	appLog.Info("✅ API server started on port %s", cfg.API.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.Error("Shutdown error: %v", err)
	}

	appLog.Info("✅ Shutdown complete")
}
