package router

import (
	"context"
	"sync"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/models"
)

// NFTService оцінює NFT позиції адреси
type NFTService interface {
	GetAddressNFTValuations(ctx context.Context, address string) ([]models.NFTValuation, error)
}

// RewardsService зводить Merkl винагороди адреси
type RewardsService interface {
	GetAddressRewardsSummary(ctx context.Context, address string) (*models.RewardsSummary, error)
}

// YieldService збирає дані yield токенів адреси
type YieldService interface {
	GetYieldTokenData(ctx context.Context, address string) *models.YieldTokenData
}

// LendingService збирає lending дані адреси
type LendingService interface {
	GetLendingDataForAddress(ctx context.Context, address string, walletTokens []models.TokenBalance) map[string]*models.APRData
	GetTropykusPortfolio(ctx context.Context, address string, balances []models.TokenBalance) *models.TropykusPortfolio
}

// Factories - ліниві конструктори сервісів. Сервіс будується тільки
// коли evidence каже що він потрібен, і рівно один раз.
type Factories struct {
	NFT     func() NFTService
	Rewards func() RewardsService
	Yield   func() YieldService
	Lending func() LendingService
}

// Router координує evidence gate та сервіси
type Router struct {
	gate      *EvidenceGate
	factories Factories
	log       *logger.Logger

	mu      sync.Mutex
	nft     NFTService
	rewards RewardsService
	yield   YieldService
	lending LendingService
}

// New створює router з evidence gate та лінивими фабриками
func New(gate *EvidenceGate, factories Factories, log *logger.Logger) *Router {
	return &Router{
		gate:      gate,
		factories: factories,
		log:       log,
	}
}

// ProcessAddress збирає evidence та запускає тільки потрібні сервіси
// паралельно. Відмова або panic одного сервісу лишає його секцію
// порожньою, не чіпаючи решту; panic самого оркестратора дає порожній
// результат з усіма evidence прапорцями true.
func (r *Router) ProcessAddress(ctx context.Context, address string, balances []models.TokenBalance) (result *models.AggregateResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("❌ Error processing address %s: %v", address, rec)
			result = models.EmptyAggregateResult(address, models.AllEvidence())
		}
	}()

	evidence := r.gate.Gather(ctx, address, balances)
	result = models.EmptyAggregateResult(address, evidence)

	var wg sync.WaitGroup

	if evidence.HasNFTs {
		r.runTask(&wg, "nft_valuations", func() {
			valuations, err := r.nftService().GetAddressNFTValuations(ctx, address)
			if err != nil {
				r.log.Error("❌ Error getting NFT data for %s: %v", address, err)
				return
			}
			result.NFTValuations = valuations
		})
	}

	if evidence.HasMerkleRewards {
		r.runTask(&wg, "merkle_rewards", func() {
			summary, err := r.rewardsService().GetAddressRewardsSummary(ctx, address)
			if err != nil {
				r.log.Error("❌ Error getting Merkl rewards for %s: %v", address, err)
				return
			}
			result.MerkleRewards = summary
		})
	}

	if evidence.HasYieldToken {
		r.runTask(&wg, "yield_tokens", func() {
			result.YieldTokens = r.yieldService().GetYieldTokenData(ctx, address)
		})
	}

	if evidence.HasLending {
		r.runTask(&wg, "lending_data", func() {
			protocols := r.lendingService().GetLendingDataForAddress(ctx, address, balances)
			if layerbank, ok := protocols["LayerBank"]; ok {
				result.LendingPortfolio.LayerBank = layerbank
			}
		})
		r.runTask(&wg, "tropykus_portfolio", func() {
			result.LendingPortfolio.Tropykus = r.lendingService().GetTropykusPortfolio(ctx, address, balances)
		})
	}

	wg.Wait()

	r.log.Info("✅ Successfully processed %s with evidence: %+v", address, evidence)
	return result
}

// runTask запускає сервіс у goroutine з ізоляцією panic.
// result секції пишуться без mutex: кожен task володіє своєю секцією.
func (r *Router) runTask(wg *sync.WaitGroup, name string, task func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("❌ Panic in %s task: %v", name, rec)
			}
		}()
		task()
	}()
}

// Ліниві сервіси: фабрика викликається один раз при першій потребі

func (r *Router) nftService() NFTService {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nft == nil {
		r.log.Info("Initializing NFT service")
		r.nft = r.factories.NFT()
	}
	return r.nft
}

func (r *Router) rewardsService() RewardsService {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rewards == nil {
		r.log.Info("Initializing rewards service")
		r.rewards = r.factories.Rewards()
	}
	return r.rewards
}

func (r *Router) yieldService() YieldService {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.yield == nil {
		r.log.Info("Initializing yield token service")
		r.yield = r.factories.Yield()
	}
	return r.yield
}

func (r *Router) lendingService() LendingService {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lending == nil {
		r.log.Info("Initializing lending service")
		r.lending = r.factories.Lending()
	}
	return r.lending
}
