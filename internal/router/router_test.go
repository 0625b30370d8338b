package router

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/models"
)

type mockNFTService struct {
	valuations []models.NFTValuation
	calls      int
}

func (m *mockNFTService) GetAddressNFTValuations(_ context.Context, _ string) ([]models.NFTValuation, error) {
	m.calls++
	return m.valuations, nil
}

type mockRewardsService struct {
	summary *models.RewardsSummary
	calls   int
}

func (m *mockRewardsService) GetAddressRewardsSummary(_ context.Context, _ string) (*models.RewardsSummary, error) {
	m.calls++
	return m.summary, nil
}

type mockYieldService struct {
	calls int
}

func (m *mockYieldService) GetYieldTokenData(_ context.Context, _ string) *models.YieldTokenData {
	m.calls++
	return models.EmptyYieldTokenData()
}

type mockLendingService struct {
	calls int
}

func (m *mockLendingService) GetLendingDataForAddress(_ context.Context, _ string, _ []models.TokenBalance) map[string]*models.APRData {
	m.calls++
	return map[string]*models.APRData{"LayerBank": models.EmptyAPRData("LayerBank", nil)}
}

func (m *mockLendingService) GetTropykusPortfolio(_ context.Context, _ string, _ []models.TokenBalance) *models.TropykusPortfolio {
	return models.EmptyTropykusPortfolio()
}

type testHarness struct {
	router      *Router
	nft         *mockNFTService
	rewards     *mockRewardsService
	yield       *mockYieldService
	lending     *mockLendingService
	nftBuilds   int
	yieldBuilds int
}

func newTestHarness(probe RewardsProbe) *testHarness {
	h := &testHarness{
		nft:     &mockNFTService{valuations: []models.NFTValuation{{NFTID: "42", TotalValueUSD: 100}}},
		rewards: &mockRewardsService{summary: &models.RewardsSummary{TotalRewards: 1, TotalUSDValue: 10}},
		yield:   &mockYieldService{},
		lending: &mockLendingService{},
	}

	gate := NewEvidenceGate(probe, time.Second, testLogger())
	h.router = New(gate, Factories{
		NFT: func() NFTService {
			h.nftBuilds++
			return h.nft
		},
		Rewards: func() RewardsService { return h.rewards },
		Yield: func() YieldService {
			h.yieldBuilds++
			return h.yield
		},
		Lending: func() LendingService { return h.lending },
	}, testLogger())

	return h
}

func TestProcessAddressNFTOnly(t *testing.T) {
	h := newTestHarness(&mockProbe{claimable: false})

	balances := []models.TokenBalance{
		{
			Token: models.Token{Symbol: "POS", Name: "LP Positions", Type: models.TokenTypeERC721},
			Value: "1",
		},
	}

	result := h.router.ProcessAddress(context.Background(), "0xwallet", balances)

	if !result.Evidence.HasNFTs {
		t.Error("Expected NFT evidence")
	}
	if len(result.NFTValuations) != 1 {
		t.Errorf("Expected 1 NFT valuation, got %d", len(result.NFTValuations))
	}

	// Тільки NFT сервіс мав бути викликаний
	if h.nft.calls != 1 {
		t.Errorf("Expected 1 NFT service call, got %d", h.nft.calls)
	}
	if h.rewards.calls != 0 || h.yield.calls != 0 || h.lending.calls != 0 {
		t.Error("Expected ungated services to stay untouched")
	}
	if h.yieldBuilds != 0 {
		t.Error("Expected yield service factory never invoked without evidence")
	}

	// Інші секції - задокументовані порожні форми
	if result.MerkleRewards == nil || result.MerkleRewards.TotalRewards != 0 {
		t.Error("Expected empty rewards summary")
	}
	if result.YieldTokens == nil || result.YieldTokens.TotalYieldTokens != 0 {
		t.Error("Expected empty yield token data")
	}
	if result.LendingPortfolio.Tropykus == nil {
		t.Error("Expected empty Tropykus portfolio form")
	}
}

func TestProcessAddressFullEvidence(t *testing.T) {
	h := newTestHarness(&mockProbe{claimable: true})

	balances := []models.TokenBalance{
		erc20("mBTC", "Midas BTC", "100"),
		erc20("kUSDT", "Tropykus kUSDT", "1000"),
		{
			Token: models.Token{Symbol: "POS", Name: "LP Positions", Type: models.TokenTypeERC721},
			Value: "1",
		},
	}

	result := h.router.ProcessAddress(context.Background(), "0xwallet", balances)

	if h.nft.calls != 1 || h.rewards.calls != 1 || h.yield.calls != 1 || h.lending.calls != 1 {
		t.Errorf("Expected all services called exactly once, got nft=%d rewards=%d yield=%d lending=%d",
			h.nft.calls, h.rewards.calls, h.yield.calls, h.lending.calls)
	}
	if result.MerkleRewards.TotalRewards != 1 {
		t.Error("Expected rewards summary from service")
	}
	if result.LendingPortfolio.LayerBank == nil {
		t.Error("Expected LayerBank section populated")
	}
}

func TestProcessAddressFactoryMemoized(t *testing.T) {
	h := newTestHarness(&mockProbe{claimable: false})

	balances := []models.TokenBalance{
		{
			Token: models.Token{Symbol: "POS", Name: "LP Positions", Type: models.TokenTypeERC721},
			Value: "1",
		},
	}

	h.router.ProcessAddress(context.Background(), "0xwallet", balances)
	h.router.ProcessAddress(context.Background(), "0xwallet", balances)

	if h.nftBuilds != 1 {
		t.Errorf("Expected NFT factory invoked once across requests, got %d", h.nftBuilds)
	}
	if h.nft.calls != 2 {
		t.Errorf("Expected memoized service reused, got %d calls", h.nft.calls)
	}
}

type panickingNFTService struct{}

func (panickingNFTService) GetAddressNFTValuations(_ context.Context, _ string) ([]models.NFTValuation, error) {
	panic("nft service exploded")
}

func TestProcessAddressServicePanicIsolated(t *testing.T) {
	h := newTestHarness(&mockProbe{claimable: true})
	h.router.factories.NFT = func() NFTService { return panickingNFTService{} }

	balances := []models.TokenBalance{
		erc20("kUSDT", "Tropykus kUSDT", "1000"),
		{
			Token: models.Token{Symbol: "POS", Name: "LP Positions", Type: models.TokenTypeERC721},
			Value: "1",
		},
	}

	result := h.router.ProcessAddress(context.Background(), "0xwallet", balances)

	// NFT panic не сміє зачепити решту секцій
	if len(result.NFTValuations) != 0 {
		t.Error("Expected empty NFT section after panic")
	}
	if result.MerkleRewards.TotalRewards != 1 {
		t.Error("Expected rewards section populated despite NFT panic")
	}
	if h.lending.calls != 1 {
		t.Error("Expected lending service still called")
	}
}
