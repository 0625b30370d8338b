package yieldtoken

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/cache"
	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
)

const mbtcAddress = "0xef85254aa4a8490bcc9c02ae38513cae8303fb53"

type mockAPYSource struct {
	apys  map[string]float64
	err   error
	calls int
}

func (m *mockAPYSource) GetAPYs(_ context.Context) (map[string]float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.apys, nil
}

type mockRewardSource struct {
	chains []merkl.ChainRewards
	err    error
}

func (m *mockRewardSource) GetUserRewards(_ context.Context, _ string) ([]merkl.ChainRewards, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chains, nil
}

func testLogger() *logger.Logger {
	return logger.New("error")
}

func mbtcRewards(price float64) []merkl.ChainRewards {
	return []merkl.ChainRewards{
		{
			Rewards: []merkl.RewardData{
				{
					Amount: "100",
					Token: merkl.TokenData{
						// Чужий кейс адреси - нормалізується
						Address:  "0xEF85254Aa4a8490bcc9C02Ae38513Cae8303FB53",
						Symbol:   "mBTC",
						Decimals: 18,
						Price:    price,
					},
				},
			},
		},
	}
}

func newTestService(apys *mockAPYSource, rewards *mockRewardSource) *Service {
	tokens := map[string]string{
		"0xEF85254Aa4a8490bcc9C02Ae38513Cae8303FB53": "mbtc",
	}
	return NewService(apys, rewards, cache.New(time.Minute), tokens, testLogger())
}

func TestGetYieldTokenData(t *testing.T) {
	apys := &mockAPYSource{apys: map[string]float64{"mbtc": 0.042}}
	service := newTestService(apys, &mockRewardSource{chains: mbtcRewards(65000)})

	data := service.GetYieldTokenData(context.Background(), "0xwallet")

	if data.TotalYieldTokens != 1 {
		t.Fatalf("Expected 1 yield token, got %d", data.TotalYieldTokens)
	}

	token := data.YieldTokens[0]
	if token.TokenAddress != mbtcAddress {
		t.Errorf("Expected lowercased token address, got %q", token.TokenAddress)
	}
	if token.TokenSymbol != "mbtc" {
		t.Errorf("Expected symbol mbtc, got %q", token.TokenSymbol)
	}
	if token.Price != 65000 {
		t.Errorf("Expected price 65000, got %.2f", token.Price)
	}
	// APY 0.042 -> APR 4.2%
	if token.APR < 4.19 || token.APR > 4.21 {
		t.Errorf("Expected APR near 4.2, got %.4f", token.APR)
	}
	if token.Protocol != "Midas" {
		t.Errorf("Expected protocol Midas, got %q", token.Protocol)
	}
}

func TestYieldTokenWithoutPriceSkipped(t *testing.T) {
	apys := &mockAPYSource{apys: map[string]float64{"mbtc": 0.042}}
	// Винагороди без Midas токенів - ціни немає
	service := newTestService(apys, &mockRewardSource{chains: []merkl.ChainRewards{}})

	data := service.GetYieldTokenData(context.Background(), "0xwallet")

	if data.TotalYieldTokens != 0 {
		t.Errorf("Expected no yield tokens without price data, got %d", data.TotalYieldTokens)
	}
}

func TestRewardsFailureCarriesError(t *testing.T) {
	service := newTestService(&mockAPYSource{}, &mockRewardSource{err: errors.New("merkl down")})

	data := service.GetYieldTokenData(context.Background(), "0xwallet")

	if data.Error == "" {
		t.Error("Expected error field set on rewards failure")
	}
	if data.TotalYieldTokens != 0 {
		t.Errorf("Expected empty result, got %d tokens", data.TotalYieldTokens)
	}
}

func TestMidasAPYsCached(t *testing.T) {
	apys := &mockAPYSource{apys: map[string]float64{"mbtc": 0.042}}
	service := newTestService(apys, &mockRewardSource{chains: mbtcRewards(65000)})

	service.GetYieldTokenData(context.Background(), "0xwallet")
	service.GetYieldTokenData(context.Background(), "0xwallet")

	if apys.calls != 1 {
		t.Errorf("Expected 1 Midas API call with warm cache, got %d", apys.calls)
	}
}

func TestMidasFailureGivesZeroAPR(t *testing.T) {
	apys := &mockAPYSource{err: errors.New("midas down")}
	service := newTestService(apys, &mockRewardSource{chains: mbtcRewards(65000)})

	data := service.GetYieldTokenData(context.Background(), "0xwallet")

	if data.TotalYieldTokens != 1 {
		t.Fatalf("Expected price-backed token present despite APY failure, got %d", data.TotalYieldTokens)
	}
	if data.YieldTokens[0].APR != 0 {
		t.Errorf("Expected zero APR on Midas failure, got %.4f", data.YieldTokens[0].APR)
	}
}
