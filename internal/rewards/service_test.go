package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GabrielaCA88/ibitracker/internal/logger"
	"github.com/GabrielaCA88/ibitracker/internal/providers/merkl"
)

type mockMerklSource struct {
	chains []merkl.ChainRewards
	err    error
	delay  time.Duration
}

func (m *mockMerklSource) GetUserRewards(ctx context.Context, _ string) ([]merkl.ChainRewards, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.chains, nil
}

func testLogger() *logger.Logger {
	return logger.New("error")
}

func rewardsFixture() []merkl.ChainRewards {
	return []merkl.ChainRewards{
		{
			Chain: merkl.Chain{ID: 30, Name: "Rootstock"},
			Rewards: []merkl.RewardData{
				{
					// 1.5 токена з 18 decimals
					Amount: "1500000000000000000",
					Token: merkl.TokenData{
						Address:  "0xEF85254Aa4a8490bcc9C02Ae38513Cae8303FB53",
						Symbol:   "mBTC",
						Decimals: 18,
						Price:    100.0,
					},
					Breakdowns: []merkl.RewardBreakdown{
						{CampaignID: "0xcamp1", Amount: "1500000000000000000"},
					},
				},
				{
					Amount: "0",
					Token:  merkl.TokenData{Symbol: "DUST", Decimals: 18},
				},
			},
		},
	}
}

func TestGetAddressRewardsSummary(t *testing.T) {
	service := NewService(&mockMerklSource{chains: rewardsFixture()}, nil, testLogger())

	summary, err := service.GetAddressRewardsSummary(context.Background(), "0xwallet")
	if err != nil {
		t.Fatalf("Failed to get rewards summary: %v", err)
	}

	// Нульова винагорода відкинута
	if summary.TotalRewards != 1 {
		t.Fatalf("Expected 1 reward, got %d", summary.TotalRewards)
	}

	reward := summary.Rewards[0]
	if reward.AmountNumeric != 1.5 {
		t.Errorf("Expected amount 1.5, got %.4f", reward.AmountNumeric)
	}
	if reward.USDValue != 150.0 {
		t.Errorf("Expected USD value 150.0, got %.2f", reward.USDValue)
	}
	if reward.CampaignID != "0xcamp1" {
		t.Errorf("Expected campaign id from breakdown, got %q", reward.CampaignID)
	}
	if summary.TotalUSDValueFormatted != "$150.00" {
		t.Errorf("Expected formatted total $150.00, got %q", summary.TotalUSDValueFormatted)
	}
	if len(summary.CampaignIDs) != 1 || summary.CampaignIDs[0] != "0xcamp1" {
		t.Errorf("Expected campaign ids collected, got %v", summary.CampaignIDs)
	}
}

func TestGetCampaignIDsUnique(t *testing.T) {
	chains := []merkl.ChainRewards{
		{
			Rewards: []merkl.RewardData{
				{
					Amount: "100",
					Breakdowns: []merkl.RewardBreakdown{
						{CampaignID: "0xcamp1"},
						{CampaignID: "0xcamp2"},
					},
				},
				{
					Amount: "200",
					Breakdowns: []merkl.RewardBreakdown{
						{CampaignID: "0xcamp1"},
						{CampaignID: ""},
					},
				},
			},
		},
	}

	service := NewService(&mockMerklSource{chains: chains}, nil, testLogger())

	ids, err := service.GetCampaignIDs(context.Background(), "0xwallet")
	if err != nil {
		t.Fatalf("Failed to get campaign IDs: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("Expected 2 unique campaign ids, got %v", ids)
	}
	if ids[0] != "0xcamp1" || ids[1] != "0xcamp2" {
		t.Errorf("Expected deduplicated ids in order, got %v", ids)
	}
}

func TestHasClaimableRewards(t *testing.T) {
	service := NewService(nil, &mockMerklSource{chains: rewardsFixture()}, testLogger())

	if !service.HasClaimableRewards(context.Background(), "0xwallet", time.Second) {
		t.Error("Expected claimable rewards for non-zero amount")
	}
}

func TestHasClaimableRewardsZeroAmounts(t *testing.T) {
	chains := []merkl.ChainRewards{
		{Rewards: []merkl.RewardData{{Amount: "0"}}},
	}
	service := NewService(nil, &mockMerklSource{chains: chains}, testLogger())

	if service.HasClaimableRewards(context.Background(), "0xwallet", time.Second) {
		t.Error("Expected no claimable rewards for zero amounts")
	}
}

func TestHasClaimableRewardsSwallowsErrors(t *testing.T) {
	service := NewService(nil, &mockMerklSource{err: errors.New("merkl down")}, testLogger())

	if service.HasClaimableRewards(context.Background(), "0xwallet", time.Second) {
		t.Error("Expected false when probe fails")
	}
}

func TestHasClaimableRewardsTimeout(t *testing.T) {
	service := NewService(nil, &mockMerklSource{chains: rewardsFixture(), delay: 200 * time.Millisecond}, testLogger())

	if service.HasClaimableRewards(context.Background(), "0xwallet", 10*time.Millisecond) {
		t.Error("Expected false when probe exceeds timeout")
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{2_500_000, "$2.50M"},
		{12_345, "$12.35K"},
		{42.5, "$42.50"},
		{0, "$0.00"},
	}

	for _, tt := range tests {
		if got := formatUSDValue(tt.value); got != tt.expected {
			t.Errorf("formatUSDValue(%.2f): expected %q, got %q", tt.value, tt.expected, got)
		}
	}

	if got := formatTokenAmount(1_500_000); got != "1.50M" {
		t.Errorf("Expected 1.50M, got %q", got)
	}
	if got := formatTokenAmount(0.000123); got != "0.000123" {
		t.Errorf("Expected 0.000123, got %q", got)
	}
}
