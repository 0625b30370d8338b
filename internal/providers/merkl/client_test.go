package merkl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetUserRewardsArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("chainId"); got != "30" {
			t.Errorf("Expected chainId 30, got %q", got)
		}
		if got := r.URL.Query().Get("claimableOnly"); got != "true" {
			t.Errorf("Expected claimableOnly true, got %q", got)
		}
		w.Write([]byte(`[
			{
				"chain": {"id": 30, "name": "Rootstock"},
				"rewards": [
					{
						"amount": "1500000000000000000",
						"token": {"address": "0xToken", "symbol": "mBTC", "decimals": 18, "price": 65000},
						"breakdowns": [{"campaignId": "0xcamp1", "amount": "1500000000000000000"}]
					}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "30")

	chains, err := client.GetUserRewards(context.Background(), "0xWALLET")
	if err != nil {
		t.Fatalf("Failed to get rewards: %v", err)
	}

	if len(chains) != 1 {
		t.Fatalf("Expected 1 chain, got %d", len(chains))
	}
	if len(chains[0].Rewards) != 1 {
		t.Fatalf("Expected 1 reward, got %d", len(chains[0].Rewards))
	}
	if chains[0].Rewards[0].Breakdowns[0].CampaignID != "0xcamp1" {
		t.Errorf("Unexpected campaign id %q", chains[0].Rewards[0].Breakdowns[0].CampaignID)
	}
}

func TestGetUserRewardsSingleObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chain": {"id": 30, "name": "Rootstock"}, "rewards": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "30")

	chains, err := client.GetUserRewards(context.Background(), "0xwallet")
	if err != nil {
		t.Fatalf("Failed to get rewards: %v", err)
	}
	if len(chains) != 1 {
		t.Errorf("Expected single object wrapped into slice, got %d chains", len(chains))
	}
}

func TestGetOpportunityByCampaignList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("campaignId"); got != "0xcamp1" {
			t.Errorf("Expected campaignId 0xcamp1, got %q", got)
		}
		w.Write([]byte(`[
			{
				"id": "opp-1",
				"status": "LIVE",
				"action": "LEND",
				"apr": 3.5,
				"tokens": [
					{"address": "0xExplorer", "symbol": "kUSDT", "price": 1.0},
					{"address": "0xReserve", "symbol": "USDT", "price": 1.0}
				]
			}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "30")

	opp, err := client.GetOpportunityByCampaign(context.Background(), "0xcamp1")
	if err != nil {
		t.Fatalf("Failed to get opportunity: %v", err)
	}
	if opp == nil {
		t.Fatal("Expected opportunity, got nil")
	}
	if opp.APR != 3.5 {
		t.Errorf("Expected APR 3.5, got %.2f", opp.APR)
	}
	if len(opp.Tokens) != 2 {
		t.Errorf("Expected 2 tokens, got %d", len(opp.Tokens))
	}
}

func TestGetOpportunityByCampaignEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "30")

	opp, err := client.GetOpportunityByCampaign(context.Background(), "0xmissing")
	if err != nil {
		t.Fatalf("Expected empty list without error, got %v", err)
	}
	if opp != nil {
		t.Errorf("Expected nil opportunity for empty list, got %+v", opp)
	}
}

func TestGetOpportunityServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "30")

	if _, err := client.GetOpportunityByCampaign(context.Background(), "0xcamp1"); err == nil {
		t.Error("Expected error on server failure")
	}
}
