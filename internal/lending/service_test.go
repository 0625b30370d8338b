package lending

import (
	"context"
	"errors"
	"testing"

	"github.com/GabrielaCA88/ibitracker/internal/models"
)

type mockCampaignSource struct {
	ids []string
	err error
}

func (m *mockCampaignSource) GetCampaignIDs(_ context.Context, _ string) ([]string, error) {
	return m.ids, m.err
}

type stubModule struct {
	name  string
	data  *models.APRData
	panic bool
}

func (s *stubModule) Protocol() string { return s.name }

func (s *stubModule) GetAPRData(_ context.Context, campaignIDs []string, _ []models.TokenBalance) *models.APRData {
	if s.panic {
		panic("boom")
	}
	if s.data != nil {
		return s.data
	}
	return models.EmptyAPRData(s.name, campaignIDs)
}

func (s *stubModule) GetPriceData(_ context.Context, campaignIDs []string) *models.PriceData {
	return models.EmptyPriceData(s.name, campaignIDs)
}

func TestServiceCollectsAllProtocols(t *testing.T) {
	service := NewService(
		[]ProtocolModule{&stubModule{name: "LayerBank"}, &stubModule{name: "Tropykus"}},
		&mockCampaignSource{ids: []string{"camp-1"}},
		nil,
		testLogger(),
	)

	results := service.GetLendingDataForAddress(context.Background(), "0xwallet", nil)

	if len(results) != 2 {
		t.Fatalf("Expected 2 protocol results, got %d", len(results))
	}
	if results["LayerBank"] == nil || results["Tropykus"] == nil {
		t.Error("Expected both protocols present in results")
	}
	if results["LayerBank"].CampaignIDs[0] != "camp-1" {
		t.Errorf("Expected campaign ids propagated, got %v", results["LayerBank"].CampaignIDs)
	}
}

func TestServiceModulePanicIsolated(t *testing.T) {
	service := NewService(
		[]ProtocolModule{&stubModule{name: "LayerBank", panic: true}, &stubModule{name: "Tropykus"}},
		&mockCampaignSource{},
		nil,
		testLogger(),
	)

	results := service.GetLendingDataForAddress(context.Background(), "0xwallet", nil)

	if results["Tropykus"] == nil || results["Tropykus"].Error != "" {
		t.Error("Expected healthy module unaffected by sibling panic")
	}
	if results["LayerBank"] == nil || results["LayerBank"].Error == "" {
		t.Error("Expected panicking module to produce empty data with error")
	}
}

func TestServiceCampaignIDFailureFallsBackToEmpty(t *testing.T) {
	service := NewService(
		[]ProtocolModule{&stubModule{name: "LayerBank"}},
		&mockCampaignSource{err: errors.New("merkl down")},
		nil,
		testLogger(),
	)

	results := service.GetLendingDataForAddress(context.Background(), "0xwallet", nil)

	if len(results["LayerBank"].CampaignIDs) != 0 {
		t.Errorf("Expected empty campaign ids on rewards failure, got %v", results["LayerBank"].CampaignIDs)
	}
}

func TestServiceUnknownProtocol(t *testing.T) {
	service := NewService(nil, &mockCampaignSource{}, nil, testLogger())

	if _, err := service.GetProtocolData(context.Background(), "Aave", "0xwallet", nil); err == nil {
		t.Error("Expected error for unknown protocol")
	}
}

func TestServiceMarketOverview(t *testing.T) {
	service := NewService(
		[]ProtocolModule{&stubModule{name: "LayerBank"}, &stubModule{name: "Tropykus"}},
		&mockCampaignSource{ids: []string{"camp-1"}},
		nil,
		testLogger(),
	)

	overview := service.MarketOverview(context.Background())

	if len(overview) != 2 {
		t.Fatalf("Expected 2 protocols in overview, got %d", len(overview))
	}
	// Overview не прив'язаний до гаманця - без campaign ids
	if len(overview["LayerBank"].CampaignIDs) != 0 {
		t.Errorf("Expected no campaign ids in market overview, got %v", overview["LayerBank"].CampaignIDs)
	}
}
