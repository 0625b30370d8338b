package icarus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Params []map[string]int64 `json:"params"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("Failed to parse request payload: %v", err)
		}
		if len(payload.Params) != 1 || payload.Params[0]["token_id"] != 444760 {
			t.Errorf("Unexpected payload %s", body)
		}
		w.Write([]byte(`{
			"result": {
				"position": {
					"position_events": [
						{
							"owner": "0x9d9386c042f194b460ec424a1e57acde25f5c4b1",
							"current_values": {"total_value_current": 444000.5}
						}
					],
					"current_liquidity": 123456789,
					"position_profit": {"uncollected_usd_fees": 760.25}
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	position, err := client.GetPosition(context.Background(), 444760)
	if err != nil {
		t.Fatalf("Failed to get position: %v", err)
	}
	if position == nil {
		t.Fatal("Expected position, got nil")
	}

	if len(position.PositionEvents) != 1 {
		t.Fatalf("Expected 1 position event, got %d", len(position.PositionEvents))
	}
	if position.PositionEvents[0].CurrentValues.TotalValueCurrent != 444000.5 {
		t.Errorf("Unexpected total value %v", position.PositionEvents[0].CurrentValues.TotalValueCurrent)
	}
	if position.CurrentLiquidity.String() != "123456789" {
		t.Errorf("Unexpected liquidity %s", position.CurrentLiquidity.String())
	}
	if position.PositionProfit.UncollectedUSDFees != 760.25 {
		t.Errorf("Unexpected uncollected fees %v", position.PositionProfit.UncollectedUSDFees)
	}
}

func TestGetPositionMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	position, err := client.GetPosition(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected missing position tolerated, got %v", err)
	}
	if position != nil {
		t.Errorf("Expected nil position, got %+v", position)
	}
}

// Деякі позиції приходять з current_liquidity як рядок
func TestGetPositionStringLiquidity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": {
				"position": {
					"position_events": [],
					"current_liquidity": "0",
					"position_profit": {"uncollected_usd_fees": 0}
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	position, err := client.GetPosition(context.Background(), 2)
	if err != nil {
		t.Fatalf("Failed to get position: %v", err)
	}
	if position.CurrentLiquidity.String() != "0" {
		t.Errorf("Expected zero liquidity, got %s", position.CurrentLiquidity.String())
	}
}
