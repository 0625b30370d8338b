package footprint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryCard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("api-key"); got != "test-key" {
			t.Errorf("Expected api-key header, got %q", got)
		}
		if r.URL.Path != "/52841/query" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"data": {
				"rows": [
					["2026-08-29", "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", 0.05, 0.08],
					["2026-08-29", "0xbbbb", "0.02", "0.04"],
					["2026-08-29", null, null, null]
				],
				"cols": [
					{"display_name": "latest_update"},
					{"display_name": "reserve"},
					{"display_name": "liquidityrate"},
					{"display_name": "variableborrowrate"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "52841")

	rows, err := client.QueryCard(context.Background())
	if err != nil {
		t.Fatalf("Failed to query card: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].LiquidityRate != 0.05 {
		t.Errorf("Expected numeric cell parsed, got %.4f", rows[0].LiquidityRate)
	}
	// Рядкові cells теж парсяться
	if rows[1].LiquidityRate != 0.02 {
		t.Errorf("Expected string cell parsed, got %.4f", rows[1].LiquidityRate)
	}
	// null cells дають нульові значення
	if rows[2].Reserve != "" || rows[2].LiquidityRate != 0 {
		t.Errorf("Expected null cells tolerated, got %+v", rows[2])
	}
}

func TestQueryCardAcceptsCreated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"rows": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "1")

	if _, err := client.QueryCard(context.Background()); err != nil {
		t.Errorf("Expected 201 accepted, got %v", err)
	}
}

func TestQueryCardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "1")

	if _, err := client.QueryCard(context.Background()); err == nil {
		t.Error("Expected error on server failure")
	}
}
