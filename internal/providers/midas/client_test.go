package midas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAPYs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/apys" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"mbtc": 0.042, "musd": 0.051}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	apys, err := client.GetAPYs(context.Background())
	if err != nil {
		t.Fatalf("Failed to get APYs: %v", err)
	}

	if len(apys) != 2 {
		t.Fatalf("Expected 2 APYs, got %d", len(apys))
	}
	if apys["mbtc"] != 0.042 {
		t.Errorf("Expected mbtc 0.042, got %v", apys["mbtc"])
	}
}

func TestGetAPYsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if _, err := client.GetAPYs(context.Background()); err == nil {
		t.Error("Expected error on server failure")
	}
}
