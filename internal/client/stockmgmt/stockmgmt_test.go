package stockmgmt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rasouli77/ellenovastyle/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("X-Api-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ABC4512-50x70", body["product_code"])
		assert.Equal(t, float64(7), body["stock"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(&config.StockManagementConfig{URL: srv.URL, APIKey: "key-1"})
	require.NoError(t, client.PushStock(context.Background(), "ABC4512-50x70", 7))
}

func TestPushStockRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(&config.StockManagementConfig{URL: srv.URL, APIKey: "wrong"})
	assert.Error(t, client.PushStock(context.Background(), "X", 1))
}
