package zarinpal

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

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(&config.ZarinpalConfig{
		MerchantID:  "merchant-1",
		BaseURL:     srv.URL,
		StartPayURL: "https://payment.example/pg/StartPay/",
		CallbackURL: "https://shop.example/verify",
	})
}

func TestRequestPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pg/v4/payment/request.json", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "merchant-1", body["merchant_id"])
		assert.Equal(t, float64(1750000), body["amount"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"code": 100, "authority": "A0000012345"},
		})
	}))
	defer srv.Close()

	authority, err := newTestClient(srv).RequestPayment(context.Background(), 1750000, "test order")
	require.NoError(t, err)
	assert.Equal(t, "A0000012345", authority)
}

func TestRequestPaymentGatewayRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"code": -9},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).RequestPayment(context.Background(), 1000, "test")
	require.Error(t, err)

	var codeErr *CodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, -9, codeErr.Code)
}

func TestVerifyPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pg/v4/payment/verify.json", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A0000012345", body["authority"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"code": 100, "ref_id": 987654321},
		})
	}))
	defer srv.Close()

	refID, err := newTestClient(srv).VerifyPayment(context.Background(), 1750000, "A0000012345")
	require.NoError(t, err)
	assert.Equal(t, int64(987654321), refID)
}

func TestVerifyPaymentHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).VerifyPayment(context.Background(), 1000, "A1")
	assert.Error(t, err)
}

func TestStartPayURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	assert.Equal(t, "https://payment.example/pg/StartPay/A42", newTestClient(srv).StartPayURL("A42"))
}
