package snapppay

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
	return NewClient(&config.SnappPayConfig{
		BaseURL:      srv.URL,
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		Username:     "merchant",
		Password:     "pass",
		ReturnURL:    "https://shop.example/snapppay-result",
	})
}

func TestToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/online/v1/oauth/token", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-1", user)
		assert.Equal(t, "secret-1", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "merchant", r.PostForm.Get("username"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "bearer-token"})
	}))
	defer srv.Close()

	token, err := newTestClient(srv).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", token)
}

func TestTokenEmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Token(context.Background())
	assert.Error(t, err)
}

func TestEligible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/online/offer/v1/eligible", r.URL.Path)
		assert.Equal(t, "2500000", r.URL.Query().Get("amount"))
		assert.Equal(t, "Bearer bearer-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{
				"eligible":      true,
				"title_message": "خرید اقساطی",
				"description":   "پرداخت در چهار قسط",
			},
		})
	}))
	defer srv.Close()

	info, err := newTestClient(srv).Eligible(context.Background(), "bearer-token", 2500000)
	require.NoError(t, err)
	assert.True(t, info.Eligible)
	assert.Equal(t, "خرید اقساطی", info.TitleMessage)
}

func TestPaymentToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/online/payment/v1/token", r.URL.Path)

		var req TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "INSTALLMENT", req.PaymentMethodTypeDto)
		assert.Equal(t, 2500000, req.Amount)
		require.Len(t, req.CartList, 1)
		assert.True(t, req.CartList[0].IsShipmentIncluded)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]string{
				"paymentToken":   "pt-1",
				"paymentPageUrl": "https://snapppay.example/pay/pt-1",
			},
		})
	}))
	defer srv.Close()

	request := TokenRequest{
		Amount: 2500000,
		CartList: []CartRecord{{
			CartID:             12,
			CartItems:          []CartItem{{ID: 1, Amount: 1000000, Count: 1, Name: "تابلو", CommissionType: "100"}},
			IsShipmentIncluded: true,
			ShippingAmount:     750000,
			TotalAmount:        2500000,
		}},
		Mobile:               "+989121234567",
		PaymentMethodTypeDto: "INSTALLMENT",
		ReturnURL:            "https://shop.example/snapppay-result",
		TransactionID:        "1234567891",
	}
	token, pageURL, err := newTestClient(srv).PaymentToken(context.Background(), "bearer-token", request)
	require.NoError(t, err)
	assert.Equal(t, "pt-1", token)
	assert.Equal(t, "https://snapppay.example/pay/pt-1", pageURL)
}

func TestVerifyAndSettle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pt-1", body["paymentToken"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"successful": true,
			"response":   map[string]string{"transactionId": "tx-42"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	verify, err := client.Verify(context.Background(), "bearer-token", "pt-1")
	require.NoError(t, err)
	assert.True(t, verify.Successful)
	assert.Equal(t, "tx-42", verify.TransactionID)

	settle, err := client.Settle(context.Background(), "bearer-token", "pt-1")
	require.NoError(t, err)
	assert.Equal(t, verify.TransactionID, settle.TransactionID)
}

func TestCancelUnsuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"successful": false})
	}))
	defer srv.Close()

	result, err := newTestClient(srv).Cancel(context.Background(), "bearer-token", "pt-1")
	require.NoError(t, err)
	assert.False(t, result.Successful)
}

func TestPaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/online/payment/v1/status", r.URL.Path)
		assert.Equal(t, "pt-1", r.URL.Query().Get("paymentToken"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"successful": true,
			"response": map[string]interface{}{
				"transactionId": "tx-42",
				"status":        "SETTLED",
				"amount":        2500000,
			},
		})
	}))
	defer srv.Close()

	status, err := newTestClient(srv).PaymentStatus(context.Background(), "bearer-token", "pt-1")
	require.NoError(t, err)
	assert.True(t, status.Successful)
	assert.Equal(t, "SETTLED", status.Status)
	assert.Equal(t, int64(2500000), status.Amount)
}
