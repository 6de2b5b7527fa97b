package kavenegar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rasouli77/ellenovastyle/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTP(t *testing.T) {
	var gotPath, gotReceptor, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotReceptor = r.URL.Query().Get("receptor")
		gotToken = r.URL.Query().Get("token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(&config.AuthConfig{
		KavenegarURL: srv.URL,
		KavenegarKey: "api-key-1",
		OTPTemplate:  "verify",
	})

	err := client.SendOTP(context.Background(), "09121234567", "4821")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "/v1/api-key-1/"))
	assert.Equal(t, "009809121234567", gotReceptor)
	assert.Equal(t, "4821", gotToken)
}

func TestSendOTPFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(&config.AuthConfig{KavenegarURL: srv.URL, KavenegarKey: "k", OTPTemplate: "verify"})
	assert.Error(t, client.SendOTP(context.Background(), "09121234567", "1111"))
}
