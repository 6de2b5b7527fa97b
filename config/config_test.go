package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 75000, cfg.Shipping.Fee)
	assert.Equal(t, 30, cfg.Auth.OTPTTLSeconds)
	assert.Equal(t, 8, cfg.MQ.ChannelPoolSize)
	assert.Equal(t, 100, cfg.MQ.ConsumerPrefetch)
	assert.Equal(t, "https://payment.zarinpal.com/pg/StartPay/", cfg.Zarinpal.StartPayURL)
	assert.NotZero(t, cfg.RateLimits.Global.RPS)
	assert.NotZero(t, cfg.RateLimits.OTP.Burst)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Shipping.Fee = 90000
	cfg.Auth.OTPTTLSeconds = 120
	applyDefaults(cfg)

	assert.Equal(t, 90000, cfg.Shipping.Fee)
	assert.Equal(t, 120, cfg.Auth.OTPTTLSeconds)
}
