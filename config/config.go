package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Mode         string `yaml:"mode"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"`
}

type Logger struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
}

type MySQLConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	Addrs    []string `yaml:"addrs"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours" mapstructure:"expire_hours"`
}

type Database struct {
	Mysql MySQLConfig `yaml:"mysql"`
	Redis RedisConfig `yaml:"redis"`
}

// MQConfig RabbitMQ settings for the stock-sync event stream.
type MQConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	ChannelPoolSize  int    `yaml:"channel_pool_size" mapstructure:"channel_pool_size"`
	ConsumerPrefetch int    `yaml:"consumer_prefetch" mapstructure:"consumer_prefetch"`
}

// AuthConfig controls the OTP login flow and SMS delivery.
type AuthConfig struct {
	OTPTTLSeconds int    `yaml:"otp_ttl_seconds" mapstructure:"otp_ttl_seconds"`
	KavenegarKey  string `yaml:"kavenegar_key" mapstructure:"kavenegar_key"`
	KavenegarURL  string `yaml:"kavenegar_url" mapstructure:"kavenegar_url"`
	OTPTemplate   string `yaml:"otp_template" mapstructure:"otp_template"`
}

type ShippingConfig struct {
	Fee int `yaml:"fee"` // Toman, added to every order total
}

// ZarinpalConfig primary bank gateway.
type ZarinpalConfig struct {
	MerchantID  string `yaml:"merchant_id" mapstructure:"merchant_id"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	StartPayURL string `yaml:"startpay_url" mapstructure:"startpay_url"`
	CallbackURL string `yaml:"callback_url" mapstructure:"callback_url"`
}

// SnappPayConfig installment (buy-now-pay-later) gateway.
type SnappPayConfig struct {
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	ReturnURL    string `yaml:"return_url" mapstructure:"return_url"`
}

// StockManagementConfig outbound inventory sync endpoint.
type StockManagementConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// StockAPIConfig static keys guarding the inbound stock/price endpoints.
type StockAPIConfig struct {
	StockKey string `yaml:"stock_key" mapstructure:"stock_key"` // X-API-KEY
	PriceKey string `yaml:"price_key" mapstructure:"price_key"` // Y-API-KEY
}

type RateLimitRule struct {
	RPS   int `yaml:"rps" mapstructure:"rps"`
	Burst int `yaml:"burst" mapstructure:"burst"`
}

type RateLimitsConfig struct {
	Global   RateLimitRule `yaml:"global" mapstructure:"global"`
	OTP      RateLimitRule `yaml:"otp" mapstructure:"otp"`
	Checkout RateLimitRule `yaml:"checkout" mapstructure:"checkout"`
}

type Config struct {
	Server          ServerConfig          `yaml:"server"`
	Database        Database              `yaml:"database"`
	JWT             JWTConfig             `yaml:"jwt"`
	Logger          Logger                `yaml:"log" mapstructure:"log"`
	MQ              MQConfig              `yaml:"mq"`
	Auth            AuthConfig            `yaml:"auth"`
	Shipping        ShippingConfig        `yaml:"shipping"`
	Zarinpal        ZarinpalConfig        `yaml:"zarinpal"`
	SnappPay        SnappPayConfig        `yaml:"snapppay"`
	StockManagement StockManagementConfig `yaml:"stock_management" mapstructure:"stock_management"`
	StockAPI        StockAPIConfig        `yaml:"stock_api" mapstructure:"stock_api"`
	RateLimits      RateLimitsConfig      `yaml:"rate_limits" mapstructure:"rate_limits"`
}

func InitConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file failed: %v", err)
	}

	var globalConfig Config
	if err := viper.Unmarshal(&globalConfig); err != nil {
		return nil, fmt.Errorf("parse config file failed: %v", err)
	}

	applyDefaults(&globalConfig)

	return &globalConfig, nil
}

// LoadConfig loads config.yaml, falling back to the repo-relative path when
// started from a cmd/ directory.
func LoadConfig() (*Config, error) {
	cfg, err := InitConfig("config/config.yaml")
	if err != nil {
		cfg, err = InitConfig("../../config/config.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %v", err)
		}
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.RateLimits.Global.RPS == 0 {
		cfg.RateLimits.Global.RPS = 500
	}
	if cfg.RateLimits.Global.Burst == 0 {
		cfg.RateLimits.Global.Burst = 1000
	}
	if cfg.RateLimits.OTP.RPS == 0 {
		cfg.RateLimits.OTP.RPS = 1
	}
	if cfg.RateLimits.OTP.Burst == 0 {
		cfg.RateLimits.OTP.Burst = 3
	}
	if cfg.RateLimits.Checkout.RPS == 0 {
		cfg.RateLimits.Checkout.RPS = 20
	}
	if cfg.RateLimits.Checkout.Burst == 0 {
		cfg.RateLimits.Checkout.Burst = 40
	}
	if cfg.MQ.ChannelPoolSize <= 0 {
		cfg.MQ.ChannelPoolSize = 8
	}
	if cfg.MQ.ConsumerPrefetch <= 0 {
		cfg.MQ.ConsumerPrefetch = 100
	}
	if cfg.Shipping.Fee <= 0 {
		cfg.Shipping.Fee = 75000
	}
	if cfg.Auth.OTPTTLSeconds <= 0 {
		cfg.Auth.OTPTTLSeconds = 30
	}
	if cfg.Zarinpal.BaseURL == "" {
		cfg.Zarinpal.BaseURL = "https://payment.zarinpal.com"
	}
	if cfg.Zarinpal.StartPayURL == "" {
		cfg.Zarinpal.StartPayURL = "https://payment.zarinpal.com/pg/StartPay/"
	}
	if cfg.Auth.KavenegarURL == "" {
		cfg.Auth.KavenegarURL = "https://api.kavenegar.com"
	}
	if cfg.Auth.OTPTemplate == "" {
		cfg.Auth.OTPTemplate = "verify"
	}
}
