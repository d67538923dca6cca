// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	Shops     ShopsConfig     `mapstructure:"shops"`
	Market    MarketConfig    `mapstructure:"market"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	History   HistoryConfig   `mapstructure:"history"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Cards     []CardConfig    `mapstructure:"cards"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	HealthPort  int    `mapstructure:"health_port"`
}

// RefreshConfig tunes the refresh loop and price math.
type RefreshConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	JPYUSDRate   float64       `mapstructure:"jpy_usd_rate"`
	SnapshotPath string        `mapstructure:"snapshot_path"`
}

// JPYUSDRateDecimal returns the conversion rate as decimal.Decimal.
func (c *RefreshConfig) JPYUSDRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.JPYUSDRate)
}

// ShopsConfig selects which shops are scraped and how.
type ShopsConfig struct {
	// Active lists the shop identifiers whose quotes participate in
	// baseline selection.
	Active []string `mapstructure:"active"`

	CardRush   ShopConfig `mapstructure:"cardrush"`
	TorecaCamp ShopConfig `mapstructure:"torecacamp"`
}

// ShopConfig holds per-shop scraping settings.
type ShopConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`

	// MinRequestInterval is the floor between successive requests to
	// this shop.
	MinRequestInterval time.Duration `mapstructure:"min_request_interval"`
}

// MarketConfig holds the reference price API settings.
type MarketConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`

	MinRequestInterval time.Duration `mapstructure:"min_request_interval"`
}

// TelegramConfig holds viable-opportunity notification settings.
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  int64  `mapstructure:"chat_id"`
}

// HistoryConfig holds the price history database settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// CardConfig identifies one tracked card.
type CardConfig struct {
	Set    string `mapstructure:"set"`
	Number string `mapstructure:"number"`
	Rarity string `mapstructure:"rarity"`
	Name   string `mapstructure:"name"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("PKA")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "PKA_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "PKA_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "PKA_LOG_LEVEL", "LOG_LEVEL")

	// Refresh
	v.BindEnv("refresh.interval", "PKA_REFRESH_INTERVAL")
	v.BindEnv("refresh.jpy_usd_rate", "PKA_JPY_USD_RATE")
	v.BindEnv("refresh.snapshot_path", "PKA_SNAPSHOT_PATH")

	// Shops
	v.BindEnv("shops.active", "PKA_SHOPS_ACTIVE")
	v.BindEnv("shops.cardrush.base_url", "PKA_CARDRUSH_URL")
	v.BindEnv("shops.torecacamp.base_url", "PKA_TORECACAMP_URL")

	// Market
	v.BindEnv("market.base_url", "PKA_MARKET_URL")
	v.BindEnv("market.api_key", "PKA_MARKET_API_KEY", "PRICECHARTING_API_KEY")

	// Telegram
	v.BindEnv("telegram.token", "PKA_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "PKA_TELEGRAM_CHAT_ID")

	// History
	v.BindEnv("history.dsn", "PKA_HISTORY_DSN", "DATABASE_URL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "PKA_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "PKA_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "PKA_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "pokemonarbdashboard")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.health_port", 8081)

	// Refresh defaults
	v.SetDefault("refresh.interval", "15m")
	v.SetDefault("refresh.jpy_usd_rate", 0.0065)
	v.SetDefault("refresh.snapshot_path", "dashboard.json")

	// Shop defaults
	v.SetDefault("shops.active", []string{"cardrush"})
	v.SetDefault("shops.cardrush.enabled", true)
	v.SetDefault("shops.cardrush.base_url", "https://www.cardrush-pokemon.jp")
	v.SetDefault("shops.cardrush.min_request_interval", "1s")
	v.SetDefault("shops.torecacamp.enabled", false)
	v.SetDefault("shops.torecacamp.base_url", "https://www.torecacamp-pokeca.com")
	v.SetDefault("shops.torecacamp.min_request_interval", "2s")

	// Market defaults
	v.SetDefault("market.base_url", "https://www.pricecharting.com")
	v.SetDefault("market.min_request_interval", "1s")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)

	// History defaults
	v.SetDefault("history.enabled", false)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "pokemonarbdashboard")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive")
	}
	if c.Refresh.JPYUSDRate <= 0 {
		return fmt.Errorf("refresh.jpy_usd_rate must be positive")
	}
	if c.Refresh.SnapshotPath == "" {
		return fmt.Errorf("refresh.snapshot_path is required")
	}
	if len(c.Shops.Active) == 0 {
		return fmt.Errorf("shops.active cannot be empty")
	}
	for _, s := range c.Shops.Active {
		switch s {
		case "cardrush", "torecacamp":
		case "magi":
			// Known source in snapshots, but no scraper exists yet.
			return fmt.Errorf("shop magi has no scraper and cannot be activated")
		default:
			return fmt.Errorf("unknown shop in shops.active: %s", s)
		}
	}
	if c.Telegram.Enabled && c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required when telegram is enabled")
	}
	if c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("history.dsn is required when history is enabled")
	}
	return nil
}
