package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Refresh: RefreshConfig{
			Interval:     15 * time.Minute,
			JPYUSDRate:   0.0065,
			SnapshotPath: "dashboard.json",
		},
		Shops: ShopsConfig{
			Active: []string{"cardrush"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "both scrapers active",
			mutate: func(c *Config) { c.Shops.Active = []string{"cardrush", "torecacamp"} },
		},
		{
			name:    "zero refresh interval",
			mutate:  func(c *Config) { c.Refresh.Interval = 0 },
			wantErr: "refresh.interval",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Refresh.JPYUSDRate = -0.0065 },
			wantErr: "jpy_usd_rate",
		},
		{
			name:    "empty snapshot path",
			mutate:  func(c *Config) { c.Refresh.SnapshotPath = "" },
			wantErr: "snapshot_path",
		},
		{
			name:    "no active shops",
			mutate:  func(c *Config) { c.Shops.Active = nil },
			wantErr: "shops.active",
		},
		{
			name:    "unknown shop",
			mutate:  func(c *Config) { c.Shops.Active = []string{"cardrush", "mercari"} },
			wantErr: "unknown shop",
		},
		{
			name:    "magi has no scraper",
			mutate:  func(c *Config) { c.Shops.Active = []string{"magi"} },
			wantErr: "magi",
		},
		{
			name:    "telegram enabled without token",
			mutate:  func(c *Config) { c.Telegram.Enabled = true },
			wantErr: "telegram.token",
		},
		{
			name: "telegram enabled with token",
			mutate: func(c *Config) {
				c.Telegram.Enabled = true
				c.Telegram.Token = "123:abc"
			},
		},
		{
			name:    "history enabled without dsn",
			mutate:  func(c *Config) { c.History.Enabled = true },
			wantErr: "history.dsn",
		},
		{
			name: "history enabled with dsn",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.DSN = "postgres://localhost/prices"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestJPYUSDRateDecimal(t *testing.T) {
	cfg := RefreshConfig{JPYUSDRate: 0.0065}
	if got := cfg.JPYUSDRateDecimal().String(); got != "0.0065" {
		t.Errorf("JPYUSDRateDecimal() = %s, want 0.0065", got)
	}
}
