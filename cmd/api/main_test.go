package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/infrastructure/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Environment: config.Development,
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			Username:     "localhy",
			Password:     "localhy",
			Database:     "localhy_ledger",
			SSLMode:      "disable",
			QueryTimeout: 5 * time.Second,
		},
		Logger:  config.LoggerConfig{Level: "info"},
		Ledger:  config.LedgerConfig{Store: "postgres", LockTimeoutMs: 5000, MaxRetries: 3},
		Pricing: config.PricingConfig{Actions: map[string]int64{"create_referral_job": 5}},
		Auth:    config.AuthConfig{JWTSecret: "secret"},
	}
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "Valid development config",
			mutate: func(*config.Config) {},
		},
		{
			name: "Memory store needs no database",
			mutate: func(c *config.Config) {
				c.Ledger.Store = "memory"
				c.Database = config.DatabaseConfig{}
			},
		},
		{
			name:    "Missing database host",
			mutate:  func(c *config.Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name: "Production names the environment override",
			mutate: func(c *config.Config) {
				c.Environment = config.Production
				c.Database.Password = ""
			},
			wantErr: "LH_DB_PASSWORD",
		},
		{
			name:    "Missing JWT secret",
			mutate:  func(c *config.Config) { c.Auth.JWTSecret = "" },
			wantErr: "auth.jwtSecret",
		},
		{
			name:    "No priced actions",
			mutate:  func(c *config.Config) { c.Pricing.Actions = nil },
			wantErr: "pricing.actions",
		},
		{
			name:    "Zero action price",
			mutate:  func(c *config.Config) { c.Pricing.Actions["create_referral_job"] = 0 },
			wantErr: "pricing.actions.create_referral_job must be a positive credit cost",
		},
		{
			name:    "Negative action price",
			mutate:  func(c *config.Config) { c.Pricing.Actions["boost_listing"] = -3 },
			wantErr: "pricing.actions.boost_listing",
		},
		{
			name:    "Unknown environment",
			mutate:  func(c *config.Config) { c.Environment = "staging" },
			wantErr: "invalid environment value",
		},
		{
			name: "Memory store in production",
			mutate: func(c *config.Config) {
				c.Environment = config.Production
				c.Ledger.Store = "memory"
			},
			wantErr: "not allowed in production",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := validateConfig(cfg)

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
