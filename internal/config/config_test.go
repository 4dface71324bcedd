package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		AppName:                 "shopmetrics",
		Environment:             Test,
		AssumedCostRatio:        0.70,
		NetRevenueRatio:         0.95,
		TaxRatio:                0.20,
		RefundRatio:             0.02,
		LowStockThreshold:       10,
		TopProductsLimit:        10,
		RealtimeIntervalSeconds: 30,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }, wantErr: true},
		{name: "cost ratio above one", mutate: func(c *Config) { c.AssumedCostRatio = 1.5 }, wantErr: true},
		{name: "negative refund ratio", mutate: func(c *Config) { c.RefundRatio = -0.1 }, wantErr: true},
		{name: "ratio at boundary", mutate: func(c *Config) { c.TaxRatio = 1.0 }, wantErr: false},
		{name: "negative low stock threshold", mutate: func(c *Config) { c.LowStockThreshold = -1 }, wantErr: true},
		{name: "zero top products limit", mutate: func(c *Config) { c.TopProductsLimit = 0 }, wantErr: true},
		{name: "zero realtime interval", mutate: func(c *Config) { c.RealtimeIntervalSeconds = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.DatabasePath = "storage"

	assert.Equal(t, "storage/shopmetrics-test.db", cfg.GetDatabasePath())

	// Derived once, then stable
	cfg.Environment = Production
	assert.Equal(t, "storage/shopmetrics-test.db", cfg.GetDatabasePath())
}

func TestConnectionPoolDefaults(t *testing.T) {
	cfg := validConfig()

	// In-memory sqlite needs a single connection under test
	assert.Equal(t, 1, cfg.GetMaxOpenConns())
	assert.Equal(t, 1, cfg.GetMaxIdleConns())

	cfg.Environment = Production
	assert.Equal(t, 10, cfg.GetMaxOpenConns())
	assert.Equal(t, 5, cfg.GetMaxIdleConns())

	cfg.DatabaseMaxOpenConns = 25
	cfg.DatabaseMaxIdleConns = 4
	assert.Equal(t, 25, cfg.GetMaxOpenConns())
	assert.Equal(t, 4, cfg.GetMaxIdleConns())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.Environment = Production
	assert.True(t, cfg.IsProduction())
}
