// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// File paths
	DatabasePath string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`

	// Financial model assumptions. These are modeled estimates, not ledger
	// facts: each ratio can be overridden independently so a deployment with
	// real cost/tax data doesn't inherit the defaults silently.
	AssumedCostRatio float64 `mapstructure:"assumedcostratio"`
	NetRevenueRatio  float64 `mapstructure:"netrevenueratio"`
	TaxRatio         float64 `mapstructure:"taxratio"`
	RefundRatio      float64 `mapstructure:"refundratio"`

	// Aggregation settings
	LowStockThreshold int `mapstructure:"lowstockthreshold"`
	TopProductsLimit  int `mapstructure:"topproductslimit"`

	// Realtime poller settings
	RealtimeIntervalSeconds int `mapstructure:"realtimeintervalseconds"`

	// Data source settings
	FetchTimeoutSeconds      int `mapstructure:"fetchtimeoutseconds"`
	SourceRetestAfterSeconds int `mapstructure:"sourceretestafterseconds"`

	// Report cache settings (memoization is optional; empty RedisAddr disables it)
	RedisAddr             string `mapstructure:"redisaddr"`
	ReportCacheTTLSeconds int    `mapstructure:"reportcachettlseconds"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "shopmetrics")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("storagepath", "storage")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)
		v.SetDefault("assumedcostratio", 0.70)
		v.SetDefault("netrevenueratio", 0.95)
		v.SetDefault("taxratio", 0.20)
		v.SetDefault("refundratio", 0.02)
		v.SetDefault("lowstockthreshold", 10)
		v.SetDefault("topproductslimit", 10)
		v.SetDefault("realtimeintervalseconds", 30)
		v.SetDefault("fetchtimeoutseconds", 10)
		v.SetDefault("sourceretestafterseconds", 300)
		v.SetDefault("redisaddr", "")
		v.SetDefault("reportcachettlseconds", 120)

		// Bind environment variables
		v.BindEnv("appname", "SHOPMETRICS_APP_NAME")
		v.BindEnv("appport", "SHOPMETRICS_APP_PORT")
		v.BindEnv("environment", "SHOPMETRICS_ENV")
		v.BindEnv("loglevel", "SHOPMETRICS_LOG_LEVEL")
		v.BindEnv("storagepath", "SHOPMETRICS_STORAGE_PATH")
		v.BindEnv("logsdir", "SHOPMETRICS_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "SHOPMETRICS_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "SHOPMETRICS_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "SHOPMETRICS_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbmaxopenconns", "SHOPMETRICS_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "SHOPMETRICS_DB_MAX_IDLE_CONNS")
		v.BindEnv("assumedcostratio", "SHOPMETRICS_ASSUMED_COST_RATIO")
		v.BindEnv("netrevenueratio", "SHOPMETRICS_NET_REVENUE_RATIO")
		v.BindEnv("taxratio", "SHOPMETRICS_TAX_RATIO")
		v.BindEnv("refundratio", "SHOPMETRICS_REFUND_RATIO")
		v.BindEnv("lowstockthreshold", "SHOPMETRICS_LOW_STOCK_THRESHOLD")
		v.BindEnv("topproductslimit", "SHOPMETRICS_TOP_PRODUCTS_LIMIT")
		v.BindEnv("realtimeintervalseconds", "SHOPMETRICS_REALTIME_INTERVAL_SECONDS")
		v.BindEnv("fetchtimeoutseconds", "SHOPMETRICS_FETCH_TIMEOUT_SECONDS")
		v.BindEnv("sourceretestafterseconds", "SHOPMETRICS_SOURCE_RETEST_AFTER_SECONDS")
		v.BindEnv("redisaddr", "SHOPMETRICS_REDIS_ADDR")
		v.BindEnv("reportcachettlseconds", "SHOPMETRICS_REPORT_CACHE_TTL_SECONDS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		// Validate
		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		// Set derived values
		cfg.DatabaseName = cfg.GetDatabasePath()
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	ratios := map[string]float64{
		"assumedcostratio": c.AssumedCostRatio,
		"netrevenueratio":  c.NetRevenueRatio,
		"taxratio":         c.TaxRatio,
		"refundratio":      c.RefundRatio,
	}
	for name, ratio := range ratios {
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("invalid %s: %f (must be between 0 and 1)", name, ratio)
		}
	}

	if c.LowStockThreshold < 0 {
		return fmt.Errorf("invalid lowstockthreshold: %d", c.LowStockThreshold)
	}
	if c.TopProductsLimit <= 0 {
		return fmt.Errorf("invalid topproductslimit: %d", c.TopProductsLimit)
	}
	if c.RealtimeIntervalSeconds <= 0 {
		return fmt.Errorf("invalid realtimeintervalseconds: %d", c.RealtimeIntervalSeconds)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetMaxOpenConns returns the appropriate MaxOpenConns value based on environment.
// If explicitly set via env var, uses that value. Otherwise:
// - Test: 1 (required for in-memory sqlite stability)
// - Development/Production: 10 (allows concurrent reads for parallel report queries)
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}
	if c.Environment == Test {
		return 1
	}
	return 10
}

// GetMaxIdleConns returns the appropriate MaxIdleConns value based on environment
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}
	if c.Environment == Test {
		return 1
	}
	return 5
}
