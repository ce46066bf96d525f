package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"coinScout/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Trading bot installation
	RootPath    string // Root of the binance-trade-bot checkout
	DBPath      string // Its SQLite database
	UserCfgPath string // Its user.cfg (bridge and scout_multiplier)

	// Binance API (ticker prices are public, keys are optional)
	APIKey       string
	SecretKey    string
	IsTestnet    bool
	PriceTimeout time.Duration // Upper bound for one live price lookup

	// Reports
	ProgressLimit int // Completed buys listed by the progress report
	HistoryLimit  int // Trades listed by the trade history

	// Logging
	LogLevel  logger.LogLevel // Use the LogLevel type from the logger adapter
	LogFormat logger.Format
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Trading bot installation
	cfg.RootPath = getEnv("BTB_ROOT_PATH", "../binance-trade-bot")
	cfg.DBPath = getEnv("DB_PATH", filepath.Join(cfg.RootPath, "data", "crypto_trading.db"))
	cfg.UserCfgPath = getEnv("USER_CFG_PATH", filepath.Join(cfg.RootPath, "user.cfg"))

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	if (cfg.APIKey == "") != (cfg.SecretKey == "") {
		errs = append(errs, "BINANCE_API_KEY and BINANCE_API_SECRET must be set together")
	}
	cfg.IsTestnet, err = getEnvAsBoolRequired("IS_TESTNET", false) // Prices must come from the market the bot trades on
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid IS_TESTNET: %v", err))
	}

	priceTimeoutSeconds, err := getEnvAsIntRequired("PRICE_TIMEOUT_SECONDS", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PRICE_TIMEOUT_SECONDS: %v", err))
	} else if priceTimeoutSeconds <= 0 {
		errs = append(errs, "PRICE_TIMEOUT_SECONDS must be positive")
	}
	cfg.PriceTimeout = time.Duration(priceTimeoutSeconds) * time.Second

	// Reports
	cfg.ProgressLimit, err = getEnvAsIntRequired("PROGRESS_LIMIT", 15)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PROGRESS_LIMIT: %v", err))
	} else if cfg.ProgressLimit <= 0 {
		errs = append(errs, "PROGRESS_LIMIT must be positive")
	}

	cfg.HistoryLimit, err = getEnvAsIntRequired("HISTORY_LIMIT", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HISTORY_LIMIT: %v", err))
	} else if cfg.HistoryLimit <= 0 {
		errs = append(errs, "HISTORY_LIMIT must be positive")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package
	cfg.LogFormat = logger.ParseFormat(getEnv("LOG_FORMAT", string(logger.FormatConsole)))

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBoolRequired(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
