package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultRateLimit is applied when RATE_LIMIT is unset or unparseable.
const DefaultRateLimit = "300-M"

// defaultBalanceEpsilon is the widest debit/credit delta still considered balanced.
const defaultBalanceEpsilon = "0.01"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	RateLimit     string

	// Ledger settings
	BaseCurrencyCode string
	BalanceEpsilon   decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", DefaultRateLimit)
	viper.SetDefault("BASE_CURRENCY_CODE", "USD")
	viper.SetDefault("BALANCE_EPSILON", defaultBalanceEpsilon)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.BaseCurrencyCode = viper.GetString("BASE_CURRENCY_CODE")
	if len(cfg.BaseCurrencyCode) != 3 {
		log.Printf("Warning: BASE_CURRENCY_CODE %q is not a 3-letter code. Defaulting to USD.\n", cfg.BaseCurrencyCode)
		cfg.BaseCurrencyCode = "USD"
	}

	epsilonStr := viper.GetString("BALANCE_EPSILON")
	epsilon, err := decimal.NewFromString(epsilonStr)
	if err != nil || epsilon.IsNegative() {
		log.Printf("Warning: Invalid value for BALANCE_EPSILON (%q). Defaulting to %s.\n", epsilonStr, defaultBalanceEpsilon)
		epsilon, _ = decimal.NewFromString(defaultBalanceEpsilon)
	}
	cfg.BalanceEpsilon = epsilon

	return cfg, nil
}
