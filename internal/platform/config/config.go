package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SystemAccounts are the account codes the voucher writers post to.
type SystemAccounts struct {
	Receivable      string
	CustomerDeposit string
	Sales           string
	VATOutput       string
	VATInput        string
	Payable         string
	Purchases       string
}

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DBDriver      string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool
	RunMigrations bool

	// JWTSecret enables bearer authentication on /api/v1 when set.
	JWTSecret          string
	RateLimit          string
	CORSAllowedOrigins []string

	// SkipUnknownAccounts makes the ledger ignore lines whose account does
	// not exist instead of failing the whole posting.
	SkipUnknownAccounts bool
	Accounts            SystemAccounts
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "backoffice.db")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LEDGER_SKIP_UNKNOWN_ACCOUNTS", false)
	v.SetDefault("ACCOUNT_RECEIVABLE", "112.000")
	v.SetDefault("ACCOUNT_CUSTOMER_DEPOSIT", "212.000")
	v.SetDefault("ACCOUNT_SALES", "411.000")
	v.SetDefault("ACCOUNT_VAT_OUTPUT", "213.000")
	v.SetDefault("ACCOUNT_VAT_INPUT", "115.000")
	v.SetDefault("ACCOUNT_PAYABLE", "211.000")
	v.SetDefault("ACCOUNT_PURCHASES", "511.000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		DBDriver:            strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:       v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		SkipUnknownAccounts: v.GetBool("LEDGER_SKIP_UNKNOWN_ACCOUNTS"),
		Accounts: SystemAccounts{
			Receivable:      v.GetString("ACCOUNT_RECEIVABLE"),
			CustomerDeposit: v.GetString("ACCOUNT_CUSTOMER_DEPOSIT"),
			Sales:           v.GetString("ACCOUNT_SALES"),
			VATOutput:       v.GetString("ACCOUNT_VAT_OUTPUT"),
			VATInput:        v.GetString("ACCOUNT_VAT_INPUT"),
			Payable:         v.GetString("ACCOUNT_PAYABLE"),
			Purchases:       v.GetString("ACCOUNT_PURCHASES"),
		},
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set. API authentication is disabled.")
	}
	if cfg.SkipUnknownAccounts {
		slog.Warn("LEDGER_SKIP_UNKNOWN_ACCOUNTS is enabled. Lines posted to unknown accounts will not move any balance.")
	}

	return cfg
}

// Default returns the configuration with every default applied and nothing
// read from the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}
