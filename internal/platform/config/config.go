package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LedgerAccounts holds the chart-of-accounts codes the settlement engine posts to.
type LedgerAccounts struct {
	CashLYD    string
	CashUSD    string
	CashEUR    string
	Safe       string
	Receivable string
	Payable    string

	RevenueGold    string
	RevenueDiamond string
	RevenueWatches string
	RevenueBoxes   string

	PurchasesGold    string
	PurchasesDiamond string
	PurchasesWatches string
	PurchasesBoxes   string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string
	JWTSecret      string
	JWTIssuer      string

	// Redis is optional; without it invoice locks and rate limits stay in-process.
	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	InvoiceLockTTL time.Duration

	RateLimit          string
	CORSAllowedOrigins []string

	Ledger LedgerAccounts
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "jewelry-ledger")
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("INVOICE_LOCK_TTL", "15s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LEDGER_CASH_LYD", "110101")
	viper.SetDefault("LEDGER_CASH_USD", "110102")
	viper.SetDefault("LEDGER_CASH_EUR", "110103")
	viper.SetDefault("LEDGER_SAFE", "110201")
	viper.SetDefault("LEDGER_RECEIVABLE", "120101")
	viper.SetDefault("LEDGER_PAYABLE", "210101")
	viper.SetDefault("LEDGER_REVENUE_GOLD", "410101")
	viper.SetDefault("LEDGER_REVENUE_DIAMOND", "410102")
	viper.SetDefault("LEDGER_REVENUE_WATCHES", "410103")
	viper.SetDefault("LEDGER_REVENUE_BOXES", "410104")
	viper.SetDefault("LEDGER_PURCHASES_GOLD", "510101")
	viper.SetDefault("LEDGER_PURCHASES_DIAMOND", "510102")
	viper.SetDefault("LEDGER_PURCHASES_WATCHES", "510103")
	viper.SetDefault("LEDGER_PURCHASES_BOXES", "510104")

	// Environment variables override the defaults above and anything loaded from .env.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("INVOICE_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 15 * time.Second
		log.Printf("Warning: Invalid value for INVOICE_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RedisAddress = viper.GetString("REDIS_ADDRESS")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.InvoiceLockTTL = lockTTL
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	if cfg.RedisAddress == "" {
		log.Println("Warning: REDIS_ADDRESS not set. Invoice locks and rate limits are per process.")
	}

	cfg.Ledger = LedgerAccounts{
		CashLYD:          viper.GetString("LEDGER_CASH_LYD"),
		CashUSD:          viper.GetString("LEDGER_CASH_USD"),
		CashEUR:          viper.GetString("LEDGER_CASH_EUR"),
		Safe:             viper.GetString("LEDGER_SAFE"),
		Receivable:       viper.GetString("LEDGER_RECEIVABLE"),
		Payable:          viper.GetString("LEDGER_PAYABLE"),
		RevenueGold:      viper.GetString("LEDGER_REVENUE_GOLD"),
		RevenueDiamond:   viper.GetString("LEDGER_REVENUE_DIAMOND"),
		RevenueWatches:   viper.GetString("LEDGER_REVENUE_WATCHES"),
		RevenueBoxes:     viper.GetString("LEDGER_REVENUE_BOXES"),
		PurchasesGold:    viper.GetString("LEDGER_PURCHASES_GOLD"),
		PurchasesDiamond: viper.GetString("LEDGER_PURCHASES_DIAMOND"),
		PurchasesWatches: viper.GetString("LEDGER_PURCHASES_WATCHES"),
		PurchasesBoxes:   viper.GetString("LEDGER_PURCHASES_BOXES"),
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
