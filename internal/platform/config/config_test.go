package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.InvoiceLockTTL)
	assert.Equal(t, "110101", cfg.Ledger.CashLYD)
	assert.Equal(t, "110201", cfg.Ledger.Safe)
	assert.Equal(t, "510104", cfg.Ledger.PurchasesBoxes)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LEDGER_REVENUE_GOLD", "410199")
	t.Setenv("INVOICE_LOCK_TTL", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://pos.example.com, ,https://admin.example.com ")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "410199", cfg.Ledger.RevenueGold)
	assert.Equal(t, 2*time.Second, cfg.InvoiceLockTTL)
	assert.Equal(t, []string{"https://pos.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadConfig_InvalidLockTTLFallsBack(t *testing.T) {
	t.Setenv("INVOICE_LOCK_TTL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.InvoiceLockTTL)
}
