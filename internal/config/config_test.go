package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		App:     AppConfig{Employer: "Acme Sdn. Bhd.", Reporting: "MYR", LogLevel: "info"},
		Store:   StoreConfig{Backend: StoreSQLite, SQLitePath: "payroll.db"},
		JWT:     JWTConfig{Secret: "secret", AccessExpiration: "1h"},
		Payroll: PayrollConfig{DefaultExchangeRate: decimal.RequireFromString("4.45")},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("EMPLOYER_NAME", "Acme Sdn. Bhd.")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("DEFAULT_EXCHANGE_RATE", "4.2")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "4.2", cfg.Payroll.DefaultExchangeRate.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "MYR", cfg.App.Reporting)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.False(t, cfg.Payroll.AutoGenerate)
	assert.Equal(t, 6*time.Hour, cfg.Payroll.AutoGenerateInterval)
}

func TestLoad_InvalidRate(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("EMPLOYER_NAME", "Acme")
	t.Setenv("DEFAULT_EXCHANGE_RATE", "four")

	_, err := Load()
	assert.ErrorContains(t, err, "DEFAULT_EXCHANGE_RATE")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"missing employer", func(c *Config) { c.App.Employer = "" }, "EMPLOYER_NAME"},
		{"zero rate", func(c *Config) { c.Payroll.DefaultExchangeRate = decimal.Zero }, "DEFAULT_EXCHANGE_RATE"},
		{"auto generate without interval", func(c *Config) { c.Payroll.AutoGenerate = true }, "PAYROLL_AUTO_GENERATE_INTERVAL"},
		{"postgres without password", func(c *Config) { c.Store.Backend = StorePostgres }, "DB_PASSWORD"},
		{"sheets without id", func(c *Config) { c.Store.Backend = StoreSheets }, "SPREADSHEET_ID"},
		{"sheets without credentials", func(c *Config) {
			c.Store.Backend = StoreSheets
			c.Store.SpreadsheetID = "abc"
		}, "GOOGLE_CREDENTIALS_FILE"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "excel" }, "STORE_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "payroll", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@db:5432/payroll?sslmode=disable", cfg.DatabaseURL())
}

func TestLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	cfg.App.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}
