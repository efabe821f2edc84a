package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	Employer       string
	Reporting      string
	SeedDemo       bool
}

// StoreConfig selects the document store backing the workbook
type StoreConfig struct {
	Backend         string
	SQLitePath      string
	SpreadsheetID   string
	CredentialsFile string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type PayrollConfig struct {
	DefaultExchangeRate decimal.Decimal
	// AutoGenerate runs generation for the current month every AutoGenerateInterval
	AutoGenerate         bool
	AutoGenerateInterval time.Duration
}

// StorageConfig points at the payslip archive
type StorageConfig struct {
	BasePath string
	BaseURL  string
}

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreSheets   = "sheets"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, reading environment only")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	seedDemo, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
		Employer:       getEnv("EMPLOYER_NAME", ""),
		Reporting:      strings.ToUpper(getEnv("REPORTING_CURRENCY", "MYR")),
		SeedDemo:       seedDemo,
	}

	// Document store configuration
	config.Store = StoreConfig{
		Backend:         strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),
		SQLitePath:      getEnv("SQLITE_PATH", "payroll.db"),
		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Payroll configuration
	rate, err := decimal.NewFromString(getEnv("DEFAULT_EXCHANGE_RATE", "4.45"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXCHANGE_RATE: %w", err)
	}
	autoGenerate, err := strconv.ParseBool(getEnv("PAYROLL_AUTO_GENERATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_AUTO_GENERATE: %w", err)
	}
	autoGenerateInterval, err := time.ParseDuration(getEnv("PAYROLL_AUTO_GENERATE_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_AUTO_GENERATE_INTERVAL: %w", err)
	}
	config.Payroll = PayrollConfig{
		DefaultExchangeRate:  rate,
		AutoGenerate:         autoGenerate,
		AutoGenerateInterval: autoGenerateInterval,
	}

	// Payslip archive configuration
	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%d/api/v1/archive", appPort)),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.Employer == "" {
		return fmt.Errorf("EMPLOYER_NAME is required")
	}
	if !c.Payroll.DefaultExchangeRate.IsPositive() {
		return fmt.Errorf("DEFAULT_EXCHANGE_RATE must be greater than zero")
	}
	if c.Payroll.AutoGenerate && c.Payroll.AutoGenerateInterval <= 0 {
		return fmt.Errorf("PAYROLL_AUTO_GENERATE_INTERVAL must be positive")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreSheets:
		if c.Store.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required")
		}
		if c.Store.CredentialsFile == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
