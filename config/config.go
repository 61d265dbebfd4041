// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	AppName        = "Country Currency API"
	AppVersion     = "1.0.0"
	AppDescription = "Country Currency & Exchange API - Fetch country data with exchange rates and GDP estimates"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ExternalAPIConfig struct {
	CountriesURL     string
	ExchangeRatesURL string
	Timeout          time.Duration
}

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	ExternalAPI ExternalAPIConfig
	CacheDir    string
}

var AppConfig Config

// LoadConfig reads configuration from environment variables. Values that
// have a sensible default fall back to it; the database password does not.
func LoadConfig() error {
	AppConfig = Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "country_currency_db"),
		},
		ExternalAPI: ExternalAPIConfig{
			CountriesURL:     getEnv("RESTCOUNTRIES_API_URL", "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"),
			ExchangeRatesURL: getEnv("EXCHANGE_RATE_API_URL", "https://open.er-api.com/v6/latest/USD"),
		},
		CacheDir: getEnv("CACHE_DIR", "cache"),
	}

	timeoutSec, err := strconv.Atoi(getEnv("API_TIMEOUT", "30"))
	if err != nil || timeoutSec <= 0 {
		return fmt.Errorf("invalid API_TIMEOUT value: %q", os.Getenv("API_TIMEOUT"))
	}
	AppConfig.ExternalAPI.Timeout = time.Duration(timeoutSec) * time.Second

	// The image renderer writes into the cache directory; make sure it exists.
	if err := os.MkdirAll(filepath.Clean(AppConfig.CacheDir), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", AppConfig.CacheDir, err)
	}

	return nil
}

// SummaryImagePath is where the generated summary PNG lives.
func SummaryImagePath() string {
	return filepath.Join(AppConfig.CacheDir, "summary.png")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
