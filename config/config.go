package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration, loaded from
// environment variables or a local .env file.
//
// ENV equivalent:
//
//	SERVER_PORT=8080
//	MARKETDATA_BASE_URL=https://query1.finance.yahoo.com
//	MARKETDATA_TIMEOUT_SECONDS=30
//	CACHE_ENABLED=false
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=backtest
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server     ServerConfig
	MarketData MarketDataConfig
	Cache      CacheConfig
	Postgres   PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// MarketDataConfig points at the daily-bar provider.
type MarketDataConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// CacheConfig toggles the Postgres bar cache. With Enabled false the
// service runs fully stateless and never touches the database.
type CacheConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for the bar cache database.
// URL is the computed DSN used by database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance,
// populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes AppConfig. Precedence, lowest to highest:
// defaults set here, values from a .env file if present, then real
// environment variables. Missing required fields are fatal.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("MARKETDATA_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("MARKETDATA_TIMEOUT_SECONDS", 30)

	viper.SetDefault("CACHE_ENABLED", false)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "backtest")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // no .env is fine

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		MarketData: MarketDataConfig{
			BaseURL:        viper.GetString("MARKETDATA_BASE_URL"),
			TimeoutSeconds: viper.GetInt("MARKETDATA_TIMEOUT_SECONDS"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig terminates the application when required fields are
// missing, so misconfiguration fails at startup rather than mid-request.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.MarketData.BaseURL == "" {
		missing = append(missing, "MARKETDATA_BASE_URL")
	}
	if AppConfig.Cache.Enabled {
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
