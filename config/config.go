package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/mpdash/internal/logger"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	API_BASE=/api
//	API_ORIGIN=https://statistics-api.example.com
//	API_KEY=secret
//	ARCHIVE_ENABLED=true
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=mpdash
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Upstream UpstreamConfig // Marketplace API settings
	Archive  ArchiveConfig  // Archive sync settings
	Postgres PostgresConfig // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// UpstreamConfig describes the marketplace statistics API.
//
// Fields:
//   - BaseURL: API base, absolute or relative to Origin (API_BASE, falls back to VITE_API_BASE).
//   - Origin: absolute URL a relative BaseURL is resolved against (API_ORIGIN).
//   - APIKey: access key sent as the "key" query parameter (API_KEY, falls back to VITE_API_KEY).
//   - Timeout: per-request bound (API_TIMEOUT, default 20s).
type UpstreamConfig struct {
	BaseURL string
	Origin  string
	APIKey  string
	Timeout time.Duration
}

// ArchiveConfig toggles the Postgres archive.
type ArchiveConfig struct {
	Enabled  bool // ARCHIVE_ENABLED; when false no database is opened
	Parallel int  // SYNC_PARALLEL; 0 picks a default
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("API_ORIGIN", "http://localhost")
	viper.SetDefault("API_TIMEOUT", "20s")

	viper.SetDefault("ARCHIVE_ENABLED", true)
	viper.SetDefault("SYNC_PARALLEL", 0)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "mpdash")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Upstream: UpstreamConfig{
			BaseURL: firstNonEmpty(viper.GetString("API_BASE"), viper.GetString("VITE_API_BASE"), "/api"),
			Origin:  viper.GetString("API_ORIGIN"),
			APIKey:  firstNonEmpty(viper.GetString("API_KEY"), viper.GetString("VITE_API_KEY")),
			Timeout: viper.GetDuration("API_TIMEOUT"),
		},
		Archive: ArchiveConfig{
			Enabled:  viper.GetBool("ARCHIVE_ENABLED"),
			Parallel: viper.GetInt("SYNC_PARALLEL"),
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

	if AppConfig.Upstream.APIKey == "" {
		logger.L().Warn().Msg("API_KEY is empty; upstream requests will be sent without a key")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing. Postgres settings are only required
// when the archive is enabled.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Upstream.Origin == "" {
		missing = append(missing, "API_ORIGIN")
	}
	if AppConfig.Upstream.Timeout <= 0 {
		missing = append(missing, "API_TIMEOUT")
	}

	if AppConfig.Archive.Enabled {
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
