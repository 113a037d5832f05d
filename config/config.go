package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database dialects
const (
	DialectSQLServer = "sqlserver"
	DialectPostgres  = "postgres"
	DialectSQLite    = "sqlite"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	ETL      ETLConfig
	Redis    RedisConfig

	// InsightCacheTTL controls how long a generated explanation is reused
	InsightCacheTTL time.Duration

	// HTTP API port
	Port int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Type     string // DB_TYPE, e.g. "mssql+pyodbc", "postgres", "sqlite"
	Server   string
	Port     string
	Name     string
	User     string
	Password string
	Driver   string // ODBC driver name, only used for the ODBC-style URL
	Schema   string
}

// LLMConfig holds completion API configuration
type LLMConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// ETLConfig holds CSV load parameters
type ETLConfig struct {
	CSVPath   string
	Table     string
	BatchSize int
	UseCopy   bool // Postgres only: bulk load with COPY instead of INSERT batches
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Database: DatabaseConfig{
			Type:     getEnvOrDefault("DB_TYPE", "mssql+pyodbc"),
			Server:   os.Getenv("DB_SERVER"),
			Port:     os.Getenv("DB_PORT"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Driver:   getEnvOrDefault("DB_DRIVER", "ODBC Driver 17 for SQL Server"),
			Schema:   getEnvOrDefault("DB_SCHEMA", "Personal_Finance"),
		},

		LLM: LLMConfig{
			Endpoint: getEnvOrDefault("LLM_ENDPOINT", "https://openrouter.ai/api/v1"),
			APIKey:   os.Getenv("OPENROUTER_API_KEY"),
			Model:    getEnvOrDefault("LLM_MODEL", "meta-llama/llama-3.3-8b-instruct:free"),
			Timeout:  getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		},

		ETL: ETLConfig{
			CSVPath:   getEnvOrDefault("ETL_CSV_PATH", "C:/Users/USER/Documents/InvestmentTable.csv"),
			Table:     getEnvOrDefault("ETL_TABLE", "Investments"),
			BatchSize: getEnvInt("ETL_BATCH_SIZE", 500),
			UseCopy:   getEnvBool("ETL_USE_COPY", true),
		},

		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		},

		InsightCacheTTL: getEnvDuration("INSIGHT_CACHE_TTL", 24*time.Hour),
		Port:            getEnvInt("PORT", 5000),
	}
}

// Dialect maps DB_TYPE onto one of the supported dialects.
// SQLAlchemy-style values such as "mssql+pyodbc" or "postgresql+psycopg2" are accepted.
func (c DatabaseConfig) Dialect() (string, error) {
	kind := strings.ToLower(c.Type)
	if i := strings.Index(kind, "+"); i >= 0 {
		kind = kind[:i]
	}

	switch kind {
	case "", "mssql", "sqlserver":
		return DialectSQLServer, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", c.Type)
	}
}

// ODBCURL renders the SQLAlchemy-style connection URL with the password and driver
// name query-escaped.
func (c DatabaseConfig) ODBCURL() string {
	return fmt.Sprintf("%s://%s:%s@%s/%s?driver=%s",
		c.Type, c.User, url.QueryEscape(c.Password), c.Server, c.Name, url.QueryEscape(c.Driver))
}

// RedactedODBCURL is ODBCURL with the password masked, for logging
func (c DatabaseConfig) RedactedODBCURL() string {
	redacted := c
	if redacted.Password != "" {
		redacted.Password = "xxxxx"
	}
	return redacted.ODBCURL()
}

// QualifiedTable prefixes a table name with the configured schema.
// SQLite has no schemas, so the bare name is returned there.
func (c DatabaseConfig) QualifiedTable(name string) string {
	if c.Schema == "" || strings.Contains(name, ".") {
		return name
	}
	if dialect, err := c.Dialect(); err == nil && dialect == DialectSQLite {
		return name
	}
	return c.Schema + "." + name
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvBool accepts "true"/"1"/"yes" as true; anything else non-empty is false
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
