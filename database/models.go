// Package database provides database connection management for the finance-insights jobs.
//
// This package includes:
//   - GORM connections for SQL Server (default), PostgreSQL and SQLite
//   - A raw lib/pq connection used for PostgreSQL COPY bulk loads
//   - Schema bootstrap for the loans, insights and investments tables
//   - Typed errors shared by the repositories
//
// Data Models:
//
//	All data models (Loan, AIInsight, Investment, ...) are defined in the models_pkg package
//	so the repository sub-packages can import them without cycles.
package database

import (
	"fmt"
	"net"
	"net/url"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance-insights/config"
	models "finance-insights/database/models_pkg"
)

// Database holds the GORM database connection and the dialect it was opened with.
type Database struct {
	db      *gorm.DB
	dialect string
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Dialect returns one of config.DialectSQLServer, config.DialectPostgres or config.DialectSQLite
func (d *Database) Dialect() string {
	return d.dialect
}

// Connect establishes database connection using GORM
func Connect(cfg config.DatabaseConfig) (*Database, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}

	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case config.DialectPostgres:
		dialector = postgres.Open(dsn)
	case config.DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		dialector = sqlserver.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db, dialect: dialect}, nil
}

// BuildDSN renders the driver-specific data source name for the configured dialect.
func BuildDSN(cfg config.DatabaseConfig) (string, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return "", err
	}

	switch dialect {
	case config.DialectPostgres:
		host, port := splitHostPort(cfg.Server, cfg.Port, "5432")
		return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
			host, port, cfg.Name, cfg.User, cfg.Password), nil

	case config.DialectSQLite:
		if cfg.Name == "" {
			return "finance.db", nil
		}
		return cfg.Name, nil

	default:
		host, port := splitHostPort(cfg.Server, cfg.Port, "1433")
		query := url.Values{}
		query.Set("database", cfg.Name)
		// Azure SQL requires TLS
		query.Set("encrypt", "true")
		query.Set("TrustServerCertificate", "true")
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(host, port),
			RawQuery: query.Encode(),
		}
		return u.String(), nil
	}
}

// splitHostPort accepts either "host" or "host:port" in DB_SERVER; an explicit DB_PORT wins.
func splitHostPort(server, port, defaultPort string) (string, string) {
	host := server
	if h, p, err := net.SplitHostPort(server); err == nil {
		host = h
		if port == "" {
			port = p
		}
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = defaultPort
	}
	return host, port
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Type aliases the repository packages use in their signatures.
type Loan = models.Loan
type AIInsight = models.AIInsight
type Investment = models.Investment
type InvestmentStatus = models.InvestmentStatus
