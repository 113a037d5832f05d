package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"finance-insights/config"
)

// DB wraps a plain database/sql connection on the lib/pq driver.
// GORM's postgres dialector runs on pgx, which does not speak lib/pq's COPY protocol
// helpers, so bulk loads open this connection separately.
type DB struct {
	conn *sql.DB
}

// NewConnection creates a new lib/pq connection for a PostgreSQL configuration
func NewConnection(cfg config.DatabaseConfig) (*DB, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	if dialect != config.DialectPostgres {
		return nil, NewValidationErrorWithValue("DB_TYPE", "raw connection requires postgres", cfg.Type)
	}

	connStr, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single sequential load never needs more than one connection
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Bulk-load connection established")

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		log.Println("📡 Closing bulk-load connection...")
		return db.conn.Close()
	}
	return nil
}

// GetConn returns the underlying sql.DB connection
func (db *DB) GetConn() *sql.DB {
	return db.conn
}
