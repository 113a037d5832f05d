package app

import (
	"context"
	"fmt"
	"log"

	"finance-insights/config"
	"finance-insights/database"
	"finance-insights/etl"
)

// ETLOptions overrides the configured CSV path and target table
type ETLOptions struct {
	CSVPath string
	Table   string
}

// RunETL extracts the CSV, transforms it and appends it to the investments table.
// It returns the number of rows written.
func (a *App) RunETL(ctx context.Context, opts ETLOptions) (int64, error) {
	if opts.CSVPath == "" {
		opts.CSVPath = a.config.ETL.CSVPath
	}
	if opts.Table == "" {
		opts.Table = a.config.ETL.Table
	}

	log.Printf("📄 [%s] Reading %s", a.runID, opts.CSVPath)
	frame, err := etl.ReadCSV(opts.CSVPath)
	if err != nil {
		return 0, err
	}

	if err := a.Connect(); err != nil {
		return 0, err
	}

	loader, closeLoader, err := a.newLoader(opts.Table)
	if err != nil {
		return 0, err
	}
	defer closeLoader()

	n, err := etl.Run(ctx, frame, loader)
	if err != nil {
		return 0, err
	}

	fmt.Println(opts.Table + " Data inserted successfully!")
	log.Printf("✅ [%s] %d rows appended to %s", a.runID, n, a.table(opts.Table))
	return n, nil
}

// newLoader picks COPY for PostgreSQL when enabled and batched inserts otherwise
func (a *App) newLoader(table string) (etl.Loader, func(), error) {
	repo := a.investmentsRepo(table)

	if a.db.Dialect() == config.DialectPostgres && a.config.ETL.UseCopy {
		conn, err := database.NewConnection(a.config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("bulk-load connection failed: %w", err)
		}
		log.Println("🚚 Loading with COPY")
		return etl.NewCopyLoader(repo, conn), func() { conn.Close() }, nil
	}

	log.Printf("📦 Loading with batched inserts (batch size %d)", a.config.ETL.BatchSize)
	return etl.NewBatchLoader(repo, a.config.ETL.BatchSize), func() {}, nil
}
