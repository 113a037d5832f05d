package etl

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"finance-insights/database"
	"finance-insights/database/investments"
)

// Loader appends a transformed frame to the target table
type Loader interface {
	Load(ctx context.Context, frame *Frame) (int64, error)
}

// BatchLoader inserts rows through GORM in fixed-size batches.
// A missing table is created from the frame's inferred column types; an existing one is appended to.
type BatchLoader struct {
	repo      *investments.Repository
	batchSize int
}

// NewBatchLoader creates a loader that writes through the investments repository
func NewBatchLoader(repo *investments.Repository, batchSize int) *BatchLoader {
	return &BatchLoader{repo: repo, batchSize: batchSize}
}

// Load implements Loader
func (l *BatchLoader) Load(ctx context.Context, frame *Frame) (int64, error) {
	cols := InferColumnTypes(frame)
	if err := ensureTable(ctx, l.repo, cols); err != nil {
		return 0, err
	}
	return l.repo.AppendRows(ctx, Records(frame, cols), l.batchSize)
}

// CopyLoader streams rows into PostgreSQL with COPY FROM STDIN over lib/pq
type CopyLoader struct {
	repo *investments.Repository
	conn *database.DB
}

// NewCopyLoader creates a COPY-based loader. The repository is still used to create the table.
func NewCopyLoader(repo *investments.Repository, conn *database.DB) *CopyLoader {
	return &CopyLoader{repo: repo, conn: conn}
}

// Load implements Loader
func (l *CopyLoader) Load(ctx context.Context, frame *Frame) (int64, error) {
	cols := InferColumnTypes(frame)
	if err := ensureTable(ctx, l.repo, cols); err != nil {
		return 0, err
	}
	if frame.Len() == 0 {
		return 0, nil
	}

	schema, table := splitQualified(l.repo.Table())
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}

	txn, err := l.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin COPY transaction: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, pq.CopyInSchema(schema, table, names...))
	if err != nil {
		return 0, database.WrapDBError("PrepareCopy", l.repo.Table(), err)
	}

	for _, vals := range Values(frame, cols) {
		if _, err := stmt.ExecContext(ctx, vals...); err != nil {
			stmt.Close()
			return 0, database.WrapDBError("CopyRow", l.repo.Table(), err)
		}
	}

	// An argument-less Exec flushes the buffered COPY data
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, database.WrapDBError("CopyFlush", l.repo.Table(), err)
	}
	if err := stmt.Close(); err != nil {
		return 0, database.WrapDBError("CopyClose", l.repo.Table(), err)
	}
	if err := txn.Commit(); err != nil {
		return 0, database.WrapDBError("CopyCommit", l.repo.Table(), err)
	}

	return int64(frame.Len()), nil
}

func ensureTable(ctx context.Context, repo *investments.Repository, cols []investments.Column) error {
	if repo.HasTable(ctx) {
		return nil
	}
	log.Printf("🆕 Table %s does not exist, creating it with %d columns", repo.Table(), len(cols))
	return repo.CreateTable(ctx, cols)
}

func splitQualified(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "public", name
}
