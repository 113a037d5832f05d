package investments

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance-insights/database"
	"finance-insights/database/types"
)

// ColumnKind is the storage class inferred for a loaded CSV column
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindFloat
)

// Column describes one column of a table created by the CSV loader
type Column struct {
	Name string
	Kind ColumnKind
}

// Repository handles the Investments and Investment_status tables
type Repository struct {
	db          *gorm.DB
	table       string
	statusTable string
}

// NewRepository creates a new investments repository over the given (schema-qualified) tables
func NewRepository(db *gorm.DB, table, statusTable string) *Repository {
	return &Repository{db: db, table: table, statusTable: statusTable}
}

// Table returns the qualified investments table name
func (r *Repository) Table() string {
	return r.table
}

// ============================================================================
// HTTP API operations
// ============================================================================

// List returns id, amount and type of every investment
func (r *Repository) List(ctx context.Context) ([]types.InvestmentSummary, error) {
	var rows []types.InvestmentSummary
	err := r.db.WithContext(ctx).
		Table(r.table).
		Select([]string{"id", "amount", "investment_type"}).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, database.WrapDBError("ListInvestments", r.table, err)
	}
	return rows, nil
}

// Create inserts a new investment; the database assigns the id
func (r *Repository) Create(ctx context.Context, inv *database.Investment) error {
	inv.ID = 0
	if err := r.db.WithContext(ctx).Table(r.table).Create(inv).Error; err != nil {
		return database.WrapDBError("CreateInvestment", r.table, err)
	}
	return nil
}

// ListStatuses returns every status row joined with its investment
func (r *Repository) ListStatuses(ctx context.Context) ([]types.InvestmentStatusDetail, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.investment_id, s.status_date, s.current_value,
		       i.amount AS investment_amount, i.investment_type
		FROM %s s
		JOIN %s i ON s.investment_id = i.id
		ORDER BY s.id`,
		r.quote(r.statusTable), r.quote(r.table))

	var rows []types.InvestmentStatusDetail
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, database.WrapDBError("ListInvestmentStatuses", r.statusTable, err)
	}
	return rows, nil
}

// CreateStatus inserts a status update for an existing investment
func (r *Repository) CreateStatus(ctx context.Context, status *database.InvestmentStatus) error {
	status.ID = 0
	if err := r.db.WithContext(ctx).Table(r.statusTable).Create(status).Error; err != nil {
		return database.WrapDBError("CreateInvestmentStatus", r.statusTable, err)
	}
	return nil
}

// ============================================================================
// CSV load operations
// ============================================================================

// HasTable reports whether the investments table already exists
func (r *Repository) HasTable(ctx context.Context) bool {
	return r.db.WithContext(ctx).Migrator().HasTable(r.table)
}

// CreateTable creates the investments table with the given columns
func (r *Repository) CreateTable(ctx context.Context, columns []Column) error {
	if len(columns) == 0 {
		return database.NewValidationError("columns", "at least one column is required")
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = r.quote(col.Name) + " " + r.sqlType(col.Kind)
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", r.quote(r.table), strings.Join(defs, ", "))
	if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return database.WrapDBError("CreateTable", r.table, err)
	}
	return nil
}

// AppendRows inserts rows in batches and returns the number of rows written
func (r *Repository) AppendRows(ctx context.Context, rows []map[string]interface{}, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = len(rows)
	}

	result := r.db.WithContext(ctx).Table(r.table).CreateInBatches(rows, batchSize)
	if result.Error != nil {
		return 0, database.WrapDBError("AppendRows", r.table, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) quote(name string) string {
	return r.db.Statement.Quote(name)
}

func (r *Repository) sqlType(kind ColumnKind) string {
	switch r.db.Dialector.Name() {
	case "postgres":
		switch kind {
		case KindInteger:
			return "BIGINT"
		case KindFloat:
			return "DOUBLE PRECISION"
		}
		return "TEXT"
	case "sqlite":
		switch kind {
		case KindInteger:
			return "INTEGER"
		case KindFloat:
			return "REAL"
		}
		return "TEXT"
	default:
		switch kind {
		case KindInteger:
			return "BIGINT"
		case KindFloat:
			return "FLOAT"
		}
		return "NVARCHAR(MAX)"
	}
}
