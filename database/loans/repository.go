package loans

import (
	"context"

	"gorm.io/gorm"

	"finance-insights/database"
)

// Repository reads loan records
type Repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a new loans repository over the given (schema-qualified) table
func NewRepository(db *gorm.DB, table string) *Repository {
	return &Repository{db: db, table: table}
}

// ListLoans returns every loan's date, amount and notes ordered by date
func (r *Repository) ListLoans(ctx context.Context) ([]database.Loan, error) {
	var loans []database.Loan
	err := r.db.WithContext(ctx).
		Table(r.table).
		Select([]string{"loan_date", "Amount", "loan_notes"}).
		Order("loan_date").
		Find(&loans).Error
	if err != nil {
		return nil, database.WrapDBError("ListLoans", r.table, err)
	}
	return loans, nil
}

// Create inserts loans; used to seed data
func (r *Repository) Create(ctx context.Context, loans []database.Loan) error {
	if len(loans) == 0 {
		return nil
	}
	return database.WrapDBError("CreateLoans", r.table, r.db.WithContext(ctx).Table(r.table).Create(&loans).Error)
}
