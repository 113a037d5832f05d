package loans

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-insights/config"
	"finance-insights/database"
	models "finance-insights/database/models_pkg"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	cfg := config.DatabaseConfig{Type: "sqlite", Name: filepath.Join(t.TempDir(), "loans.db")}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(cfg))
	return NewRepository(db.DB(), database.TableLoans)
}

func TestListLoansOrderedByDate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	note := "medical bills"

	require.NoError(t, repo.Create(ctx, []models.Loan{
		{LoanDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("300.25")},
		{LoanDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100), LoanNotes: &note},
	}))

	loans, err := repo.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 2)

	assert.Equal(t, time.January, loans[0].LoanDate.Month())
	require.NotNil(t, loans[0].LoanNotes)
	assert.Equal(t, "medical bills", *loans[0].LoanNotes)
	assert.True(t, decimal.NewFromInt(100).Equal(loans[0].Amount))

	assert.Nil(t, loans[1].LoanNotes, "NULL notes stay nil")
	assert.Equal(t, "300.25", loans[1].Amount.String())
}

func TestListLoansMissingTable(t *testing.T) {
	repo := setupRepo(t)
	repo.table = "NoSuchTable"

	_, err := repo.ListLoans(context.Background())

	var dbErr *database.DBError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "ListLoans", dbErr.Operation)
}

func TestCreateEmpty(t *testing.T) {
	assert.NoError(t, setupRepo(t).Create(context.Background(), nil))
}
