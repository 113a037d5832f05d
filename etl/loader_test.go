package etl

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-insights/config"
	"finance-insights/database"
	"finance-insights/database/investments"
)

func openTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{
		Type: "sqlite",
		Name: filepath.Join(t.TempDir(), "etl.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBatchLoaderCreatesAndAppends(t *testing.T) {
	db := openTestDB(t)
	repo := investments.NewRepository(db.DB(), "Investments", "Investment_status")
	loader := NewBatchLoader(repo, 1)
	ctx := context.Background()

	csv := "Investment Type,Amount,Notes\nStocks,1000,NA\nBonds,250,\n"

	for i := 0; i < 2; i++ {
		frame, err := ParseCSV(strings.NewReader(csv))
		require.NoError(t, err)

		n, err := Run(ctx, frame, loader)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	}

	var count int64
	require.NoError(t, db.DB().Table("Investments").Count(&count).Error)
	assert.Equal(t, int64(4), count)

	var notes []string
	require.NoError(t, db.DB().Table("Investments").Pluck("notes", &notes).Error)
	assert.Equal(t, []string{"", "", "", ""}, notes)

	var amounts []int64
	require.NoError(t, db.DB().Table("Investments").Order("amount").Pluck("amount", &amounts).Error)
	assert.Equal(t, []int64{250, 250, 1000, 1000}, amounts)
}

func TestBatchLoaderEmptyFrame(t *testing.T) {
	db := openTestDB(t)
	repo := investments.NewRepository(db.DB(), "Investments", "Investment_status")

	ctx := context.Background()
	assert.False(t, repo.HasTable(ctx))

	n, err := Run(ctx, &Frame{Columns: []string{"Amount"}}, NewBatchLoader(repo, 10))

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.HasTable(ctx))
}

func TestSplitQualified(t *testing.T) {
	schema, table := splitQualified("Personal_Finance.Investments")
	assert.Equal(t, "Personal_Finance", schema)
	assert.Equal(t, "Investments", table)

	schema, table = splitQualified("Investments")
	assert.Equal(t, "public", schema)
	assert.Equal(t, "Investments", table)
}
