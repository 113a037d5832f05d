package insights

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-insights/config"
	"finance-insights/database"
	models "finance-insights/database/models_pkg"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	cfg := config.DatabaseConfig{Type: "sqlite", Name: filepath.Join(t.TempDir(), "insights.db")}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(cfg))
	return NewRepository(db.DB(), database.TableAIInsights)
}

func TestSaveRequiresEntityType(t *testing.T) {
	err := setupRepo(t).Save(context.Background(), &models.AIInsight{Prediction: "p"})

	var verr *database.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListRecent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		entity := database.EntityTypeLoans
		if i%5 == 0 {
			entity = "Investments"
		}
		require.NoError(t, repo.Save(ctx, &models.AIInsight{
			EntityType:     entity,
			Prediction:     base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			ContextSummary: "{}",
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		}))
	}

	tests := []struct {
		name       string
		entityType string
		limit      int
		wantLen    int
		wantFirst  int
	}{
		{"default page size", "", 0, database.DefaultInsightPageSize, 24},
		{"filtered", database.EntityTypeLoans, 100, 20, 24},
		{"other entity", "Investments", 2, 2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListRecent(ctx, tt.entityType, tt.limit)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			assert.True(t, got[0].CreatedAt.Equal(base.Add(time.Duration(tt.wantFirst)*time.Hour)))
			for i := 1; i < len(got); i++ {
				assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "newest first")
			}
		})
	}
}
