package insights

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finance-insights/database"
)

// Repository persists generated insights
type Repository struct {
	db    *gorm.DB
	table string
}

// NewRepository creates a new insights repository over the given (schema-qualified) table
func NewRepository(db *gorm.DB, table string) *Repository {
	return &Repository{db: db, table: table}
}

// Save appends one insight row
func (r *Repository) Save(ctx context.Context, insight *database.AIInsight) error {
	if insight.EntityType == "" {
		return database.NewValidationError("EntityType", "must not be empty")
	}
	if err := r.db.WithContext(ctx).Table(r.table).Create(insight).Error; err != nil {
		return database.WrapDBError("SaveInsight", r.table, err)
	}
	return nil
}

// ListRecent returns the newest insights first, optionally filtered by entity type
func (r *Repository) ListRecent(ctx context.Context, entityType string, limit int) ([]database.AIInsight, error) {
	if limit <= 0 {
		limit = database.DefaultInsightPageSize
	}

	query := r.db.WithContext(ctx).Table(r.table)
	if entityType != "" {
		query = query.Where(clause.Eq{Column: clause.Column{Name: "EntityType"}, Value: entityType})
	}

	var insights []database.AIInsight
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "CreatedAt"}, Desc: true}).
		Limit(limit).
		Find(&insights).Error
	if err != nil {
		return nil, database.WrapDBError("ListRecentInsights", r.table, err)
	}
	return insights, nil
}
