package database

import (
	"fmt"
	"log"
	"strings"

	"finance-insights/config"
	models "finance-insights/database/models_pkg"
)

// InitSchema creates the schema (where the dialect has one) and auto-migrates the
// loans, insights and investments tables. Existing tables only gain missing columns.
func (d *Database) InitSchema(cfg config.DatabaseConfig) error {
	log.Println("🔄 Starting database schema initialization...")

	if err := d.ensureSchema(cfg.Schema); err != nil {
		return err
	}

	tables := []struct {
		name  string
		model interface{}
	}{
		{TableLoans, &models.Loan{}},
		{TableAIInsights, &models.AIInsight{}},
		{TableInvestments, &models.Investment{}},
		{TableInvestmentStatus, &models.InvestmentStatus{}},
	}

	for _, t := range tables {
		qualified := cfg.QualifiedTable(t.name)
		if err := d.db.Table(qualified).AutoMigrate(t.model); err != nil {
			return WrapDBError("AutoMigrate", qualified, err)
		}
		log.Printf("✅ Table %s ready", qualified)
	}

	log.Println("✅ Database schema initialization completed successfully")
	return nil
}

func (d *Database) ensureSchema(schema string) error {
	if schema == "" || d.dialect == config.DialectSQLite {
		return nil
	}
	if strings.ContainsAny(schema, "[]\"'; ") {
		return NewValidationErrorWithValue("DB_SCHEMA", "invalid schema name", schema)
	}

	var stmt string
	switch d.dialect {
	case config.DialectPostgres:
		stmt = fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, schema)
	case config.DialectSQLServer:
		stmt = fmt.Sprintf(`IF NOT EXISTS (SELECT 1 FROM sys.schemas WHERE name = N'%s') EXEC('CREATE SCHEMA [%s]')`, schema, schema)
	}

	if err := d.db.Exec(stmt).Error; err != nil {
		return WrapDBError("CreateSchema", schema, err)
	}
	return nil
}
