package app

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"finance-insights/cache"
	"finance-insights/config"
	"finance-insights/database"
	"finance-insights/database/insights"
	"finance-insights/database/investments"
	"finance-insights/database/loans"
	"finance-insights/llm"
)

// App owns the connections shared by the commands
type App struct {
	config *config.Config
	db     *database.Database
	redis  *cache.RedisClient
	runID  string
}

// New creates a new application instance. Connections are opened lazily by Connect.
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		runID:  uuid.NewString(),
	}
}

// Connect opens the database connection
func (a *App) Connect() error {
	if a.db != nil {
		return nil
	}

	log.Printf("🗄️  [%s] Connecting to database %s", a.runID, a.config.Database.RedactedODBCURL())
	db, err := database.Connect(a.config.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db
	log.Printf("✅ Database connection established (%s)", db.Dialect())
	return nil
}

// connectRedis opens the optional Redis connection; failure only disables caching
func (a *App) connectRedis() {
	if !a.config.Redis.Enabled || a.redis != nil {
		return
	}
	log.Println("🧠 Connecting to Redis...")
	a.redis = cache.NewRedisClient(a.config.Redis.Host, a.config.Redis.Port, a.config.Redis.Password)
	if a.redis == nil {
		log.Println("⚠️  Redis connection failed. Caching disabled.")
	}
}

// Close releases every open connection
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		a.db = nil
	}
}

// Migrate creates the schema and tables the jobs and API rely on
func (a *App) Migrate() error {
	if err := a.Connect(); err != nil {
		return err
	}
	return a.db.InitSchema(a.config.Database)
}

func (a *App) table(name string) string {
	return a.config.Database.QualifiedTable(name)
}

func (a *App) investmentsRepo(table string) *investments.Repository {
	return investments.NewRepository(a.db.DB(), a.table(table), a.table(database.TableInvestmentStatus))
}

func (a *App) loansRepo() *loans.Repository {
	return loans.NewRepository(a.db.DB(), a.table(database.TableLoans))
}

func (a *App) insightsRepo() *insights.Repository {
	return insights.NewRepository(a.db.DB(), a.table(database.TableAIInsights))
}

func (a *App) llmClient() *llm.Client {
	return llm.NewClient(a.config.LLM.Endpoint, a.config.LLM.APIKey, a.config.LLM.Model).
		WithTimeout(a.config.LLM.Timeout)
}
