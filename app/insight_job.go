package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"finance-insights/analysis"
	"finance-insights/cache"
	"finance-insights/database"
	models "finance-insights/database/models_pkg"
	"finance-insights/helpers"
)

// LoanSource supplies the loans an insight is computed from
type LoanSource interface {
	ListLoans(ctx context.Context) ([]models.Loan, error)
}

// InsightStore persists generated insights
type InsightStore interface {
	Save(ctx context.Context, insight *models.AIInsight) error
}

// Explainer turns a prompt into prose. ok is false when the text is a failure placeholder.
type Explainer interface {
	Explain(ctx context.Context, prompt string) (text string, ok bool)
	Model() string
}

// InsightJob computes the monthly loan forecast and theme breakdown, asks the
// completion API to explain it, and stores the result.
type InsightJob struct {
	loans     LoanSource
	store     InsightStore
	explainer Explainer
	cache     *cache.InsightCache
	cacheTTL  time.Duration
	now       func() time.Time
	runID     string
}

// NewInsightJob creates a job. cache may be nil.
func NewInsightJob(loans LoanSource, store InsightStore, explainer Explainer, insightCache *cache.InsightCache, cacheTTL time.Duration) *InsightJob {
	return &InsightJob{
		loans:     loans,
		store:     store,
		explainer: explainer,
		cache:     insightCache,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Run executes the job. With dryRun the insight is built but not saved.
func (j *InsightJob) Run(ctx context.Context, dryRun bool) (*models.AIInsight, error) {
	loans, err := j.loans.ListLoans(ctx)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, database.NewNotFoundError("loan records")
	}
	log.Printf("📥 [%s] Loaded %d loans", j.runID, len(loans))

	totals := analysis.MonthlyTotals(loans)
	forecast, err := analysis.PredictNextMonth(totals)
	if err != nil {
		return nil, fmt.Errorf("forecast failed: %w", err)
	}
	log.Printf("📈 [%s] %d months, slope %.2f/step, %s predicted for %s",
		j.runID, len(totals), forecast.Model.Slope, helpers.FormatUSD(forecast.Predicted()), forecast.NextMonth.Format("January 2006"))

	recent := analysis.RecentLoans(loans, analysis.RecentWindowMonths)
	themes := analysis.ThemeDistribution(recent)
	log.Printf("🏷️  [%s] Themes over %d recent loans: %s", j.runID, len(recent), themes)

	ictx := analysis.BuildContext(totals, themes, forecast)
	explanation := j.explain(ctx, ictx)

	contextJSON, err := ictx.JSON()
	if err != nil {
		return nil, err
	}

	insight := &models.AIInsight{
		EntityType:     database.EntityTypeLoans,
		Prediction:     ictx.PredictionText(),
		ContextSummary: contextJSON,
		Explanation:    explanation,
		CreatedAt:      j.now().UTC(),
	}

	if dryRun {
		log.Printf("🧪 [%s] Dry run, insight not saved", j.runID)
		return insight, nil
	}

	if err := j.store.Save(ctx, insight); err != nil {
		return nil, err
	}
	log.Printf("✅ [%s] Loan insight saved", j.runID)
	return insight, nil
}

// explain returns a cached explanation for an unchanged context, or asks the API.
// Only real completions are cached.
func (j *InsightJob) explain(ctx context.Context, ictx analysis.InsightContext) string {
	hash := cache.GenerateDataHash(ictx.Persisted())

	if cached, ok := j.cache.GetExplanation(ctx, database.EntityTypeLoans, hash); ok && cached.Model == j.explainer.Model() {
		log.Printf("♻️  [%s] Reusing cached explanation from %s", j.runID, cached.GeneratedAt.Format(time.RFC3339))
		return cached.Explanation
	}

	log.Printf("🤖 [%s] Requesting explanation from %s", j.runID, j.explainer.Model())
	text, ok := j.explainer.Explain(ctx, analysis.BuildPrompt(ictx))
	if !ok {
		log.Printf("⚠️  [%s] %s", j.runID, text)
		return text
	}

	if j.cache.Enabled() {
		entry := &cache.CachedExplanation{Model: j.explainer.Model(), Explanation: text, GeneratedAt: j.now().UTC()}
		if err := j.cache.SetExplanation(ctx, database.EntityTypeLoans, hash, entry, j.cacheTTL); err != nil {
			log.Printf("⚠️  [%s] Failed to cache explanation: %v", j.runID, err)
		}
	}
	return text
}

// RunLoanInsight wires the job to the configured database, completion API and cache
func (a *App) RunLoanInsight(ctx context.Context, dryRun bool) (*models.AIInsight, error) {
	if err := a.Connect(); err != nil {
		return nil, err
	}
	a.connectRedis()

	job := NewInsightJob(a.loansRepo(), a.insightsRepo(), a.llmClient(), cache.NewInsightCache(a.redis), a.config.InsightCacheTTL)
	job.runID = a.runID
	return job.Run(ctx, dryRun)
}
