package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContextMonths is how many trailing monthly totals go into the insight context
const ContextMonths = 3

// InsightContext is everything the prompt and the stored insight are derived from
type InsightContext struct {
	LastMonths []MonthlyTotal
	Themes     Distribution
	Forecast   Forecast
}

// MonthRecord is one monthly total as stored in the context JSON
type MonthRecord struct {
	MonthNumber string  `json:"MonthNumber"` // YYYY-MM
	Amount      float64 `json:"Amount"`
}

// PersistedContext is the JSON document saved in AI_Insights.ContextSummary
type PersistedContext struct {
	LastThreeMonths             []MonthRecord `json:"last_3_months"`
	LoanThemeDistribution       Distribution  `json:"loan_theme_distribution"`
	PredictedTotalLoanNextMonth int64         `json:"predicted_total_loan_next_month"`
	NextMonth                   string        `json:"next_month"` // YYYY-MM
}

// BuildContext keeps the trailing ContextMonths totals alongside the theme
// distribution and forecast.
func BuildContext(totals []MonthlyTotal, themes Distribution, forecast Forecast) InsightContext {
	start := len(totals) - ContextMonths
	if start < 0 {
		start = 0
	}
	last := make([]MonthlyTotal, len(totals)-start)
	copy(last, totals[start:])

	return InsightContext{
		LastMonths: last,
		Themes:     themes,
		Forecast:   forecast,
	}
}

// Persisted converts the context into its stored form, with months as YYYY-MM
func (c InsightContext) Persisted() PersistedContext {
	months := make([]MonthRecord, len(c.LastMonths))
	for i, m := range c.LastMonths {
		months[i] = MonthRecord{
			MonthNumber: m.Month.Format("2006-01"),
			Amount:      m.Amount.InexactFloat64(),
		}
	}

	themes := c.Themes
	if themes == nil {
		themes = Distribution{}
	}

	return PersistedContext{
		LastThreeMonths:             months,
		LoanThemeDistribution:       themes,
		PredictedTotalLoanNextMonth: c.Forecast.Predicted(),
		NextMonth:                   c.Forecast.NextMonth.Format("2006-01"),
	}
}

// JSON serializes the persisted context
func (c InsightContext) JSON() (string, error) {
	data, err := json.Marshal(c.Persisted())
	if err != nil {
		return "", fmt.Errorf("failed to marshal insight context: %w", err)
	}
	return string(data), nil
}

// PredictionText is the one-line prediction stored with the insight
func (c InsightContext) PredictionText() string {
	return fmt.Sprintf("Predicted total loan amount for %s: $%d",
		c.Forecast.NextMonth.Format("2006-01"), c.Forecast.Predicted())
}

// BuildPrompt renders the board-report request sent to the completion API
func BuildPrompt(c InsightContext) string {
	months := make([]string, len(c.LastMonths))
	for i, m := range c.LastMonths {
		months[i] = fmt.Sprintf("%s: %s", m.Month.Format("January 2006"), m.Amount.StringFixed(2))
	}

	var b strings.Builder
	b.WriteString("As a financial analyst, here is your report for the board:\n\n")
	fmt.Fprintf(&b, "Recent loan distribution themes (last %d months): %s\n", RecentWindowMonths, c.Themes)
	fmt.Fprintf(&b, "Total loan volume in the last %d months: [%s]\n", ContextMonths, strings.Join(months, ", "))
	fmt.Fprintf(&b, "Based on trend analysis, the model predicts total loan disbursement next month (%s) will be $%d.\n\n",
		c.Forecast.NextMonth.Format("January 2006"), c.Forecast.Predicted())
	b.WriteString("Why might this be the case? What patterns or behavior explain this trend? ")
	b.WriteString("Provide 3 business recommendations to prepare for this scenario. Write like you are presenting to the board.")
	return b.String()
}
