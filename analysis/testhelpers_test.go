package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	models "finance-insights/database/models_pkg"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loan(t time.Time, amount string, notes *string) models.Loan {
	return models.Loan{LoanDate: t, Amount: decimal.RequireFromString(amount), LoanNotes: notes}
}

func note(s string) *string {
	return &s
}
