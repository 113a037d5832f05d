// Package analysis turns raw loan rows into the figures an insight is built from:
// monthly totals, a linear trend forecast and a keyword theme breakdown.
package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	models "finance-insights/database/models_pkg"
)

// MonthlyTotal is the summed loan amount for one calendar month
type MonthlyTotal struct {
	Month  time.Time       // first day of the month, 00:00 UTC
	Amount decimal.Decimal // sum of Amount over the month
	Count  int
}

// MonthStart truncates a timestamp to the first day of its calendar month.
// The wall-clock fields are kept as stored, so a date never shifts month through a zone conversion.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTotals groups loans by calendar month and sums their amounts.
// The result is sorted by month ascending; months without loans are absent.
func MonthlyTotals(loans []models.Loan) []MonthlyTotal {
	byMonth := make(map[time.Time]*MonthlyTotal)
	for _, loan := range loans {
		month := MonthStart(loan.LoanDate)
		total, ok := byMonth[month]
		if !ok {
			total = &MonthlyTotal{Month: month, Amount: decimal.Zero}
			byMonth[month] = total
		}
		total.Amount = total.Amount.Add(loan.Amount)
		total.Count++
	}

	totals := make([]MonthlyTotal, 0, len(byMonth))
	for _, t := range byMonth {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month.Before(totals[j].Month)
	})
	return totals
}

// AddMonths shifts t by n calendar months, clamping the day to the end of the
// target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
