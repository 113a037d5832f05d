package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentSummary is the projection returned by the investments listing
type InvestmentSummary struct {
	ID             int64           `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	InvestmentType string          `json:"investment_type"`
}

// InvestmentStatusDetail joins a status row with its parent investment
type InvestmentStatusDetail struct {
	ID               int64           `json:"id"`
	InvestmentID     int64           `json:"investment_id"`
	StatusDate       time.Time       `json:"status_date"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	InvestmentType   string          `json:"investment_type"`
}
