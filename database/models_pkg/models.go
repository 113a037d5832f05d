package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a single disbursed loan as stored in the Loans table.
//
// Key Fields:
//   - LoanDate: When the loan was disbursed (drives monthly bucketing)
//   - Amount: Disbursed amount
//   - LoanNotes: Free-text purpose, nil when the column is NULL
//
// Column names mirror the existing table, which mixes snake_case and PascalCase.
type Loan struct {
	LoanDate  time.Time       `gorm:"column:loan_date;not null" json:"loan_date"`
	Amount    decimal.Decimal `gorm:"column:Amount;type:decimal(18,2);not null" json:"amount"`
	LoanNotes *string         `gorm:"column:loan_notes;size:500" json:"loan_notes,omitempty"`
}

// AIInsight is a generated insight persisted for later review.
// ContextSummary holds the JSON document the prediction was derived from.
type AIInsight struct {
	EntityType     string    `gorm:"column:EntityType;size:50;not null" json:"entity_type"`
	Prediction     string    `gorm:"column:Prediction;type:text" json:"prediction"`
	ContextSummary string    `gorm:"column:ContextSummary;type:text" json:"context_summary"`
	Explanation    string    `gorm:"column:Explanation;type:text" json:"explanation"`
	CreatedAt      time.Time `gorm:"column:CreatedAt;not null" json:"created_at"`
}

// Investment is the fixed-shape view of the Investments table used by the HTTP API.
// The ETL job appends to the same table with whatever columns the CSV carries.
type Investment struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	InvestmentType string          `gorm:"column:investment_type;size:100;not null" json:"investment_type"`
	InvestmentDate time.Time       `gorm:"column:investment_date;type:date" json:"investment_date"`
	MaturityDate   time.Time       `gorm:"column:maturity_date;type:date" json:"maturity_date"`
}

// InvestmentStatus records the value of an investment on a given date
type InvestmentStatus struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvestmentID int64           `gorm:"column:investment_id;index;not null" json:"investment_id"`
	StatusDate   time.Time       `gorm:"column:status_date;type:date" json:"status_date"`
	CurrentValue decimal.Decimal `gorm:"column:current_value;type:decimal(18,2)" json:"current_value"`
}
