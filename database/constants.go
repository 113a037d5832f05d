package database

// Table names, unqualified. Callers prefix them with config.DatabaseConfig.QualifiedTable.
const (
	TableLoans             = "Loans"
	TableAIInsights        = "AI_Insights"
	TableInvestments       = "Investments"
	TableInvestmentStatus  = "Investment_status"
	EntityTypeLoans        = "Loans"
	DefaultInsightPageSize = 20
)
