package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "finance-insights/database/models_pkg"
)

func TestClassifyTheme(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{"car repair", "Automotive"},
		{"Urgent CAR REPAIR after accident", "Automotive"},
		{"groceries", OtherTheme},
		{"", OtherTheme},
		{"Home renovation - kitchen", "Home Improvement"},
		{"medical bills and school fees", "Healthcare"},
		{"business expansion and car repair", "Business"},
		{"Unexpected expenses", "Emergency"},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTheme(tt.note))
		})
	}
}

func TestRecentLoans(t *testing.T) {
	loans := []models.Loan{
		loan(date(2024, time.February, 28), "1", note("too old")),
		loan(date(2024, time.February, 29), "1", note("on cutoff")),
		loan(date(2024, time.April, 10), "1", nil),
		loan(date(2024, time.April, 11), "1", note("")),
		loan(date(2024, time.May, 31), "1", note("latest")),
	}

	recent := RecentLoans(loans, RecentWindowMonths)

	require.Len(t, recent, 3)
	assert.Equal(t, "on cutoff", *recent[0].LoanNotes)
	assert.Equal(t, "", *recent[1].LoanNotes)
	assert.Equal(t, "latest", *recent[2].LoanNotes)

	assert.Nil(t, RecentLoans(nil, RecentWindowMonths))
}

func TestThemeDistribution(t *testing.T) {
	loans := []models.Loan{
		loan(date(2024, time.May, 1), "1", note("Travel expenses")),
		loan(date(2024, time.May, 2), "1", note("car repair")),
		loan(date(2024, time.May, 3), "1", note("rent")),
		loan(date(2024, time.May, 4), "1", note("Car repair again")),
		loan(date(2024, time.May, 5), "1", note("wedding")),
		loan(date(2024, time.May, 6), "1", nil),
	}

	dist := ThemeDistribution(loans)

	assert.Equal(t, Distribution{
		{Theme: "Automotive", Count: 2},
		{Theme: "Other", Count: 2},
		{Theme: "Travel", Count: 1},
	}, dist)
	assert.Equal(t, 5, dist.Total())
	assert.Equal(t, 2, dist.Count("Automotive"))
	assert.Zero(t, dist.Count("Healthcare"))
	assert.Equal(t, "{Automotive: 2, Other: 2, Travel: 1}", dist.String())

	data, err := json.Marshal(dist)
	require.NoError(t, err)
	assert.Equal(t, `{"Automotive":2,"Other":2,"Travel":1}`, string(data))

	var decoded Distribution
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, dist, decoded)
}

func TestEmptyDistributionMarshalsAsObject(t *testing.T) {
	data, err := json.Marshal(Distribution{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
