package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	models "finance-insights/database/models_pkg"
)

// OtherTheme is assigned when no keyword matches
const OtherTheme = "Other"

// RecentWindowMonths is how far back from the latest loan theme classification looks
const RecentWindowMonths = 3

// Theme is a label and the lower-case phrases that select it
type Theme struct {
	Name     string
	Keywords []string
}

// Themes are checked in order; the first theme with a matching keyword wins.
var Themes = []Theme{
	{Name: "Business", Keywords: []string{"business expansion"}},
	{Name: "Home Improvement", Keywords: []string{"home renovation"}},
	{Name: "Automotive", Keywords: []string{"car repair"}},
	{Name: "Debt Management", Keywords: []string{"debt consolidation"}},
	{Name: "Healthcare", Keywords: []string{"medical"}},
	{Name: "Travel", Keywords: []string{"travel expenses"}},
	{Name: "Education", Keywords: []string{"school fees"}},
	{Name: "Emergency", Keywords: []string{"unexpected expenses"}},
}

// ClassifyTheme returns the first theme whose keyword occurs in the note, case-insensitively
func ClassifyTheme(note string) string {
	note = strings.ToLower(note)
	for _, theme := range Themes {
		for _, kw := range theme.Keywords {
			if strings.Contains(note, kw) {
				return theme.Name
			}
		}
	}
	return OtherTheme
}

// RecentLoans keeps loans dated within `months` calendar months of the latest loan
// (inclusive) that have notes. An empty note is kept; a NULL one is not.
func RecentLoans(loans []models.Loan, months int) []models.Loan {
	if len(loans) == 0 {
		return nil
	}

	var latest time.Time
	for _, loan := range loans {
		if loan.LoanDate.After(latest) {
			latest = loan.LoanDate
		}
	}
	cutoff := AddMonths(latest, -months)

	var recent []models.Loan
	for _, loan := range loans {
		if loan.LoanDate.Before(cutoff) || loan.LoanNotes == nil {
			continue
		}
		recent = append(recent, loan)
	}
	return recent
}

// ThemeCount is the number of loans assigned to one theme
type ThemeCount struct {
	Theme string
	Count int
}

// Distribution is a theme histogram ordered by count descending, then theme name.
type Distribution []ThemeCount

// ThemeDistribution classifies each loan's notes and counts loans per theme.
// Loans without notes are skipped.
func ThemeDistribution(loans []models.Loan) Distribution {
	counts := make(map[string]int)
	for _, loan := range loans {
		if loan.LoanNotes == nil {
			continue
		}
		counts[ClassifyTheme(*loan.LoanNotes)]++
	}

	dist := make(Distribution, 0, len(counts))
	for theme, n := range counts {
		dist = append(dist, ThemeCount{Theme: theme, Count: n})
	}
	dist.sort()
	return dist
}

// Total is the number of classified loans
func (d Distribution) Total() int {
	total := 0
	for _, tc := range d {
		total += tc.Count
	}
	return total
}

// Count returns the count for a theme, 0 if absent
func (d Distribution) Count(theme string) int {
	for _, tc := range d {
		if tc.Theme == theme {
			return tc.Count
		}
	}
	return 0
}

// MarshalJSON encodes the distribution as a JSON object, preserving its order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tc.Theme)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", tc.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of theme counts; order follows the Distribution rules.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	dist := make(Distribution, 0, len(counts))
	for theme, n := range counts {
		dist = append(dist, ThemeCount{Theme: theme, Count: n})
	}
	dist.sort()
	*d = dist
	return nil
}

// String renders the distribution for prompts, e.g. "{Automotive: 2, Other: 1}"
func (d Distribution) String() string {
	parts := make([]string, len(d))
	for i, tc := range d {
		parts[i] = fmt.Sprintf("%s: %d", tc.Theme, tc.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d Distribution) sort() {
	sort.Slice(d, func(i, j int) bool {
		if d[i].Count != d[j].Count {
			return d[i].Count > d[j].Count
		}
		return d[i].Theme < d[j].Theme
	})
}
