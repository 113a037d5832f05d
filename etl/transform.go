package etl

import (
	"fmt"
	"strconv"
	"strings"

	"finance-insights/database/investments"
)

// naTokens are the cell values treated as missing
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// NormalizeColumnName lower-cases a header and replaces every space with an underscore
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NormalizeColumns normalizes every header. Names that collide after normalization
// get ".1", ".2", ... suffixes in order of appearance.
func NormalizeColumns(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		name := NormalizeColumnName(h)
		if n, dup := seen[name]; dup {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			seen[candidate] = 1
			name = candidate
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// IsMissing reports whether a raw cell counts as a missing value
func IsMissing(cell string) bool {
	_, ok := naTokens[cell]
	return ok
}

// FillMissing replaces every missing cell with the empty string, in place,
// and returns how many cells were missing
func FillMissing(frame *Frame) int {
	filled := 0
	for _, row := range frame.Rows {
		for j, cell := range row {
			if IsMissing(cell) {
				row[j] = ""
				filled++
			}
		}
	}
	return filled
}

// Transform normalizes the header and blanks missing values
func Transform(frame *Frame) {
	frame.Columns = NormalizeColumns(frame.Columns)
	FillMissing(frame)
}

// InferColumnTypes picks integer when every cell parses as an integer, float when every
// cell parses as a number, and text otherwise. An empty cell forces text, and so does
// a column with no rows.
func InferColumnTypes(frame *Frame) []investments.Column {
	cols := make([]investments.Column, len(frame.Columns))
	for j, name := range frame.Columns {
		kind := investments.KindText
		if len(frame.Rows) > 0 {
			kind = investments.KindInteger
			for _, row := range frame.Rows {
				cell := strings.TrimSpace(row[j])
				if kind == investments.KindInteger {
					if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
						continue
					}
					kind = investments.KindFloat
				}
				if _, err := strconv.ParseFloat(cell, 64); err != nil {
					kind = investments.KindText
					break
				}
			}
		}
		cols[j] = investments.Column{Name: name, Kind: kind}
	}
	return cols
}

// Records converts the frame into insertable rows using the inferred column kinds
func Records(frame *Frame, cols []investments.Column) []map[string]interface{} {
	records := make([]map[string]interface{}, len(frame.Rows))
	for i, row := range frame.Rows {
		rec := make(map[string]interface{}, len(cols))
		for j, col := range cols {
			rec[col.Name] = convertCell(row[j], col.Kind)
		}
		records[i] = rec
	}
	return records
}

// Values returns the row-major typed values in column order, as COPY expects them
func Values(frame *Frame, cols []investments.Column) [][]interface{} {
	values := make([][]interface{}, len(frame.Rows))
	for i, row := range frame.Rows {
		vals := make([]interface{}, len(cols))
		for j, col := range cols {
			vals[j] = convertCell(row[j], col.Kind)
		}
		values[i] = vals
	}
	return values
}

func convertCell(cell string, kind investments.ColumnKind) interface{} {
	switch kind {
	case investments.KindInteger:
		v, _ := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
		return v
	case investments.KindFloat:
		v, _ := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		return v
	default:
		return cell
	}
}
