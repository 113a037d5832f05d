package etl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"finance-insights/database"
)

// Frame is a CSV file held in memory: a header and string cells.
// Every row has exactly len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ReadCSV opens and parses a CSV file
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	frame, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// ParseCSV reads a header line followed by data rows.
// Short rows are padded with empty (missing) cells; rows longer than the header are rejected.
func ParseCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, database.NewValidationError("header", "CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	frame := &Frame{Columns: headers}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		// csv.Reader yields a single empty field for blank lines it does not skip
		if len(row) == 1 && row[0] == "" && len(headers) > 1 {
			continue
		}
		if len(row) > len(headers) {
			return nil, database.NewValidationErrorWithValue("row",
				fmt.Sprintf("line %d has %d fields, expected %d", line, len(row), len(headers)), len(row))
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}
