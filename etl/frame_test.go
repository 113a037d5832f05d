package etl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffName,Amount\nAlpha,10\n\nBeta\n"

	frame, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, frame.Columns)
	assert.Equal(t, [][]string{{"Alpha", "10"}, {"Beta", ""}}, frame.Rows)
	assert.Equal(t, 2, frame.Len())
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.ErrorContains(t, err, "expected 2")
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "investments.csv")
	require.NoError(t, os.WriteFile(path, []byte("Amount\n5\n"), 0o600))

	frame, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, frame.Len())

	_, err = ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
