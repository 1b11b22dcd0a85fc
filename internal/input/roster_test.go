package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Companies")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func createTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCompaniesXLSXWithHeader(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Company", "Ticker"},
		{"Apple Inc.", "AAPL"},
		{"Acme Corp", ""},
		{"", ""},
	})

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Apple Inc.", companies[0].Name)
	assert.Equal(t, "AAPL", companies[0].Ticker)
	assert.Equal(t, "Acme Corp", companies[1].Name)
	assert.Empty(t, companies[1].Ticker)
}

func TestReadCompaniesCSVWithHeader(t *testing.T) {
	path := createTestCSV(t, "name,symbol\nApple Inc.,AAPL\nAcme Corp,\n")

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "AAPL", companies[0].Ticker)
}

func TestReadCompaniesCSVHeaderless(t *testing.T) {
	path := createTestCSV(t, "Apple Inc.\nAcme Corp\n")

	companies, err := ReadCompanies(path)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Apple Inc.", companies[0].Name)
}

func TestReadCompaniesUnsupportedExtension(t *testing.T) {
	_, err := ReadCompanies("roster.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported roster format")
}

func TestReadCompaniesEmptyRoster(t *testing.T) {
	path := createTestCSV(t, "company,ticker\n")
	_, err := ReadCompanies(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable rows")
}

func TestReadCompaniesMissingFile(t *testing.T) {
	_, err := ReadCompanies(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
