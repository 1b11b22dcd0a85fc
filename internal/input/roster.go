// Package input reads company rosters for batch screening from XLSX and
// CSV files. The first row is treated as a header when it names a company
// column; otherwise the first column is assumed to hold company names.
package input

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/screen-cli/internal/model"
)

// Header names recognized for the two roster columns.
var (
	nameHeaders   = map[string]bool{"company": true, "company name": true, "name": true}
	tickerHeaders = map[string]bool{"ticker": true, "symbol": true}
)

// ReadCompanies loads a roster file by extension.
func ReadCompanies(path string) ([]model.Company, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, eris.Errorf("input: unsupported roster format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func readXLSX(path string) ([]model.Company, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("input: xlsx has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, strings.TrimSpace(c.String()))
		}
		rows = append(rows, cells)
	}
	return rowsToCompanies(rows)
}

func readCSV(path string) ([]model.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "input: parse csv")
	}
	for i, rec := range records {
		for j, cell := range rec {
			records[i][j] = strings.TrimSpace(cell)
		}
	}
	return rowsToCompanies(records)
}

func rowsToCompanies(rows [][]string) ([]model.Company, error) {
	if len(rows) == 0 {
		return nil, eris.New("input: roster is empty")
	}

	nameCol, tickerCol, hasHeader := detectColumns(rows[0])
	if hasHeader {
		rows = rows[1:]
	}

	var companies []model.Company
	for _, row := range rows {
		c := model.Company{
			Name:   cellAt(row, nameCol),
			Ticker: cellAt(row, tickerCol),
		}
		if c.Name == "" && c.Ticker == "" {
			continue
		}
		companies = append(companies, c)
	}
	if len(companies) == 0 {
		return nil, eris.New("input: roster has no usable rows")
	}
	return companies, nil
}

// detectColumns inspects the first row. A recognized header yields the
// column layout; anything else means a headerless single-name-column file.
func detectColumns(header []string) (nameCol, tickerCol int, hasHeader bool) {
	nameCol, tickerCol = 0, -1
	for i, cell := range header {
		key := strings.ToLower(cell)
		switch {
		case nameHeaders[key]:
			nameCol = i
			hasHeader = true
		case tickerHeaders[key]:
			tickerCol = i
			hasHeader = true
		}
	}
	return nameCol, tickerCol, hasHeader
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
