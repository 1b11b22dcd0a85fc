// Package ticker resolves stock tickers to company identities using the
// SEC's company_tickers.json dump. The table is loaded once at startup and
// read-only afterwards.
package ticker

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Entry is one SEC ticker registration.
type Entry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// Table is an immutable ticker lookup built from the SEC dump.
type Table struct {
	byTicker map[string]Entry
}

// Load reads company_tickers.json. The SEC file is a map of positional
// string keys to entries, not an array.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ticker: read %s", path)
	}

	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "ticker: parse company tickers")
	}

	byTicker := make(map[string]Entry, len(raw))
	for _, e := range raw {
		if e.Ticker == "" {
			continue
		}
		byTicker[strings.ToUpper(e.Ticker)] = e
	}

	zap.L().Info("ticker: table loaded",
		zap.String("path", path),
		zap.Int("entries", len(byTicker)),
	)
	return &Table{byTicker: byTicker}, nil
}

// Lookup resolves a ticker symbol, case-insensitively.
func (t *Table) Lookup(symbol string) (Entry, bool) {
	e, ok := t.byTicker[strings.ToUpper(strings.TrimSpace(symbol))]
	return e, ok
}

// CompanyName returns the registered title for a ticker, or "" when the
// ticker is unknown.
func (t *Table) CompanyName(symbol string) string {
	e, ok := t.Lookup(symbol)
	if !ok {
		return ""
	}
	return e.Title
}

// Len reports the number of loaded entries.
func (t *Table) Len() int {
	return len(t.byTicker)
}
