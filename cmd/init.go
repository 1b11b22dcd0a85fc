package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screen-cli/internal/page"
	"github.com/sells-group/screen-cli/internal/screen"
	"github.com/sells-group/screen-cli/internal/store"
	"github.com/sells-group/screen-cli/internal/ticker"
	"github.com/sells-group/screen-cli/internal/treasurer"
	anthropicpkg "github.com/sells-group/screen-cli/pkg/anthropic"
	"github.com/sells-group/screen-cli/pkg/jina"
	"github.com/sells-group/screen-cli/pkg/serp"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.Path
		if dsn == "" {
			dsn = "screen.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initScreener() *screen.Screener {
	serpClient := serp.NewClient(cfg.Serp.Key, serp.WithBaseURL(cfg.Serp.BaseURL))
	jinaClient := jina.NewClient(cfg.Jina.Key,
		jina.WithBaseURL(cfg.Jina.BaseURL),
		jina.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Scrape.RenderTimeoutSecs) * time.Second}),
	)
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)

	chain := page.NewChain(
		page.NewRenderFetcher(jinaClient),
		page.NewStaticFetcher(
			page.WithTimeout(time.Duration(cfg.Scrape.StaticTimeoutSecs)*time.Second),
			page.WithUserAgent(cfg.Scrape.UserAgent),
		),
	)

	thresholds := treasurer.Thresholds{
		High:   cfg.Treasurer.HighThreshold,
		Medium: cfg.Treasurer.MediumThreshold,
		Usable: cfg.Treasurer.UsableThreshold,
		Margin: cfg.Treasurer.TieMargin,
		Former: treasurer.FormerPolicy(cfg.Treasurer.FormerPolicy),
	}

	return screen.NewScreener(serpClient, chain, anthropicClient, cfg.Anthropic.Model, thresholds)
}

// loadTickerTable loads the SEC lookup when the file exists; a missing
// table is not fatal, ticker resolution just becomes unavailable.
func loadTickerTable() *ticker.Table {
	table, err := ticker.Load(cfg.Ticker.Path)
	if err != nil {
		return nil
	}
	return table
}
