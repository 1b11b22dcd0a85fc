package page

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Chain tries fetchers in priority order, returning the first success.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in order; the first
// successful result wins.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Fetch tries each fetcher in order for a single URL. Returns the first
// successful result, or an error if all fail.
func (c *Chain) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	var lastErr error
	for _, f := range c.fetchers {
		if !f.Supports(targetURL) {
			continue
		}
		result, err := f.Fetch(ctx, targetURL)
		if err == nil && result != nil {
			return result, nil
		}
		if err != nil {
			zap.L().Debug("page: fetcher failed, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", targetURL),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "page: all fetchers failed")
	}
	return nil, eris.Errorf("page: no suitable fetcher for url: %s", targetURL)
}

// ExtractText fetches a URL through the chain and returns its text. Every
// tier failing is not an error at this level: callers treat a missing
// leadership page as absent evidence and move on.
func (c *Chain) ExtractText(ctx context.Context, targetURL string) string {
	if targetURL == "" {
		return ""
	}
	result, err := c.Fetch(ctx, targetURL)
	if err != nil {
		zap.L().Debug("page: text extraction failed",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		return ""
	}
	return result.Text
}
