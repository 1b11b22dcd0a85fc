// Package serp provides a client for a SerpAPI-compatible Google search
// endpoint. It is the pipeline's web-search capability: query in, ranked
// organic results out.
package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/screen-cli/internal/resilience"
)

// MaxResults bounds the number of organic results a single search may
// request.
const MaxResults = 20

// Client defines the search operations used by the pipeline.
type Client interface {
	// Search runs a web search and returns organic results in engine rank
	// order. A provider success with zero organic results returns an empty
	// slice and a nil error.
	Search(ctx context.Context, query string, num int) ([]OrganicResult, error)
}

// OrganicResult is a single ranked search result.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

// Option configures the serp client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate limiter.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a search client against the given API key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com",
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures. Returns the response body and status code on success,
// or the last error after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts && resilience.IsTransient(err) {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "serp: read response body")
		}

		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			lastErr = resilience.NewTransientError(eris.Errorf("serp: status %d: %s", resp.StatusCode, string(body)), resp.StatusCode)
			if attempt == maxAttempts {
				return nil, resp.StatusCode, lastErr
			}
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) Search(ctx context.Context, query string, num int) ([]OrganicResult, error) {
	if num <= 0 || num > MaxResults {
		num = MaxResults
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "serp: rate limiter wait")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(num))
	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "serp: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(resilience.ErrExternalService, err.Error())
	}

	if statusCode != http.StatusOK {
		return nil, eris.Wrapf(resilience.ErrExternalService, "serp: unexpected status %d: %s", statusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "serp: unmarshal response")
	}
	if result.Error != "" {
		return nil, eris.Wrapf(resilience.ErrExternalService, "serp: provider error: %s", result.Error)
	}

	if len(result.OrganicResults) > num {
		result.OrganicResults = result.OrganicResults[:num]
	}
	return result.OrganicResults, nil
}
