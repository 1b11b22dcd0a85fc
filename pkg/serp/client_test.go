package serp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screen-cli/internal/resilience"
)

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "acme corp treasurer", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "5", r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic_results":[
			{"title":"Acme Leadership","link":"https://acme.com/leadership","snippet":"Jane Doe, Treasurer"},
			{"title":"Acme 10-K","link":"https://sec.gov/acme","snippet":"treasury operations"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "acme corp treasurer", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Acme Leadership", results[0].Title)
	assert.Equal(t, "https://acme.com/leadership", results[0].Link)
	assert.Equal(t, "Jane Doe, Treasurer", results[0].Snippet)
}

func TestSearch_ClampsRequestedResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("num"))
		w.Write([]byte(`{"organic_results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "acme", 500)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "acme", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrExternalService))
}

func TestSearch_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "acme", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrExternalService))
	assert.Contains(t, err.Error(), "401")
}

func TestSearch_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"organic_results":[{"title":"Acme","link":"https://acme.com","snippet":"ok"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "acme", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int32(2), calls.Load())
}
