package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFetchStripsHTML(t *testing.T) {
	html := `<html><head><title>Acme Leadership</title>
<script>var x = 1;</script><style>body{}</style></head>
<body><nav>Home | About</nav>
<h1>Our Executives</h1>
<p>Jane Doe serves as Treasurer &amp; VP of Finance.</p>
<footer>Copyright Acme</footer></body></html>` + strings.Repeat(" ", 100)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		_, _ = w.Write([]byte(html))
	}))
	defer srv.Close()

	f := NewStaticFetcher()
	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme Leadership", result.Title)
	assert.Equal(t, "static", result.Source)
	assert.Contains(t, result.Text, "Jane Doe serves as Treasurer & VP of Finance.")
	assert.NotContains(t, result.Text, "var x")
	assert.NotContains(t, result.Text, "Home | About")
	assert.NotContains(t, result.Text, "Copyright Acme")
}

func TestStaticFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewStaticFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestStaticFetchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewStaticFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestStaticFetchDetectsChallengePage(t *testing.T) {
	body := "<html><body>Checking your browser before accessing the site." +
		strings.Repeat(" filler", 20) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewStaticFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestStripHTMLEntitiesAndWhitespace(t *testing.T) {
	out := stripHTML("<p>Q&amp;A:&nbsp;&quot;Who&#39;s   the  treasurer?&quot;</p>")
	assert.Equal(t, `Q&A: "Who's the treasurer?"`, out)
}
