package page

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screen-cli/pkg/jina"
)

type stubFetcher struct {
	name     string
	supports bool
	result   *Result
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*Result, error) {
	s.calls++
	return s.result, s.err
}
func (s *stubFetcher) Name() string           { return s.name }
func (s *stubFetcher) Supports(_ string) bool { return s.supports }

func TestChainFirstSuccessWins(t *testing.T) {
	first := &stubFetcher{name: "render", supports: true, result: &Result{Text: "rendered", Source: "render"}}
	second := &stubFetcher{name: "static", supports: true, result: &Result{Text: "static", Source: "static"}}

	c := NewChain(first, second)
	result, err := c.Fetch(context.Background(), "https://acme.com/leadership")
	require.NoError(t, err)
	assert.Equal(t, "rendered", result.Text)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &stubFetcher{name: "render", supports: true, err: eris.New("render: blocked")}
	second := &stubFetcher{name: "static", supports: true, result: &Result{Text: "static text", Source: "static"}}

	c := NewChain(first, second)
	result, err := c.Fetch(context.Background(), "https://acme.com/leadership")
	require.NoError(t, err)
	assert.Equal(t, "static", result.Source)
}

func TestChainSkipsUnsupported(t *testing.T) {
	first := &stubFetcher{name: "render", supports: false}
	second := &stubFetcher{name: "static", supports: true, result: &Result{Text: "x"}}

	c := NewChain(first, second)
	_, err := c.Fetch(context.Background(), "https://acme.com")
	require.NoError(t, err)
	assert.Equal(t, 0, first.calls)
}

func TestChainAllFail(t *testing.T) {
	first := &stubFetcher{name: "render", supports: true, err: eris.New("nope")}
	second := &stubFetcher{name: "static", supports: true, err: eris.New("also nope")}

	c := NewChain(first, second)
	_, err := c.Fetch(context.Background(), "https://acme.com")
	assert.Error(t, err)
}

func TestExtractTextDegradesToEmpty(t *testing.T) {
	failing := &stubFetcher{name: "static", supports: true, err: eris.New("down")}

	c := NewChain(failing)
	assert.Equal(t, "", c.ExtractText(context.Background(), "https://acme.com"))
	assert.Equal(t, "", c.ExtractText(context.Background(), ""))
}

func TestNeedsFallback(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	assert.True(t, needsFallback(nil))
	assert.True(t, needsFallback(&jina.ReadResponse{Code: 451}))
	assert.True(t, needsFallback(&jina.ReadResponse{Code: 200, Data: jina.ReadData{Content: "thin"}}))
	assert.True(t, needsFallback(&jina.ReadResponse{Code: 200, Data: jina.ReadData{
		Content: "Just a moment... " + string(long[:100]),
	}}))
	assert.False(t, needsFallback(&jina.ReadResponse{Code: 200, Data: jina.ReadData{Content: string(long)}}))
}
