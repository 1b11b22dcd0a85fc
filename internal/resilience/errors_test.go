package resilience

import (
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTransientNilAndPlainErrors(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(errors.New("parse failure")))
	assert.False(t, IsTransient(eris.Wrap(ErrExternalService, "status 401")))
}

func TestIsTransientRecognizesTransientError(t *testing.T) {
	err := NewTransientError(eris.New("status 503"), 503)
	assert.True(t, IsTransient(err))

	var te *TransientError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 503, te.StatusCode)
	assert.Equal(t, "status 503", err.Error())
}

func TestIsTransientMatchesNetworkPatterns(t *testing.T) {
	for _, msg := range []string{
		"read tcp 10.0.0.1:443: i/o timeout",
		"dial tcp: connection reset by peer",
		"lookup serpapi.com: no such host",
	} {
		assert.True(t, IsTransient(errors.New(msg)), msg)
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), code)
	}
	for _, code := range []int{200, 400, 401, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), code)
	}
}
