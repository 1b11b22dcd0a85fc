// Package resilience provides the error taxonomy for the screening pipeline
// and helpers for classifying provider failures.
package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
)

// Sentinel errors for the pipeline. Branch failures are matched against
// these with errors.Is and surfaced as structured result fields, never as
// process-fatal conditions.
var (
	// ErrExternalService marks a search/LLM/page-fetch provider failure.
	// Recoverable: the owning branch degrades to a partial result.
	ErrExternalService = eris.New("external service error")

	// ErrResolution marks a total failure of the LLM-assisted executive
	// resolution. Recoverable: the treasurer disambiguator result is
	// independent and remains usable.
	ErrResolution = eris.New("executive resolution failed")

	// ErrNoDomain means no email domain could be discovered. Surfaced as an
	// explicit status, not a thrown failure.
	ErrNoDomain = eris.New("no email domain found")

	// ErrNoFormat means no email format could be determined, so no address
	// is constructed. Surfaced as an explicit status.
	ErrNoFormat = eris.New("no email format found")
)

// TransientError wraps an error that is safe to retry (429, 5xx, network
// timeout).
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps an error as transient with an optional HTTP status
// code.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

// IsTransient returns true if the error (or any error in its chain) is a
// TransientError, or if it matches common transient error patterns (network
// timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
		"transport connection broken",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue that is safe to retry.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
