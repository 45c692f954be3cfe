package ecfr

import (
	"errors"
	"fmt"
	"net/http"
)

// eCFR-specific errors.
var (
	// ErrUpstream indicates the API answered with an error payload.
	ErrUpstream = errors.New("ecfr: upstream error")

	// ErrMalformedResponse indicates the response body was not the expected JSON object.
	ErrMalformedResponse = errors.New("ecfr: malformed response")
)

// APIError represents a non-200 eCFR API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ecfr: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the API rejected the request for exceeding its rate limit.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
