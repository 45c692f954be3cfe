package ecfr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

const (
	// DefaultCatalogTimeout bounds the agency listing request.
	DefaultCatalogTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 512
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	// BaseURL is the API root, e.g. https://www.ecfr.gov/api.
	BaseURL string

	// Timeout bounds each structure request.
	Timeout time.Duration

	// CatalogTimeout bounds the agency listing request.
	CatalogTimeout time.Duration

	// RatePerSecond throttles all requests.
	RatePerSecond float64

	// HTTPClient overrides the transport. Its own Timeout is left alone.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.SourceSettings) Config {
	return Config{
		BaseURL:       s.BaseURL,
		Timeout:       s.Timeout,
		RatePerSecond: s.RatePerSecond,
	}
}

// Client is an eCFR API client.
type Client struct {
	baseURL        string
	timeout        time.Duration
	catalogTimeout time.Duration
	http           *http.Client
	limiter        *rate.Limiter
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultECFRBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultECFRTimeout
	}
	if cfg.CatalogTimeout <= 0 {
		cfg.CatalogTimeout = DefaultCatalogTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = domain.DefaultECFRRatePerSecond
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        cfg.Timeout,
		catalogTimeout: cfg.CatalogTimeout,
		http:           cfg.HTTPClient,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
	}
}

// get issues a throttled GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
			URL:        url,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
