package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/calebmoss/gamedex/pkg/errors"
	"github.com/calebmoss/gamedex/pkg/logger"
	"github.com/calebmoss/gamedex/pkg/metrics"
)

const defaultUpstreamTimeout = 10 * time.Second

// Fetcher retrieves a raw JSON payload from the upstream catalog API.
type Fetcher interface {
	Fetch(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

// ClientConfig carries the upstream connection parameters.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin HTTP client for the upstream game-catalog API. The API key
// travels as a query parameter on every request; responses are treated as
// opaque JSON and never decoded here.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient validates the configuration and constructs a Client. Every
// request is bounded by the configured timeout so a stalled upstream cannot
// hold a handler indefinitely.
func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog: upstream base url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("catalog: upstream api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.WithModule("catalog"),
	}, nil
}

// Fetch performs a GET against the upstream API and returns the raw body.
// Transport failures and non-2xx statuses surface as ErrUpstream; the caller
// decides whether to cache (it never caches failures).
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.ErrUpstream.WithInternal(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		c.log.Warn("upstream request failed", zap.String("path", path), zap.Error(err))
		return nil, appErrors.ErrUpstream.WithInternal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, appErrors.ErrUpstream.WithInternal(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		c.log.Warn("upstream returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, appErrors.ErrUpstream.WithInternal(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return json.RawMessage(body), nil
}
