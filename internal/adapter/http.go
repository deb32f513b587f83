package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/utils"
)

// APIClient is the resty-backed implementation of [API].
type APIClient struct {
	client  *utils.HTTPClient
	perPage int

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// Option customises an [APIClient].
type Option func(*APIClient)

// WithTransport replaces the HTTP transport, e.g. with an IPC forwarding
// transport during UI tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *APIClient) {
		c.client.SetTransport(rt)
	}
}

// NewAPIClient constructs an [APIClient]. It normalises and validates the
// base URL from cfg.HTTPAddress and configures the request timeout, the
// bearer token and the default page size.
//
// Returns an error wrapping [ErrInvalidAddress] if cfg.HTTPAddress is empty
// or cannot be parsed as a valid URL.
func NewAPIClient(cfg config.ClientAdapter, logger *logger.Logger, opts ...Option) (*APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient().WithRetries(cfg.Retries, 0)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	c := &APIClient{client: client, perPage: cfg.PerPage, logger: logger}
	c.SetToken(cfg.AccessToken)
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores the bearer token attached to every subsequent request.
func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently in use.
func (c *APIClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do implements [API]. A per_page parameter is added to relative requests
// that do not set one; absolute URLs (pagination links) are sent unchanged.
func (c *APIClient) Do(ctx context.Context, method, path string, query url.Values) (*Response, error) {
	log := logger.FromContext(ctx)

	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}

	if query == nil {
		query = url.Values{}
	}
	absolute := strings.Contains(path, "://")
	if !absolute && c.perPage > 0 && !query.Has("per_page") {
		query.Set("per_page", strconv.Itoa(c.perPage))
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Err(err).Str("func", "APIClient.Do").Str("method", method).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).
			Str("func", "APIClient.Do").
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("unsuccessful response")
		return nil, err
	}

	var requested string
	if raw := resp.RawResponse; raw != nil && raw.Request != nil {
		requested = raw.Request.URL.String()
	}

	return &Response{
		URL:        requested,
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
