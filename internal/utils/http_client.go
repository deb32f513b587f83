// Package utils holds small helpers shared by the client and the mock API:
// the preconfigured HTTP client, JSON response writing and id generation.
package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultRetryWait = 500 * time.Millisecond

// HTTPClient wraps [resty.Client] so application defaults can be layered on
// top while all resty methods stay available.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with resty defaults and no
// retries.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// WithRetries retries failed requests up to count times with exponential
// backoff starting at wait. Transport errors, 429 and 5xx responses are
// retried; other responses are returned as is. A non-positive count leaves
// the client unchanged.
func (c *HTTPClient) WithRetries(count int, wait time.Duration) *HTTPClient {
	if count <= 0 {
		return c
	}
	if wait <= 0 {
		wait = defaultRetryWait
	}

	c.SetRetryCount(count).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(8 * wait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests ||
				resp.StatusCode() >= http.StatusInternalServerError
		})
	return c
}
