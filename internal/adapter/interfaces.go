// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer abstraction for talking to the
// remote LMS REST API.
//
// A remote call is described by a [Request], which names the HTTP method,
// path and query, and decodes the response body into its typed result. [Fetch]
// issues one request; [FetchAll] follows Link rel="next" pagination and
// concatenates every page. Both go through an [API], whose HTTP
// implementation is [APIClient].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"net/http"
	"net/url"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// API performs a single HTTP exchange with the LMS. Non-2xx statuses are
// returned as errors wrapping the sentinels of this package.
type API interface {
	// Do sends method to path with query. path is either relative to the
	// configured base URL or an absolute URL (as found in pagination links).
	Do(ctx context.Context, method, path string, query url.Values) (*Response, error)
}

// Response is a successful HTTP response.
type Response struct {
	// URL is the absolute URL that was requested, query included. It is
	// empty when the API does not know it.
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Request describes one typed API call whose decoded result is R.
type Request[R any] interface {
	Method() string
	Path() string
	Query() url.Values
	Decode(body []byte) (R, error)
}
