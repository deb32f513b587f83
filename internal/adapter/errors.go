package adapter

import "errors"

// Sentinel errors mapped from HTTP statuses by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected http status")
)

var (
	// ErrInvalidAddress is returned by [NewAPIClient] for an unusable base URL.
	ErrInvalidAddress = errors.New("invalid adapter http address")

	// ErrDecodingResponse is returned when a response body does not match the
	// request's result type.
	ErrDecodingResponse = errors.New("error decoding response")

	// ErrPaginationLoop is returned by [FetchAll] when a next link points to
	// a page that was already visited.
	ErrPaginationLoop = errors.New("pagination link loop")
)
