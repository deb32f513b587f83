// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-lms-sync/internal/app"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/utils"
)

// Sentinel errors used by the auth middleware when checking the
// "Authorization" HTTP header.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")
	ErrInvalidToken               = errors.New("invalid access token")
	ErrInvalidPage                = errors.New("invalid page parameter")
)

var errorStatusMap = map[error]int{
	fixtures.ErrCourseNotFound:    http.StatusNotFound,
	ErrInvalidPage:                http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
	ErrInvalidToken:               http.StatusUnauthorized,
}

// errorBody is the LMS error envelope.
type errorBody struct {
	Errors []errorMessage `json:"errors"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func statusFor(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	switch {
	case status == http.StatusUnauthorized:
		message = app.MsgInvalidAccessToken
	case status >= http.StatusInternalServerError:
		logger.FromRequest(r).Err(err).Str("func", "writeError").Msg("request failed")
		message = app.MsgInternalServerError
	}
	writeJSON(w, r, status, errorBody{Errors: []errorMessage{{Message: message}}})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := utils.WriteJSON(w, status, v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("failed to write response")
	}
}
