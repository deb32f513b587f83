// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-lms-sync/internal/app"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
)

// notServed answers requests for paths or methods the mock API has no
// fixtures for. Wrong methods get 404 like unknown paths, so the existence
// of a route is not revealed.
//
// The response carries [fixtures.MissHeader] so a UI-test driver can tell a
// missing fixture apart from a fixture that is itself a 404 and let the app
// send the request over the network instead.
func notServed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(fixtures.MissHeader, "1")
	writeJSON(w, r, http.StatusNotFound, errorBody{Errors: []errorMessage{{
		Message: app.MsgResourceNotFound,
	}}})
}
