// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the mock LMS API handlers.
//
// The wording follows the LMS so that clients parsing error bodies see the
// same text against the mock as against a real instance.
package app

const (
	// MsgInvalidAccessToken is returned for every authentication failure.
	// The LMS does not say whether the header was missing or the token
	// was wrong.
	MsgInvalidAccessToken = "Invalid access token."

	// MsgResourceNotFound is returned for paths the mock has no fixtures
	// for.
	MsgResourceNotFound = "The specified resource does not exist."

	// MsgInternalServerError replaces the message of unexpected failures so
	// internal details do not leak into response bodies.
	MsgInternalServerError = "An error occurred."
)
