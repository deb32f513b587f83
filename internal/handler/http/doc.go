// Package http serves a mock LMS REST API backed by a fixture set.
//
// It answers the course, assignment, quiz and custom color endpoints the sync
// client uses, with page-number pagination advertised through Link headers.
// Request tracing, access logging, optional bearer-token checks and response
// compression are handled by middleware before requests reach the endpoint
// handlers. The same router answers requests forwarded by the UI-test
// driver.
package http
