// Package server runs the mock LMS API over HTTP.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
