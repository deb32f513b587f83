// Package config provides configuration loading, merging, and validation
// facilities for the LMS sync binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags (or CLI overrides supplied by the caller)
//  3. JSON config file
//
// The entry points are [GetClientConfig] for the sync client,
// [GetDriverConfig] for the UI-test driver and [GetMockAPIConfig] for the
// fixture-backed mock API server.
package config
