// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is a runnable client process.
type Client interface {
	// Run blocks until the process is asked to stop and everything it
	// started has shut down.
	Run() error
}

var _ Client = (*App)(nil)
