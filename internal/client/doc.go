// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires the local cache, the sync services and, in debug builds, the
// UI-test bridge into a single process lifecycle: an initial full sync,
// background workers, and graceful shutdown on a stop signal.
package client
