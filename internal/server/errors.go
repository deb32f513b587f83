// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when there is no listen address or no
// handler to serve.
var errNoServersAreCreated = errors.New("no servers are created: missing address or handler")
