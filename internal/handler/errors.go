// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoFixturesAreLoaded is returned by NewHandlers when it is given no
// fixture set. Both handlers answer from fixtures only, so this is a fatal
// misconfiguration.
var errNoFixturesAreLoaded = errors.New("no fixtures are loaded")
