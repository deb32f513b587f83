// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService refreshes the local cache from the LMS API.
type SyncService interface {
	// FullSync refreshes courses and custom colors, then the quizzes and
	// assignments of every cached course. Item-level failures are collected
	// in the report; failures of whole passes are combined into the error.
	// A failed pass does not stop the remaining ones.
	FullSync(ctx context.Context) (SyncReport, error)

	// SyncCourse refreshes the quizzes and assignments of one course.
	SyncCourse(ctx context.Context, courseID string) (SyncReport, error)
}

// SyncJob runs [SyncService.FullSync] periodically in the background.
type SyncJob interface {
	// Start launches the background loop, stopping a previous one first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit. Safe to call when the
	// job is not running.
	Stop()
}

// SyncReport summarises a sync run.
type SyncReport struct {
	// Passes is the number of reconciliation passes that were committed.
	Passes int

	// ItemErrors collects the per-item errors of every pass.
	ItemErrors []error
}
