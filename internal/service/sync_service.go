package service

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/multierr"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/internal/usecase"
	"github.com/MKhiriev/go-lms-sync/models"
)

const (
	// maxPassAttempts bounds how often a pass is run when the local store
	// reports a transient lock.
	maxPassAttempts = 3
	passRetryDelay  = 200 * time.Millisecond
)

type runner interface {
	Name() string
	Run(ctx context.Context) (usecase.Result, error)
}

type syncService struct {
	db     *store.DB
	api    adapter.API
	logger *logger.Logger
}

// NewSyncService creates the [SyncService] reconciling db with api.
func NewSyncService(db *store.DB, api adapter.API, logger *logger.Logger) SyncService {
	return &syncService{db: db, api: api, logger: logger}
}

func (s *syncService) FullSync(ctx context.Context) (SyncReport, error) {
	log := logger.FromContext(ctx)

	var (
		report SyncReport
		errs   error
	)

	if err := s.run(ctx, &report, usecase.NewGetCourses(s.db, s.api)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrSyncCourses, err))
	}
	if err := s.run(ctx, &report, usecase.NewGetCustomColors(s.db, s.api)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrSyncColors, err))
	}

	// a remote course without an id leaves a row with an empty one behind
	courses, err := store.Query[models.Course](ctx, s.db, sq.NotEq{"id": ""})
	if err != nil {
		log.Err(err).Str("func", "syncService.FullSync").Msg("failed to list cached courses")
		return report, multierr.Append(errs, fmt.Errorf("%w: %w", ErrReadingCache, err))
	}

	for _, course := range courses {
		courseReport, err := s.SyncCourse(ctx, course.ID)
		report.Passes += courseReport.Passes
		report.ItemErrors = append(report.ItemErrors, courseReport.ItemErrors...)
		errs = multierr.Append(errs, err)
	}

	log.Info().
		Str("func", "syncService.FullSync").
		Int("courses", len(courses)).
		Int("passes", report.Passes).
		Int("item_errors", len(report.ItemErrors)).
		Int("failed_passes", len(multierr.Errors(errs))).
		Msg("full sync finished")

	return report, errs
}

func (s *syncService) SyncCourse(ctx context.Context, courseID string) (SyncReport, error) {
	if courseID == "" {
		return SyncReport{}, ErrMissingCourseID
	}

	var (
		report SyncReport
		errs   error
	)

	for _, uc := range []runner{
		usecase.NewGetQuizzes(s.db, s.api, courseID),
		usecase.NewGetAssignments(s.db, s.api, courseID),
	} {
		if err := s.run(ctx, &report, uc); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: course %s: %w", ErrSyncCourseContent, courseID, err))
		}
	}

	return report, errs
}

func (s *syncService) run(ctx context.Context, report *SyncReport, uc runner) error {
	log := logger.FromContext(ctx)

	result, err := uc.Run(ctx)
	for attempt := 1; attempt < maxPassAttempts && store.IsRetryable(err); attempt++ {
		log.Warn().Err(err).Str("func", "syncService.run").Str("use_case", uc.Name()).Int("attempt", attempt).Msg("local store is busy, retrying pass")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(passRetryDelay * time.Duration(attempt)):
		}
		result, err = uc.Run(ctx)
	}
	report.ItemErrors = append(report.ItemErrors, result.ItemErrors...)
	if err != nil {
		log.Err(err).Str("func", "syncService.run").Str("use_case", uc.Name()).Msg("sync pass failed")
		return err
	}

	report.Passes++
	for _, itemErr := range result.ItemErrors {
		log.Warn().Err(itemErr).Str("func", "syncService.run").Str("use_case", uc.Name()).Msg("item was not synced")
	}
	return nil
}
