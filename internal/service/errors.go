package service

import "errors"

var (
	// ErrSyncCourses is returned when the course list could not be refreshed.
	ErrSyncCourses = errors.New("error syncing courses")

	// ErrSyncColors is returned when the custom colors could not be refreshed.
	ErrSyncColors = errors.New("error syncing custom colors")

	// ErrSyncCourseContent is returned when a course's quizzes or assignments
	// could not be refreshed.
	ErrSyncCourseContent = errors.New("error syncing course content")

	// ErrMissingCourseID is returned by SyncCourse for an empty course id.
	ErrMissingCourseID = errors.New("course id is required")

	// ErrReadingCache is returned when cached courses cannot be listed.
	ErrReadingCache = errors.New("error reading local cache")
)
