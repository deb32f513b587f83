package usecase

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

// GetCourses mirrors the user's course list into every cached course.
type GetCourses = CollectionUseCase[models.APICourse, models.Course, *models.Course]

// NewGetCourses builds the courses use case.
func NewGetCourses(storage Storage, api adapter.API) *GetCourses {
	fetch := func(ctx context.Context) ([]models.APICourse, error) {
		return adapter.FetchAll[models.APICourse](ctx, api, adapter.GetCoursesRequest{})
	}
	return NewCollectionUseCase[models.APICourse, models.Course, *models.Course]("courses", storage, fetch, CoursesReconciler{})
}

// CoursesReconciler owns every course row.
type CoursesReconciler struct{}

func (CoursesReconciler) Scope() sq.Sqlizer {
	return nil
}

func (CoursesReconciler) ItemPredicate(item models.APICourse) sq.Sqlizer {
	return sq.Eq{"id": item.ID.String()}
}

func (CoursesReconciler) UpdateModel(_ context.Context, model *models.Course, item models.APICourse, _ *store.Tx) error {
	if item.ID == "" {
		return ErrMissingID
	}

	model.ID = item.ID.String()
	model.Name = item.Name
	model.CourseCode = item.CourseCode
	model.IsFavorite = item.IsFavorite != nil && *item.IsFavorite
	model.DefaultView = item.DefaultView
	model.ImageDownloadURL = item.ImageDownloadURL
	return nil
}

// NewGetCourse builds a use case refreshing the single course courseID.
// A course that no longer exists remotely fails the fetch and the cached row
// is kept.
func NewGetCourse(storage Storage, api adapter.API, courseID string) *GetCourses {
	fetch := func(ctx context.Context) ([]models.APICourse, error) {
		course, err := adapter.Fetch[models.APICourse](ctx, api, adapter.GetCourseRequest{CourseID: courseID})
		if err != nil {
			return nil, err
		}
		return []models.APICourse{course}, nil
	}
	return NewCollectionUseCase[models.APICourse, models.Course, *models.Course](
		"course", storage, fetch, CourseReconciler{CourseID: courseID},
	)
}

// CourseReconciler owns the one course row of CourseID.
type CourseReconciler struct {
	CoursesReconciler
	CourseID string
}

func (r CourseReconciler) Scope() sq.Sqlizer {
	return sq.Eq{"id": r.CourseID}
}
