package usecase

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

// GetAssignments mirrors the assignments of one course.
type GetAssignments = CollectionUseCase[models.APIAssignment, models.Assignment, *models.Assignment]

// NewGetAssignments builds the assignments use case for courseID.
func NewGetAssignments(storage Storage, api adapter.API, courseID string) *GetAssignments {
	fetch := func(ctx context.Context) ([]models.APIAssignment, error) {
		return adapter.FetchAll[models.APIAssignment](ctx, api, adapter.GetAssignmentsRequest{CourseID: courseID})
	}
	return NewCollectionUseCase[models.APIAssignment, models.Assignment, *models.Assignment](
		"assignments", storage, fetch, AssignmentsReconciler{CourseID: courseID},
	)
}

// AssignmentsReconciler owns the assignment rows of CourseID.
type AssignmentsReconciler struct {
	CourseID string
}

func (r AssignmentsReconciler) Scope() sq.Sqlizer {
	return sq.Eq{"course_id": r.CourseID}
}

func (r AssignmentsReconciler) ItemPredicate(item models.APIAssignment) sq.Sqlizer {
	return sq.Eq{"course_id": r.CourseID, "id": item.ID.String()}
}

func (r AssignmentsReconciler) UpdateModel(_ context.Context, model *models.Assignment, item models.APIAssignment, _ *store.Tx) error {
	model.CourseID = r.CourseID
	if item.ID == "" {
		return ErrMissingID
	}

	model.ID = item.ID.String()
	model.Name = item.Name
	model.Details = item.Description
	model.PointsPossible = item.PointsPossible
	model.DueAt = item.DueAt
	model.HTMLURL = item.HTMLURL
	model.Position = item.Position
	model.GradingType = item.GradingType
	model.QuizID = nil
	if item.QuizID != nil {
		quizID := item.QuizID.String()
		model.QuizID = &quizID
	}
	return nil
}
