package usecase

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

// GetQuizzes mirrors the quizzes of one course.
type GetQuizzes = CollectionUseCase[models.APIQuiz, models.Quiz, *models.Quiz]

// NewGetQuizzes builds the quizzes use case for courseID.
func NewGetQuizzes(storage Storage, api adapter.API, courseID string) *GetQuizzes {
	fetch := func(ctx context.Context) ([]models.APIQuiz, error) {
		return adapter.FetchAll[models.APIQuiz](ctx, api, adapter.GetQuizzesRequest{CourseID: courseID})
	}
	return NewCollectionUseCase[models.APIQuiz, models.Quiz, *models.Quiz](
		"quizzes", storage, fetch, QuizzesReconciler{CourseID: courseID},
	)
}

// QuizzesReconciler owns the quiz rows of CourseID.
type QuizzesReconciler struct {
	CourseID string
}

func (r QuizzesReconciler) Scope() sq.Sqlizer {
	return sq.Eq{"course_id": r.CourseID}
}

func (r QuizzesReconciler) ItemPredicate(item models.APIQuiz) sq.Sqlizer {
	return sq.Eq{"course_id": r.CourseID, "id": item.ID.String()}
}

func (r QuizzesReconciler) UpdateModel(_ context.Context, model *models.Quiz, item models.APIQuiz, _ *store.Tx) error {
	model.CourseID = r.CourseID
	if item.ID == "" {
		return ErrMissingID
	}

	model.ID = item.ID.String()
	model.Title = item.Title
	model.HTMLURL = item.HTMLURL
	model.QuizTypeRaw = string(item.QuizType)
	model.PointsPossible = item.PointsPossible
	model.QuestionCount = item.QuestionCount
	model.DueAt = item.DueAt
	model.LockAt = item.LockAt
	return nil
}
