// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package presenter

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/multierr"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/color"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/internal/usecase"
	"github.com/MKhiriev/go-lms-sync/models"
)

type runner interface {
	Name() string
	Run(ctx context.Context) (usecase.Result, error)
}

// otherSectionOrder is the position of quizzes whose type is unknown.
const otherSectionOrder = 4

// QuizSection is a group of quizzes sharing a raw quiz type.
type QuizSection struct {
	// Name is the raw quiz type, e.g. "practice_quiz".
	Name    string
	Quizzes []*models.Quiz
}

// QuizListPresenter lists the quizzes of one course grouped by quiz type.
type QuizListPresenter struct {
	db       *store.DB
	api      adapter.API
	view     QuizListView
	router   Router
	courseID string

	mu       sync.RWMutex
	sections []QuizSection
}

// NewQuizListPresenter creates a presenter for the quizzes of courseID.
func NewQuizListPresenter(db *store.DB, api adapter.API, view QuizListView, router Router, courseID string) *QuizListPresenter {
	return &QuizListPresenter{
		db:       db,
		api:      api,
		view:     view,
		router:   router,
		courseID: courseID,
	}
}

// ViewIsReady shows the cached course and quizzes, refreshes the course,
// colors and quizzes from the API, and shows the result. Refresh failures
// are reported through [QuizListView.ShowError]; cached quizzes stay listed.
func (p *QuizListPresenter) ViewIsReady(ctx context.Context) {
	log := logger.FromContext(ctx)

	p.reload(ctx)
	p.view.Update(true)

	var errs error
	for _, uc := range []runner{
		usecase.NewGetCourse(p.db, p.api, p.courseID),
		usecase.NewGetCustomColors(p.db, p.api),
		usecase.NewGetQuizzes(p.db, p.api, p.courseID),
	} {
		if _, err := uc.Run(ctx); err != nil {
			log.Err(err).
				Str("func", "QuizListPresenter.ViewIsReady").
				Str("course_id", p.courseID).
				Str("use_case", uc.Name()).
				Msg("failed to refresh")
			errs = multierr.Append(errs, err)
		}
	}

	p.reload(ctx)
	if errs != nil {
		p.view.ShowError(errs)
	}
	p.view.Update(false)
}

// Quiz returns the quiz at path or nil when path is out of range.
func (p *QuizListPresenter) Quiz(path IndexPath) *models.Quiz {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if path.Section < 0 || path.Section >= len(p.sections) {
		return nil
	}
	quizzes := p.sections[path.Section].Quizzes
	if path.Row < 0 || path.Row >= len(quizzes) {
		return nil
	}
	return quizzes[path.Row]
}

// NumberOfSections returns the number of non-empty sections.
func (p *QuizListPresenter) NumberOfSections() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sections)
}

// Section returns section i or nil when i is out of range.
func (p *QuizListPresenter) Section(i int) *QuizSection {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i < 0 || i >= len(p.sections) {
		return nil
	}
	section := p.sections[i]
	return &section
}

// SectionTitle returns the header of section i. It is empty for quizzes of
// an unknown type and for out of range sections.
func (p *QuizListPresenter) SectionTitle(i int) string {
	section := p.Section(i)
	if section == nil {
		return ""
	}

	switch models.QuizType(section.Name) {
	case models.QuizTypeAssignment:
		return "Assignments"
	case models.QuizTypePracticeQuiz:
		return "Practice Quizzes"
	case models.QuizTypeGradedSurvey:
		return "Graded Surveys"
	case models.QuizTypeSurvey:
		return "Surveys"
	default:
		return ""
	}
}

// SectionOrder returns the position of the section holding quizzes of the
// raw quiz type.
func (p *QuizListPresenter) SectionOrder(quizType string) int {
	switch models.QuizType(quizType) {
	case models.QuizTypeAssignment:
		return 0
	case models.QuizTypePracticeQuiz:
		return 1
	case models.QuizTypeGradedSurvey:
		return 2
	case models.QuizTypeSurvey:
		return 3
	default:
		return otherSectionOrder
	}
}

// Select opens the quiz details.
func (p *QuizListPresenter) Select(quiz *models.Quiz) error {
	to, err := url.Parse(quiz.HTMLURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	p.router.Route(to, RouteDetail, RouteEmbedInNav)
	return nil
}

func (p *QuizListPresenter) reload(ctx context.Context) {
	log := logger.FromContext(ctx)

	course, err := store.First[models.Course](ctx, p.db, sq.Eq{"id": p.courseID})
	if err != nil {
		log.Err(err).Str("func", "QuizListPresenter.reload").Str("course_id", p.courseID).Msg("failed to read cached course")
	}
	if course != nil {
		p.view.UpdateNavBar(course.Name, courseColor(ctx, p.db, course))
	}

	quizzes, err := store.Query[models.Quiz](ctx, p.db, sq.Eq{"course_id": p.courseID}, "title", "row_id")
	if err != nil {
		log.Err(err).Str("func", "QuizListPresenter.reload").Str("course_id", p.courseID).Msg("failed to read cached quizzes")
		return
	}

	sections := p.group(quizzes)

	p.mu.Lock()
	p.sections = sections
	p.mu.Unlock()
}

func (p *QuizListPresenter) group(quizzes []*models.Quiz) []QuizSection {
	index := make(map[string]int)
	var sections []QuizSection
	for _, quiz := range quizzes {
		i, ok := index[quiz.QuizTypeRaw]
		if !ok {
			i = len(sections)
			index[quiz.QuizTypeRaw] = i
			sections = append(sections, QuizSection{Name: quiz.QuizTypeRaw})
		}
		sections[i].Quizzes = append(sections[i].Quizzes, quiz)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		oi, oj := p.SectionOrder(sections[i].Name), p.SectionOrder(sections[j].Name)
		if oi != oj {
			return oi < oj
		}
		return sections[i].Name < sections[j].Name
	})
	return sections
}

// courseColor returns the custom color of course, or nil when none is set
// or the stored value cannot be parsed.
func courseColor(ctx context.Context, db *store.DB, course *models.Course) *color.Color {
	log := logger.FromContext(ctx)

	row, err := store.First[models.Color](ctx, db, sq.Eq{"canvas_context_id": course.CanvasContextID()})
	if err != nil || row == nil {
		return nil
	}

	c, err := color.Parse(row.Hex)
	if err != nil {
		log.Warn().Err(err).Str("func", "courseColor").Str("hex", row.Hex).Msg("cached color is invalid")
		return nil
	}
	return &c
}
