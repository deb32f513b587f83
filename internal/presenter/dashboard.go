package presenter

import (
	"context"
	"net/url"
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

// DefaultCourseColor is used for courses without a custom color.
const DefaultCourseColor = "#394b58"

// CourseCard is one course tile on the dashboard.
type CourseCard struct {
	CourseID string
	Name     string
	Code     string
	Color    color.Color
}

// DashboardPresenter lists the user's courses. Favorite courses are shown
// when there are any, otherwise every cached course.
type DashboardPresenter struct {
	db           *store.DB
	api          adapter.API
	view         DashboardView
	router       Router
	highContrast bool

	mu    sync.RWMutex
	cards []CourseCard
}

// NewDashboardPresenter creates the dashboard presenter. With highContrast
// card colors are darkened until they are readable on white.
func NewDashboardPresenter(db *store.DB, api adapter.API, view DashboardView, router Router, highContrast bool) *DashboardPresenter {
	return &DashboardPresenter{
		db:           db,
		api:          api,
		view:         view,
		router:       router,
		highContrast: highContrast,
	}
}

// ViewIsReady shows the cached cards, refreshes courses and colors and
// shows the result.
func (p *DashboardPresenter) ViewIsReady(ctx context.Context) {
	log := logger.FromContext(ctx)

	p.reload(ctx)
	p.view.Update(true)

	var errs error
	for _, uc := range []runner{
		usecase.NewGetCourses(p.db, p.api),
		usecase.NewGetCustomColors(p.db, p.api),
	} {
		if _, err := uc.Run(ctx); err != nil {
			log.Err(err).Str("func", "DashboardPresenter.ViewIsReady").Str("use_case", uc.Name()).Msg("failed to refresh")
			errs = multierr.Append(errs, err)
		}
	}

	p.reload(ctx)
	if errs != nil {
		p.view.ShowError(errs)
	}
	p.view.Update(false)
}

// Cards returns a copy of the current cards.
func (p *DashboardPresenter) Cards() []CourseCard {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]CourseCard(nil), p.cards...)
}

// Select opens the course.
func (p *DashboardPresenter) Select(card CourseCard) {
	p.router.Route(&url.URL{Path: "/courses/" + card.CourseID})
}

func (p *DashboardPresenter) reload(ctx context.Context) {
	log := logger.FromContext(ctx)

	courses, err := store.Query[models.Course](ctx, p.db, sq.Eq{"is_favorite": true}, "name", "row_id")
	if err == nil && len(courses) == 0 {
		courses, err = store.Query[models.Course](ctx, p.db, nil, "name", "row_id")
	}
	if err != nil {
		log.Err(err).Str("func", "DashboardPresenter.reload").Msg("failed to read cached courses")
		return
	}

	fallback, _ := color.Parse(DefaultCourseColor)
	cards := make([]CourseCard, 0, len(courses))
	for _, course := range courses {
		c := fallback
		if custom := courseColor(ctx, p.db, course); custom != nil {
			c = *custom
		}
		cards = append(cards, CourseCard{
			CourseID: course.ID,
			Name:     course.Name,
			Code:     course.CourseCode,
			Color:    c.EnsureContrast(color.White, p.highContrast),
		})
	}

	p.mu.Lock()
	p.cards = cards
	p.mu.Unlock()
}
