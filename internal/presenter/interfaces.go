package presenter

import (
	"net/url"

	"github.com/MKhiriev/go-lms-sync/internal/color"
)

// RouteOption tells the router how to present a destination.
type RouteOption string

const (
	RouteDetail     RouteOption = "detail"
	RouteEmbedInNav RouteOption = "embedInNav"
)

// Router opens a destination by URL.
type Router interface {
	Route(to *url.URL, options ...RouteOption)
}

// QuizListView is the screen driven by [QuizListPresenter].
type QuizListView interface {
	// Update is called when the sections changed. isLoading reports whether a
	// refresh is still in flight.
	Update(isLoading bool)
	ShowError(err error)
	// UpdateNavBar shows the course name and, when one is set, its color.
	UpdateNavBar(subtitle string, color *color.Color)
}

// DashboardView is the screen driven by [DashboardPresenter].
type DashboardView interface {
	Update(isLoading bool)
	ShowError(err error)
}

// IndexPath addresses a row inside a section.
type IndexPath struct {
	Section int
	Row     int
}
