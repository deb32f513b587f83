package handler

import (
	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
	"github.com/MKhiriev/go-lms-sync/internal/handler/http"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/models"
)

// Handlers groups the two front ends of a fixture set: the mock LMS API and
// the UI-test driver handler that answers forwarded requests through the
// same router.
type Handlers struct {
	HTTP   *http.Handler
	Driver *fixtures.DriverHandler
}

func NewHandlers(set *fixtures.Set, cfg config.MockAPIConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if set == nil {
		return nil, errNoFixturesAreLoaded
	}

	api := http.NewHandler(set, cfg, buildInfo, logger)

	return &Handlers{
		HTTP:   api,
		Driver: fixtures.NewDriverHandler(api.Init(), logger),
	}, nil
}
