package http

import (
	"github.com/MKhiriev/go-lms-sync/internal/config"
	"github.com/MKhiriev/go-lms-sync/internal/fixtures"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/utils"
	"github.com/MKhiriev/go-lms-sync/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type Handler struct {
	fixtures    *fixtures.Set
	perPage     int
	accessToken string
	buildInfo   models.AppBuildInfo
	traceIDs    *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(set *fixtures.Set, cfg config.MockAPIConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	logger.Info().Int("courses", len(set.Courses)).Int("per_page", perPage).Msg("mock api handler created")
	return &Handler{
		fixtures:    set,
		perPage:     perPage,
		accessToken: cfg.AccessToken,
		buildInfo:   buildInfo,
		traceIDs:    utils.NewUUIDGenerator(),
		logger:      logger,
	}
}
