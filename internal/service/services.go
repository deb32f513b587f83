package service

import (
	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/store"
)

// Services groups the client services.
type Services struct {
	SyncService SyncService
	SyncJob     SyncJob
}

func NewServices(db *store.DB, api adapter.API, logger *logger.Logger) *Services {
	syncSvc := NewSyncService(db, api, logger)

	return &Services{
		SyncService: syncSvc,
		SyncJob:     NewSyncJob(syncSvc),
	}
}
