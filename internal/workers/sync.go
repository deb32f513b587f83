package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-lms-sync/internal/service"
)

// SyncWorker runs the periodic background sync.
type SyncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

func NewSyncWorker(job service.SyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{job: job, interval: interval}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w *SyncWorker) Stop() {
	w.job.Stop()
}
