package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-lms-sync/internal/ipc"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

// QueueWorker drains an [ipc.MainQueue] on its own goroutine. Everything
// dispatched to the queue runs there one call at a time.
type QueueWorker struct {
	queue *ipc.MainQueue

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewQueueWorker(queue *ipc.MainQueue) *QueueWorker {
	return &QueueWorker{queue: queue}
}

func (w *QueueWorker) Run(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		_ = w.queue.Run(ctx)
	}()
}

func (w *QueueWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// BridgeWorker serves an IPC channel.
type BridgeWorker struct {
	server *ipc.Server
	logger *logger.Logger
}

func NewBridgeWorker(server *ipc.Server, logger *logger.Logger) *BridgeWorker {
	return &BridgeWorker{server: server, logger: logger}
}

func (w *BridgeWorker) Run(context.Context) {
	w.logger.Info().Str("channel", w.server.Name()).Msg("serving IPC channel")
	w.server.Start()
}

func (w *BridgeWorker) Stop() {
	if err := w.server.Close(); err != nil {
		w.logger.Err(err).Str("func", "BridgeWorker.Stop").Str("channel", w.server.Name()).Msg("failed to close IPC channel")
	}
}
