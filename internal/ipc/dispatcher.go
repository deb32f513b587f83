package ipc

import "context"

// Dispatcher runs fn on a loop owned by the caller and returns once fn has
// finished, or with ctx's error when fn could not be scheduled in time.
type Dispatcher interface {
	Dispatch(ctx context.Context, fn func()) error
}

// MainQueue is a [Dispatcher] whose calls run on the goroutine executing
// [MainQueue.Run].
type MainQueue struct {
	calls chan func()
}

// NewMainQueue creates an idle queue. Nothing is executed until Run is
// called.
func NewMainQueue() *MainQueue {
	return &MainQueue{calls: make(chan func())}
}

// Run executes queued calls until ctx is done.
func (q *MainQueue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-q.calls:
			fn()
		}
	}
}

func (q *MainQueue) Dispatch(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	call := func() {
		defer close(done)
		fn()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.calls <- call:
	}

	<-done
	return nil
}
