package ipc

import (
	"os"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

type options struct {
	socketDir  string
	logger     *logger.Logger
	dispatcher Dispatcher
	fatal      func(err error)
}

// Option configures a [Server] or a [Client]. Server-only options are
// ignored by clients.
type Option func(*options)

// WithSocketDir sets the directory holding channel sockets. The default is
// [os.TempDir].
func WithSocketDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.socketDir = dir
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDispatcher runs every handler call through d instead of the serving
// goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithFatalHandler replaces what a server does with a malformed request.
// By default the request is logged at fatal level and the process exits.
func WithFatalHandler(fatal func(err error)) Option {
	return func(o *options) {
		o.fatal = fatal
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		socketDir: os.TempDir(),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
