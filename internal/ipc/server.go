// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

const (
	serviceName   = "lms.ipc.Bridge"
	requestMethod = "/" + serviceName + "/Request"
)

// Handler answers one request payload. A nil reply means "no response". A
// non-nil error means the payload could not be understood and is treated as
// fatal for the server.
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

type bridgeService interface {
	handle(ctx context.Context, in *frame) (*frame, error)
}

var bridgeServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*bridgeService)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Request",
			Handler:    requestHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ipc",
}

func requestHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(frame)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(bridgeService).handle(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: requestMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(bridgeService).handle(ctx, req.(*frame))
	}
	return interceptor(ctx, in, info, handler)
}

// Server listens on one channel and answers requests with its [Handler].
// It owns its socket; [Server.Close] removes it.
type Server struct {
	name    string
	path    string
	handler Handler

	server   *grpc.Server
	listener net.Listener
	opts     *options
	logger   *logger.Logger

	// ctx bounds handler calls; it is cancelled by Close, not by the
	// callers' deadlines.
	ctx    context.Context
	cancel context.CancelFunc

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// NewServer binds the channel name. Serving starts with [Server.Start]. A
// stale socket left by a previous run is replaced.
func NewServer(name string, handler Handler, opts ...Option) (*Server, error) {
	if !Enabled {
		return nil, ErrDisabled
	}

	o := newOptions(opts)
	path := SocketPath(o.socketDir, name)
	log := &logger.Logger{Logger: o.logger.With().Str("channel", name).Logger()}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket %s: %w", path, err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("couldn't create channel %s: %v", name, err)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		ctx:      ctx,
		cancel:   cancel,
		name:     name,
		path:     path,
		handler:  handler,
		listener: listener,
		opts:     o,
		logger:   log,
		done:     make(chan struct{}),
	}
	s.server = grpc.NewServer(grpc.ForceServerCodec(rawCodec{}))
	s.server.RegisterService(&bridgeServiceDesc, s)

	return s, nil
}

// Name returns the channel name.
func (s *Server) Name() string {
	return s.name
}

// Start runs the serve loop on its own goroutine. Further calls are no-ops.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.done)
			s.logger.Debug().Str("func", "Server.Start").Str("path", s.path).Msg("ipc server started")
			if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				s.logger.Error().Err(err).Str("func", "Server.Start").Msg("ipc serve loop exited")
			}
		}()
	})
}

// Close stops serving and removes the socket.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		s.server.Stop()
		s.startOnce.Do(func() {
			s.listener.Close()
			close(s.done)
		})
		<-s.done

		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = rmErr
		}
		s.logger.Debug().Str("func", "Server.Close").Msg("ipc server closed")
	})
	return err
}

func (s *Server) handle(ctx context.Context, in *frame) (*frame, error) {
	if !in.present {
		return nil, s.malformed(fmt.Errorf("%w: request without data", ErrMalformedRequest))
	}

	// a client that stops waiting does not abort the work it asked for
	ctx, stop := context.WithCancel(context.WithoutCancel(ctx))
	defer stop()
	defer context.AfterFunc(s.ctx, stop)()

	var (
		reply []byte
		err   error
	)
	call := func() { reply, err = s.handler(ctx, in.data) }

	if s.opts.dispatcher != nil {
		if dispatchErr := s.opts.dispatcher.Dispatch(ctx, call); dispatchErr != nil {
			return nil, status.Error(codes.Unavailable, dispatchErr.Error())
		}
	} else {
		call()
	}

	if err != nil {
		return nil, s.malformed(err)
	}
	if reply == nil {
		return &frame{}, nil
	}
	return dataFrame(reply), nil
}

func (s *Server) malformed(err error) error {
	if s.opts.fatal != nil {
		s.opts.fatal(err)
	} else {
		s.logger.Fatal().Err(err).Str("func", "Server.handle").Msg("bad IPC request")
	}
	return status.Error(codes.InvalidArgument, err.Error())
}
