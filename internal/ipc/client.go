// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
)

const (
	// DefaultConnectTimeout is how long a client waits for its server when
	// no timeout is given.
	DefaultConnectTimeout = 60 * time.Second

	pollInterval   = time.Second
	requestTimeout = time.Second
)

// Client sends requests to the server of one channel. Calls must not
// overlap: one request is in flight at a time.
type Client struct {
	name    string
	path    string
	timeout time.Duration
	logger  *logger.Logger

	mu   sync.Mutex
	conn *grpc.ClientConn
}

// NewClient creates a client for channel name. The connection is opened on
// the first request; timeout bounds how long the client waits for the
// server to appear. A non-positive timeout means [DefaultConnectTimeout].
func NewClient(name string, timeout time.Duration, opts ...Option) (*Client, error) {
	if !Enabled {
		return nil, ErrDisabled
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	o := newOptions(opts)
	path, err := filepath.Abs(SocketPath(o.socketDir, name))
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}

	return &Client{
		name:    name,
		path:    path,
		timeout: timeout,
		logger:  &logger.Logger{Logger: o.logger.With().Str("channel", name).Logger()},
	}, nil
}

// Open connects to the server, polling once per second until the connect
// timeout elapses. It fails with an [*Error] when the server never appears.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open(ctx)
}

func (c *Client) open(ctx context.Context) error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	deadline := time.Now().Add(c.timeout)
	for {
		if probe, err := net.DialTimeout("unix", c.path, pollInterval); err == nil {
			probe.Close()
			break
		}

		select {
		case <-ctx.Done():
			return &Error{Message: fmt.Sprintf("client couldn't connect to server %s: %v", c.name, ctx.Err())}
		case <-time.After(pollInterval):
		}

		if !time.Now().Before(deadline) {
			return &Error{Message: "client couldn't connect to server " + c.name}
		}
	}

	conn, err := grpc.NewClient("unix://"+c.path,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rawCodec{})),
	)
	if err != nil {
		return &Error{Message: fmt.Sprintf("client couldn't connect to server %s: %v", c.name, err)}
	}

	c.conn = conn
	c.logger.Debug().Str("func", "Client.open").Str("path", c.path).Msg("ipc client connected")
	return nil
}

// RequestRemote encodes request as JSON and sends it. It returns the reply
// payload, or nil when the server had no response. The connection is
// (re)opened first when it is missing or broken.
func (c *Client) RequestRemote(ctx context.Context, request any) ([]byte, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode ipc request: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid() {
		if err = c.open(ctx); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply := new(frame)
	if err = c.conn.Invoke(ctx, requestMethod, dataFrame(payload), reply); err != nil {
		c.logger.Err(err).Str("func", "Client.RequestRemote").Msg("ipc request failed")
		return nil, &Error{Message: fmt.Sprintf("error sending IPC request: %v", err)}
	}

	if !reply.present {
		return nil, nil
	}
	return reply.data, nil
}

// Close releases the connection. The client may be used again afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) valid() bool {
	if c.conn == nil {
		return false
	}
	switch c.conn.GetState() {
	case connectivity.Shutdown, connectivity.TransientFailure:
		return false
	default:
		return true
	}
}
