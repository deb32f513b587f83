package ipc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// socketDir returns a short temporary directory; unix socket paths are
// limited to about a hundred bytes.
func socketDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "ipc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startServer(t *testing.T, name string, handler Handler, opts ...Option) *Server {
	t.Helper()
	s, err := NewServer(name, handler, opts...)
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { s.Close() })
	return s
}

func newClient(t *testing.T, dir, name string) *Client {
	t.Helper()
	c, err := NewClient(name, 5*time.Second, WithSocketDir(dir))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func upper(_ context.Context, payload []byte) ([]byte, error) {
	return bytes.ToUpper(payload), nil
}

func TestBridge_RoundTrip(t *testing.T) {
	dir := socketDir(t)
	startServer(t, "echo", upper, WithSocketDir(dir))
	client := newClient(t, dir, "echo")

	reply, err := client.RequestRemote(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"HELLO"`), reply)

	// повторный запрос по тому же соединению
	reply, err = client.RequestRemote(context.Background(), map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"N":1}`), reply)
}

func TestBridge_NoResponseAndEmptyResponse(t *testing.T) {
	dir := socketDir(t)
	startServer(t, "none", func(context.Context, []byte) ([]byte, error) { return nil, nil }, WithSocketDir(dir))
	startServer(t, "empty", func(context.Context, []byte) ([]byte, error) { return []byte{}, nil }, WithSocketDir(dir))

	reply, err := newClient(t, dir, "none").RequestRemote(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, reply)

	reply, err = newClient(t, dir, "empty").RequestRemote(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, reply)
	assert.Empty(t, reply)
}

func TestClient_ConnectTimeout(t *testing.T) {
	client, err := NewClient("missing", 2*time.Second, WithSocketDir(socketDir(t)))
	require.NoError(t, err)

	start := time.Now()
	_, err = client.RequestRemote(context.Background(), "x")
	elapsed := time.Since(start)

	var ipcErr *Error
	require.True(t, errors.As(err, &ipcErr))
	assert.Contains(t, ipcErr.Message, "missing")
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
	assert.Less(t, elapsed, 3*time.Second)
}

func TestClient_ConnectCancelled(t *testing.T) {
	client, err := NewClient("missing", time.Minute, WithSocketDir(socketDir(t)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = client.Open(ctx)
	var ipcErr *Error
	assert.True(t, errors.As(err, &ipcErr))
}

func TestClient_WaitsForLateServer(t *testing.T) {
	dir := socketDir(t)
	client := newClient(t, dir, "late")

	go func() {
		time.Sleep(1500 * time.Millisecond)
		s, err := NewServer("late", upper, WithSocketDir(dir))
		if err != nil {
			return
		}
		s.Start()
		t.Cleanup(func() { s.Close() })
	}()

	reply, err := client.RequestRemote(context.Background(), "late")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"LATE"`), reply)
}

func TestClient_ReopensAfterClose(t *testing.T) {
	dir := socketDir(t)
	startServer(t, "reopen", upper, WithSocketDir(dir))
	client := newClient(t, dir, "reopen")

	_, err := client.RequestRemote(context.Background(), "a")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	reply, err := client.RequestRemote(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"B"`), reply)
}

func TestServer_MalformedPayloadIsFatal(t *testing.T) {
	dir := socketDir(t)
	fatal := make(chan error, 1)

	startServer(t, "strict",
		func(context.Context, []byte) ([]byte, error) { return nil, ErrMalformedRequest },
		WithSocketDir(dir),
		WithFatalHandler(func(err error) { fatal <- err }),
	)

	_, err := newClient(t, dir, "strict").RequestRemote(context.Background(), "x")
	var ipcErr *Error
	assert.True(t, errors.As(err, &ipcErr))

	select {
	case got := <-fatal:
		assert.ErrorIs(t, got, ErrMalformedRequest)
	case <-time.After(time.Second):
		t.Fatal("fatal handler was not called")
	}
}

// slowHandler runs for d unless its context ends first and reports the
// context error it observed.
func slowHandler(d time.Duration, started chan<- struct{}, result chan<- error) Handler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		close(started)
		select {
		case <-time.After(d):
		case <-ctx.Done():
		}
		result <- ctx.Err()
		return payload, nil
	}
}

func TestServer_HandlerOutlivesClientDeadline(t *testing.T) {
	dir := socketDir(t)
	result := make(chan error, 1)
	startServer(t, "slow", slowHandler(requestTimeout+500*time.Millisecond, make(chan struct{}), result), WithSocketDir(dir))

	// клиент перестаёт ждать через requestTimeout, но работа должна завершиться
	_, err := newClient(t, dir, "slow").RequestRemote(context.Background(), "sync")
	require.Error(t, err)

	select {
	case handlerErr := <-result:
		assert.NoError(t, handlerErr)
	case <-time.After(3 * time.Second):
		t.Fatal("handler did not finish")
	}
}

func TestServer_CloseCancelsHandler(t *testing.T) {
	dir := socketDir(t)
	started := make(chan struct{})
	result := make(chan error, 1)
	s := startServer(t, "closing", slowHandler(time.Minute, started, result), WithSocketDir(dir))
	client := newClient(t, dir, "closing")

	go func() {
		_, _ = client.RequestRemote(context.Background(), "sync")
	}()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("request did not reach the handler")
	}
	require.NoError(t, s.Close())

	select {
	case handlerErr := <-result:
		assert.ErrorIs(t, handlerErr, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not cancelled by Close")
	}
}

type countingDispatcher struct {
	calls atomic.Int32
}

func (d *countingDispatcher) Dispatch(_ context.Context, fn func()) error {
	d.calls.Add(1)
	fn()
	return nil
}

func TestServer_WithDispatcher(t *testing.T) {
	dir := socketDir(t)
	d := &countingDispatcher{}
	startServer(t, "dispatched", upper, WithSocketDir(dir), WithDispatcher(d))

	reply, err := newClient(t, dir, "dispatched").RequestRemote(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"Q"`), reply)
	assert.Equal(t, int32(1), d.calls.Load())
}

func TestMainQueue(t *testing.T) {
	q := NewMainQueue()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Dispatch(ctx, func() {}), context.DeadlineExceeded)

	runCtx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(runCtx) }()

	ran := false
	require.NoError(t, q.Dispatch(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	stop()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestServer_CloseRemovesSocket(t *testing.T) {
	dir := socketDir(t)
	s, err := NewServer("closing", upper, WithSocketDir(dir))
	require.NoError(t, err)
	s.Start()

	_, err = os.Stat(filepath.Join(dir, "closing.sock"))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, "closing.sock"))
	assert.True(t, os.IsNotExist(err))
}

func TestServer_CloseWithoutStart(t *testing.T) {
	s, err := NewServer("idle", upper, WithSocketDir(socketDir(t)))
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
