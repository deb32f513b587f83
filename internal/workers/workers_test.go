// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lms-sync/internal/ipc"
	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/mock"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run(context.Context) {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Order(t *testing.T) {
	order := []string{}

	// orderWorker records its id into the shared order slice
	newOrderWorker := func(id string) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := NewWorkers(
		newOrderWorker("1"),
		newOrderWorker("2"),
		newOrderWorker("3"),
	)
	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"run 1", "run 2", "run 3", "stop 3", "stop 2", "stop 1"}, order)
}

func TestWorkers_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, 2, w.runCount)
	assert.Equal(t, 1, w.stopCount)
}

// orderWorker is a helper that appends its ID to a shared slice.
type orderWorker struct {
	id    string
	order *[]string
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, "run "+o.id)
}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, "stop "+o.id)
}

func TestSyncWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		job.EXPECT().Start(ctx, time.Minute),
		job.EXPECT().Stop(),
	)

	w := NewSyncWorker(job, time.Minute)
	w.Run(ctx)
	w.Stop()
}

func TestQueueWorker(t *testing.T) {
	queue := ipc.NewMainQueue()
	w := NewQueueWorker(queue)

	// Stop до Run ничего не ломает
	w.Stop()

	w.Run(context.Background())
	var calls atomic.Int32
	require.NoError(t, queue.Dispatch(context.Background(), func() { calls.Add(1) }))
	require.NoError(t, queue.Dispatch(context.Background(), func() { calls.Add(1) }))
	assert.Equal(t, int32(2), calls.Load())

	w.Stop()

	// очередь больше никто не разбирает
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := queue.Dispatch(ctx, func() { calls.Add(1) })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBridgeWorker(t *testing.T) {
	dir, err := os.MkdirTemp("", "workers")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}
	server, err := ipc.NewServer("echo", handler, ipc.WithSocketDir(dir))
	require.NoError(t, err)

	w := NewBridgeWorker(server, logger.Nop())
	w.Run(context.Background())

	client, err := ipc.NewClient("echo", 2*time.Second, ipc.WithSocketDir(dir))
	require.NoError(t, err)
	defer client.Close()

	reply, err := client.RequestRemote(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, string(reply))

	w.Stop()
	_, err = os.Stat(ipc.SocketPath(dir, "echo"))
	assert.True(t, os.IsNotExist(err))
}
