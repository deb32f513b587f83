package utils

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	require.NotNil(t, client1.Client)
	assert.NotSame(t, client1.Client, client2.Client)
}

func TestHTTPClient_WithRetries(t *testing.T) {
	tests := []struct {
		name      string
		retries   int
		status    int
		wantCalls int32
	}{
		{name: "server error is retried", retries: 2, status: http.StatusBadGateway, wantCalls: 3},
		{name: "throttling is retried", retries: 1, status: http.StatusTooManyRequests, wantCalls: 2},
		{name: "client error is not retried", retries: 2, status: http.StatusNotFound, wantCalls: 1},
		{name: "retries disabled", retries: 0, status: http.StatusBadGateway, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewHTTPClient().WithRetries(tt.retries, time.Millisecond)
			resp, err := client.R().Get(server.URL)

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode())
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestHTTPClient_RetryRecovers(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// первый запрос падает, второй проходит
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewHTTPClient().WithRetries(3, time.Millisecond).R().Get(server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(2), calls.Load())
}
