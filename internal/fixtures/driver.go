package fixtures

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/models"
)

// MissHeader marks responses of the mock API for routes it does not serve.
const MissHeader = "X-Fixture-Miss"

// DriverHandler answers requests forwarded from the app by running them
// through a mock API handler. Requests the mock API does not serve get no
// response, so the app sends them over the network.
type DriverHandler struct {
	api    http.Handler
	logger *logger.Logger

	mu       sync.Mutex
	requests []models.URLRequest
}

// NewDriverHandler creates a driver handler backed by api.
func NewDriverHandler(api http.Handler, logger *logger.Logger) *DriverHandler {
	return &DriverHandler{api: api, logger: logger}
}

func (h *DriverHandler) HandleMessage(ctx context.Context, msg models.DriverMessage) []byte {
	req := msg.URLRequest
	if req == nil {
		return nil
	}

	h.mu.Lock()
	h.requests = append(h.requests, *req)
	h.mu.Unlock()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		h.logger.Err(err).Str("func", "DriverHandler.HandleMessage").Str("url", req.URL).Msg("invalid forwarded request")
		return nil
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	rec := httptest.NewRecorder()
	h.api.ServeHTTP(rec, httpReq)
	if rec.Header().Get(MissHeader) != "" {
		h.logger.Debug().Str("func", "DriverHandler.HandleMessage").Str("url", req.URL).Msg("no fixture, passing through")
		return nil
	}

	reply, err := json.Marshal(models.MockResponse{
		StatusCode: rec.Code,
		Header:     rec.Header().Clone(),
		Body:       rec.Body.Bytes(),
	})
	if err != nil {
		h.logger.Err(err).Str("func", "DriverHandler.HandleMessage").Msg("failed to encode mock response")
		return nil
	}
	return reply
}

// Requests returns the forwarded requests seen so far.
func (h *DriverHandler) Requests() []models.URLRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.URLRequest(nil), h.requests...)
}
