package ipc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-lms-sync/models"
)

// HelperRunner executes UI-test helpers inside the app process. A nil
// reply means the helper has nothing to return.
type HelperRunner interface {
	Run(ctx context.Context, helper models.Helper) []byte
}

// DriverHandler answers messages forwarded to the driver. A nil reply
// means "no response".
type DriverHandler interface {
	HandleMessage(ctx context.Context, msg models.DriverMessage) []byte
}

// NewAppServer creates the app-side server of test run id. Helpers usually
// touch app state, so pass [WithDispatcher] to run them on the app's main
// loop.
func NewAppServer(id string, runner HelperRunner, opts ...Option) (*Server, error) {
	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		var helper models.Helper
		if err := json.Unmarshal(payload, &helper); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
		}
		if helper.Name == "" {
			return nil, fmt.Errorf("%w: helper without name", ErrMalformedRequest)
		}
		return runner.Run(ctx, helper), nil
	}
	return NewServer(AppChannel(id), handler, opts...)
}

// NewDriverServer creates the driver-side server of test run id. The server
// does not own handler: closing the server leaves it untouched, and the
// caller keeps it alive for as long as the server runs.
func NewDriverServer(id string, handler DriverHandler, opts ...Option) (*Server, error) {
	h := func(ctx context.Context, payload []byte) ([]byte, error) {
		var msg models.DriverMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
		}
		return handler.HandleMessage(ctx, msg), nil
	}
	return NewServer(DriverChannel(id), h, opts...)
}
