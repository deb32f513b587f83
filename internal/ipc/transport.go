package ipc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-lms-sync/models"
)

// ForwardingTransport is an [http.RoundTripper] that hands every request to
// the driver server first. When the driver has no response the request goes
// to Next.
type ForwardingTransport struct {
	Client *Client
	// Next handles requests the driver does not answer. Nil means
	// [http.DefaultTransport].
	Next http.RoundTripper
}

func (t *ForwardingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	msg := models.DriverMessage{URLRequest: &models.URLRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	}}

	reply, err := t.Client.RequestRemote(req.Context(), msg)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return t.next().RoundTrip(req)
	}

	var mock models.MockResponse
	if err = json.Unmarshal(reply, &mock); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	return mock.HTTPResponse(req), nil
}

func (t *ForwardingTransport) next() http.RoundTripper {
	if t.Next != nil {
		return t.Next
	}
	return http.DefaultTransport
}
