// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnknownDriverMessage is returned when a driver message envelope carries
// none of the known tags.
var ErrUnknownDriverMessage = errors.New("unknown driver message")

// HelperName names a UI-test helper action executed inside the app process.
type HelperName string

const (
	HelperPing  HelperName = "ping"
	HelperReset HelperName = "reset"
	HelperSync  HelperName = "sync"
	HelperCount HelperName = "count"
)

// Helper is a request sent by a UI-test driver to the app process.
type Helper struct {
	Name HelperName      `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

// CountArgs are the arguments of the [HelperCount] helper.
type CountArgs struct {
	Table string `json:"table"`
}

// CountResult is the reply of the [HelperCount] helper.
type CountResult struct {
	Table string `json:"table"`
	Count int    `json:"count"`
}

// SyncSummary is the reply of the [HelperSync] helper.
type SyncSummary struct {
	Passes     int      `json:"passes"`
	ItemErrors []string `json:"item_errors,omitempty"`
}

// URLRequest is a serialized outgoing HTTP request forwarded from the app to
// the test driver.
type URLRequest struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header,omitempty"`
	Body   []byte      `json:"body,omitempty"`
}

// MockResponse is the driver's answer to a forwarded [URLRequest].
type MockResponse struct {
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header,omitempty"`
	Body       []byte      `json:"body,omitempty"`
}

// HTTPResponse turns the mock into a response to req. A zero status code
// is reported as 200.
func (r MockResponse) HTTPResponse(req *http.Request) *http.Response {
	code := r.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

// DriverMessage is the tagged envelope received by the driver-side server.
// Exactly one variant is set.
type DriverMessage struct {
	URLRequest *URLRequest
}

type driverMessageEnvelope struct {
	Request *URLRequest `json:"request,omitempty"`
}

// MarshalJSON implements [json.Marshaler].
func (m DriverMessage) MarshalJSON() ([]byte, error) {
	if m.URLRequest == nil {
		return nil, ErrUnknownDriverMessage
	}
	return json.Marshal(driverMessageEnvelope{Request: m.URLRequest})
}

// UnmarshalJSON implements [json.Unmarshaler]. An envelope without a known
// tag is rejected.
func (m *DriverMessage) UnmarshalJSON(b []byte) error {
	var env driverMessageEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Request == nil {
		return ErrUnknownDriverMessage
	}
	m.URLRequest = env.Request
	return nil
}
