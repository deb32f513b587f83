package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// lmsError is the error body of the LMS: either a list of messages or a
// single top-level message.
type lmsError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Message string `json:"message"`
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	message := errorMessage(resp.Body())
	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, status, message)
}

// errorMessage extracts the messages of an LMS error body. Bodies in any
// other shape are returned as is.
func errorMessage(body []byte) string {
	var e lmsError
	if err := json.Unmarshal(body, &e); err == nil {
		messages := make([]string, 0, len(e.Errors)+1)
		for _, m := range e.Errors {
			if m.Message != "" {
				messages = append(messages, m.Message)
			}
		}
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
		if len(messages) > 0 {
			return strings.Join(messages, "; ")
		}
	}
	return strings.TrimSpace(string(body))
}
