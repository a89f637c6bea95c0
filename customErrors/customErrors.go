package customErrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	ErrNotFound     = "NOT FOUND"
	ErrInvalidInput = "INVALID INPUT"
	ErrAuth         = "UNAUTHORIZED"
	ErrAccessDenied = "ACCESS DENIED"
	ErrConflict     = "CONFLICT"
	ErrInternal     = "INTERNAL"
)

type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// FromStatus builds an ErrorResponse out of an HTTP failure status and
// whatever the server put in the body.
func FromStatus(status int, body string) ErrorResponse {
	body = strings.TrimSpace(body)
	if body == "" {
		body = http.StatusText(status)
	}

	code := ErrInternal
	switch status {
	case http.StatusUnauthorized:
		code = ErrAuth
	case http.StatusForbidden:
		code = ErrAccessDenied
	case http.StatusNotFound:
		code = ErrNotFound
	case http.StatusConflict:
		code = ErrConflict
	default:
		if status >= 400 && status < 500 {
			code = ErrInvalidInput
		}
	}

	return ErrorResponse{
		StatusCode: status,
		Code:       code,
		Message:    body,
	}
}

func IsUnauthorized(err error) bool {
	var resp ErrorResponse
	if errors.As(err, &resp) {
		return resp.StatusCode == http.StatusUnauthorized
	}
	return false
}
