package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ReauthenticateMessage is the message carried by the error returned for 401 responses.
const ReauthenticateMessage = "Please re-authenticate"

// Error classes. *ResponseError matches ErrAuthenticationExpired or ErrRequestFailed through
// errors.Is; decoding problems are wrapped with ErrDecodingFailed.
var (
	ErrAuthenticationExpired = errors.New("authentication expired")
	ErrRequestFailed         = errors.New("request failed")
	ErrDecodingFailed        = errors.New("failed to decode response body")
	ErrEncodingFailed        = errors.New("failed to encode request body")
	ErrInvalidRequest        = errors.New("invalid request")
)

// ResponseError is a non-2xx response. Body holds the JSON the server sent, unmodified;
// for 401 responses it is replaced by {"message":"Please re-authenticate"}.
type ResponseError struct {
	StatusCode int
	Body       json.RawMessage
}

func newAuthExpiredError() *ResponseError {
	body, _ := json.Marshal(map[string]string{"message": ReauthenticateMessage})
	return &ResponseError{StatusCode: http.StatusUnauthorized, Body: body}
}

// Error returns the server "message" field when present so it can be shown to users as is,
// and falls back to the status and raw body.
func (e *ResponseError) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is maps the status code onto the package error classes.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrAuthenticationExpired:
		return e.StatusCode == http.StatusUnauthorized
	case ErrRequestFailed:
		return e.StatusCode != http.StatusUnauthorized
	}
	return false
}

// Decode unmarshals the server-supplied body into v.
func (e *ResponseError) Decode(v any) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingFailed, err)
	}
	return nil
}

// Message returns the top-level "message" field of the body, if it is a string.
func (e *ResponseError) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Body, &body) != nil {
		return ""
	}
	return body.Message
}

// IsAuthExpired reports whether err came from a 401 response.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthenticationExpired)
}

// AsResponseError extracts a *ResponseError from err.
func AsResponseError(err error) (*ResponseError, bool) {
	var re *ResponseError
	ok := errors.As(err, &re)
	return re, ok
}
