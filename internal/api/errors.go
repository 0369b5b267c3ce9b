package api

import "fmt"

// RequestError is any non-2xx response. Message carries the backend-supplied
// "error" or "message" field when the body was JSON, otherwise the raw body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// NotFound reports whether the error is a 404 response.
func (e *RequestError) NotFound() bool { return e.Status == 404 }

// NetworkError is a transport-level failure: no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network unavailable: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }
