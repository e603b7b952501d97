package api

import (
	"errors"
	"fmt"
)

// Error classes returned by Client. Match them with errors.Is.
var (
	// ErrRequest means the request could not be sent or the response not read.
	ErrRequest = errors.New("api request failed")
	// ErrStatus means the server answered with a non-2xx status.
	ErrStatus = errors.New("api returned error status")
	// ErrMalformed means the response body did not have the expected shape.
	ErrMalformed = errors.New("api returned malformed response")
)

// StatusError carries the details of a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Unwrap() error {
	return ErrStatus
}
