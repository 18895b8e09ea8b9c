package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned for a query that is blank after trimming.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("a query is already in progress")
)

// HTTPError indicates the service answered with a non-2xx status.
// Callers can use errors.As to inspect the status and body.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d - %s", e.StatusCode, e.Body)
}

// NetworkError indicates the request never completed. The message is the
// transport's own description.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError indicates a success response whose body was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
