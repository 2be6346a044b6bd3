package bridge

import (
	"errors"
	"fmt"
)

// ErrEndpointNotFound is returned by the metadata operations when the named
// endpoint does not exist on the platform.
var ErrEndpointNotFound = errors.New("endpoint not found")

// ErrRowMismatch is returned when the endpoint answered successfully but the
// prediction row count does not line up with the input rows.
var ErrRowMismatch = errors.New("prediction row count does not match input row count")

// RemoteServiceError wraps a failure of the remote inference service: the
// endpoint is unreachable, throttled, missing, or returned a non-success
// status.
type RemoteServiceError struct {
	Endpoint string
	Code     string
	Err      error
}

func (e *RemoteServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote service error on endpoint %q (%s): %v", e.Endpoint, e.Code, e.Err)
	}
	return fmt.Sprintf("remote service error on endpoint %q: %v", e.Endpoint, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// SerializationError wraps a failure to encode the input table into the
// endpoint payload or to decode the response body back into a table.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s payload: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
