package xclient

import (
	"errors"
	"fmt"
)

// RemoteAPIError is a non-2xx response from the X API.
type RemoteAPIError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("x api %s: status %d: %s", e.Endpoint, e.Status, e.Body)
}

// TransportError wraps network, TLS, timeout and limiter failures.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("x api %s: transport: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the response body was not the JSON we expected.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("x api %s: decode: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transport or remote API failure.
func IsRetryable(err error) bool {
	var remote *RemoteAPIError
	var transport *TransportError
	return errors.As(err, &remote) || errors.As(err, &transport)
}
