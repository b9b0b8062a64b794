package api

import (
	"errors"
	"fmt"
)

var ErrLoginRejected = errors.New("login rejected")

// NetworkError wraps a transport-level failure: DNS, connect, TLS, or a
// dropped connection. The request never produced an HTTP response.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response. The body is retained verbatim so the
// caller can log the server's diagnostics.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}
