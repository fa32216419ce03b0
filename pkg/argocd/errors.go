package argocd

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the controller. The status code and
// raw body are preserved verbatim so callers can surface the controller's
// own message.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("controller rejected %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsConflict reports whether the error is a 409 response, meaning the
// application already exists and the caller should switch to the update path.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsRejected reports whether the error is any non-2xx controller response.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// TransportError is a network-level failure reaching the controller
// (connection refused, timeout, TLS failure). It is distinct from APIError
// so callers can decide whether a retry makes sense.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("controller unreachable during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the error is a transport-level failure.
func IsTransport(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
