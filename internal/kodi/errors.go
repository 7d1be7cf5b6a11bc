package kodi

import (
	"errors"
	"fmt"
	"time"
)

// TransportError indicates the request never completed: connection refused,
// request timeout, or a non-2xx HTTP status before any JSON-RPC response.
type TransportError struct {
	Op      string
	Err     error
	Timeout bool
	Status  int // HTTP status when non-zero
}

func (e *TransportError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: request timed out", e.Op)
	case e.Status != 0:
		return fmt.Sprintf("%s: http status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError indicates the host answered but the response was unusable:
// a remote-reported application error or a result with an unexpected shape.
type ProtocolError struct {
	Method  string
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: remote error %d: %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: unexpected response shape", e.Method)
}

// ScanTimeoutError indicates a scan or clean was accepted by the host but
// did not complete within its budget. Distinct from ProtocolError: the
// operation may still be running.
type ScanTimeoutError struct {
	Elapsed time.Duration
}

func (e *ScanTimeoutError) Error() string {
	return fmt.Sprintf("library scan timed out after %s", e.Elapsed.Round(time.Second))
}

// IsTimeout reports whether err is a transport-level request timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}

// IsUnauthorized reports whether err is an HTTP 401 from the host.
func IsUnauthorized(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Status == 401
}
