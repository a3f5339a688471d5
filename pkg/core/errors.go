package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrConfigMissing matches every *ConfigMissingError through errors.Is.
	ErrConfigMissing = errors.New("no saved credentials")
	// ErrInvalidArgument is returned before any I/O when an input is unusable.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConfigIOError is a failure to read, write or delete the credential file.
type ConfigIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigIOError) Unwrap() error { return e.Err }

// ConfigMissingError means there is no usable credential file: either the
// file does not exist or a required field is absent.
type ConfigMissingError struct {
	Path   string
	Reason string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("no usable config at %s: %s", e.Path, e.Reason)
}

func (e *ConfigMissingError) Is(target error) bool {
	return target == ErrConfigMissing
}

// TransportError is a failure before any HTTP response was received
// (DNS, TLS, timeout, connection refused).
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: could not reach %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIRejection is a well-formed HTTP response with an unexpected status.
type APIRejection struct {
	Op      string
	Status  int
	Message string
}

func (e *APIRejection) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: instance rejected the request with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: instance rejected the request with status %d", e.Op, e.Status)
}

// MalformedResponseError is a successful response lacking an expected field.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed success response: %s", e.Op, e.Reason)
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsRejection reports whether err wraps an *APIRejection and returns its status.
func IsRejection(err error) (int, bool) {
	var rej *APIRejection
	if errors.As(err, &rej) {
		return rej.Status, true
	}
	return 0, false
}

// IsConfigMissing reports whether err means no credential is saved.
func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
