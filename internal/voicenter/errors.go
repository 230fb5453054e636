package voicenter

import (
	"errors"
	"fmt"
)

// ErrNoAPIToken is returned before any network call when no credential is
// configured. Unattended callers log it and abort the cycle.
var ErrNoAPIToken = errors.New("voicenter API token not configured")

// TransportError wraps a network failure, timeout or non-success HTTP
// status. It is surfaced to the caller and never retried internally.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("voicenter transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// VendorError is a non-zero error code in the response envelope. The sync
// logs the vendor description and processes no records, but does not
// propagate it as a failure.
type VendorError struct {
	Code        int
	Description string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("voicenter API error %d: %s", e.Code, e.Description)
}
