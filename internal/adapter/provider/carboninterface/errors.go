package carboninterface

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrNetwork           = errors.New("carboninterface: network error")
	ErrUpstream          = errors.New("carboninterface: upstream error")
	ErrMalformedResponse = errors.New("carboninterface: malformed response")
)

// NetworkError is a transport failure: DNS, connect, timeout, reset.
// Nothing is retried here.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("carboninterface: network: %v", e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// UpstreamError is a non-2xx response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("carboninterface: upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("carboninterface: upstream status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// MalformedResponseError is a 2xx response without a usable carbon_kg.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carboninterface: malformed response: %s: %v", e.Reason, e.Err)
	}
	return "carboninterface: malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}
