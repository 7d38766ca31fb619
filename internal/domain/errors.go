package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying each failure family. Concrete errors below
// unwrap to one of these, so callers can use errors.Is.
var (
	// ErrTransport indicates the search backend could not be reached or
	// answered with a failure
	ErrTransport = errors.New("transport failure")

	// ErrGeocoding indicates an address could not be resolved to a coordinate
	ErrGeocoding = errors.New("geocoding failure")

	// ErrUnexpectedShape indicates the backend answered, but not with a JSON object
	ErrUnexpectedShape = errors.New("unexpected response shape")

	// ErrAddressNotFound indicates the geocoder had no match for an address
	ErrAddressNotFound = errors.New("address not found")
)

// TransportError is produced by the JSON transport client
type TransportError struct {
	Method     string
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap exposes both the family sentinel and the cause
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// GeocodingError is produced by a Geocoder. It always matches ErrGeocoding.
// When the geocoder itself could not be reached, Err is a *TransportError and
// the error matches ErrTransport as well; classify by ErrGeocoding first,
// since no search request was attempted in either case.
type GeocodingError struct {
	Address string
	Err     error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

// Unwrap lists ErrGeocoding ahead of the cause
func (e *GeocodingError) Unwrap() []error {
	return []error{ErrGeocoding, e.Err}
}

// UnexpectedShapeError is produced by a repository when the decoded response
// is not a keyed mapping
type UnexpectedShapeError struct {
	Repository string // "events", "news" or "videos"
	Got        string // Go type of the decoded value
}

func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("%s repository: expected JSON object, got %s", e.Repository, e.Got)
}

func (e *UnexpectedShapeError) Unwrap() error {
	return ErrUnexpectedShape
}
