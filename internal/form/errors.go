package form

import "errors"

var (
	// ErrInFlight is returned while a previous submission has not completed.
	ErrInFlight = errors.New("form: submission already in flight")
	// ErrTransport wraps any failure to get an HTTP response at all.
	ErrTransport    = errors.New("form: transport error")
	ErrUnknownField = errors.New("form: unknown field")
	ErrNoEndpoint   = errors.New("form: endpoint url is empty")
)
