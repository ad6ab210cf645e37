package rsvp

import "errors"

var (
	// ErrInternal marks any failure between parsing and appending. Clients
	// only ever see the generic error ack.
	ErrInternal = errors.New("rsvp: internal error")
)
