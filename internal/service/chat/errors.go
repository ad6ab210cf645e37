package chat

import "errors"

var (
	ErrSessionNotFound = errors.New("chat session not found")
)
