package bftree

import "errors"

var (
	// ErrInvalidOptions signals that Options passed to New are unusable.
	ErrInvalidOptions = errors.New("bftree: invalid options")
)
