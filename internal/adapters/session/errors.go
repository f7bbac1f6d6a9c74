package session

import "errors"

var (
	// ErrNotFound is returned when a session has no stored selection.
	ErrNotFound = errors.New("session selection not found")
	// ErrInvalidSession is returned for empty session ids.
	ErrInvalidSession = errors.New("invalid session id")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session store closed")
)
