package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptySessionID is returned by stores when asked to persist a session without an ID.
var ErrEmptySessionID = errors.New("empty session id")

// ErrNoHandler is returned when the transition table has no entry for an (intent, state) pair.
var ErrNoHandler = errors.New("no handler for state")
