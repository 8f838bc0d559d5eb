package session

import "errors"

// ErrNotFound is returned for an unknown or evicted session id.
var ErrNotFound = errors.New("session not found")
