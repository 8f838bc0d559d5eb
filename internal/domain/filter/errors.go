package filter

import "errors"

var (
	// ErrUnknownKey is returned for a key outside the fixed set.
	ErrUnknownKey = errors.New("unknown filter key")
	// ErrWrongKind is returned when a selection targets a query key or the reverse.
	ErrWrongKind = errors.New("filter key kind mismatch")
)
