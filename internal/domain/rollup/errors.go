package rollup

import "errors"

var (
	// ErrUnknownSort is returned for a sort key a rollup does not offer.
	ErrUnknownSort = errors.New("unknown sort key")
	// ErrNotFound is returned when an entity is absent from the view.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery is returned for explorer requests that cannot be served.
	ErrInvalidQuery = errors.New("invalid query")
)
