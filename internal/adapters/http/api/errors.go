package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/sihdash/internal/adapters/dataset"
	"github.com/okian/sihdash/internal/adapters/session"
	service "github.com/okian/sihdash/internal/app"
	"github.com/okian/sihdash/internal/domain/filter"
	"github.com/okian/sihdash/internal/domain/rollup"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrMissingID   = errors.New("missing session parameter")
	ErrUnknownKind = errors.New("unknown resource kind")
	ErrNoData      = errors.New("no data")
)

// Error annotates a failure with the operation that hit it and an optional kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Wrap annotates err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind annotates err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Message strips the operation prefix for client display.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch {
		case e.Err != nil && e.Kind != nil:
			return fmt.Sprintf("%v: %v", e.Kind, e.Err)
		case e.Err != nil:
			return Message(e.Err)
		case e.Kind != nil:
			return e.Kind.Error()
		}
	}
	return err.Error()
}

// StatusOf maps an error to its HTTP status and response code.
func StatusOf(err error) (int, string) {
	var se *dataset.SchemaError
	var le *dataset.LoadError
	switch {
	case errors.As(err, &se):
		return http.StatusServiceUnavailable, "schema_invalid"
	case errors.As(err, &le):
		return http.StatusServiceUnavailable, "dataset_unavailable"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, rollup.ErrNotFound), errors.Is(err, service.ErrUnknownSeries), errors.Is(err, ErrUnknownKind),
		errors.Is(err, ErrNoData):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrMissingID),
		errors.Is(err, rollup.ErrUnknownSort), errors.Is(err, rollup.ErrInvalidQuery),
		errors.Is(err, filter.ErrUnknownKey), errors.Is(err, filter.ErrWrongKind):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
