package buildorder

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNumber is wrapped by every NumberError.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrDuplicateAnnotation is returned when a name is annotated twice.
	ErrDuplicateAnnotation = errors.New("duplicate annotation")

	// ErrImpossibleUpgrade marks an upgrade with no base structure left to
	// upgrade. It is reported as a warning and never aborts a run.
	ErrImpossibleUpgrade = errors.New("impossible upgrade")
)

// NumberError describes a numeric field outside its allowed range or not
// parseable at all.
type NumberError struct {
	Field string
	Value string
	Min   int
	Max   int
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%s %q: want %d..%d", e.Field, e.Value, e.Min, e.Max)
}

func (e *NumberError) Unwrap() error {
	return ErrMalformedNumber
}

// LineError attaches the 1-based input line to a fatal parse error.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
