package timetable

import "errors"

// ErrInvalidSyntax means the JSON document could not be parsed at all.
var ErrInvalidSyntax = errors.New("timetable: invalid syntax")

// ErrInvalidContent means the document parsed but failed schema or
// semantic validation (I1 in spec.md §3).
var ErrInvalidContent = errors.New("timetable: invalid content")

// ErrIOError means persistence (read or write) failed.
var ErrIOError = errors.New("timetable: io error")

// ValidationError carries a machine-readable code plus a human-readable
// explanation, surfaced by the control socket as {error, explain}.
type ValidationError struct {
	Code    string
	Explain string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Explain
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidContent
}

func invalid(code, explain string) error {
	return &ValidationError{Code: code, Explain: explain}
}
