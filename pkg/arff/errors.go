package arff

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSeekable is returned when a stream cannot be rewound after a
	// metadata scan. Plain CSV detection needs to re-read the first line.
	ErrNotSeekable = errors.New("arff: stream is not seekable")
	// ErrNamesRequireARFF is returned when a column is named on a non-ARFF input.
	ErrNamesRequireARFF = errors.New("not an arff, can't use column names")
	// ErrUnknownColumn is returned when a named column is absent from the header.
	ErrUnknownColumn = errors.New("column name not found")
	// ErrColumnOutOfRange is returned when an index falls outside a row or header.
	ErrColumnOutOfRange = errors.New("column index out of range")
	// ErrMissingData is returned when an ARFF header ends without an @data line.
	ErrMissingData = errors.New("arff: header has no @data line")
)

// ParseError reports a malformed metadata line.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("arff: line %d: %s: %q", e.Line, e.Reason, e.Text)
}
