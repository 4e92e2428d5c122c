package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrFormat   = errors.New("malformed catalog row")
	ErrResource = errors.New("catalog resource unavailable")
	ErrNotFound = errors.New("galaxy not found")
)

// RowError reports the catalog line that could not be parsed.
type RowError struct {
	Line int
	Text string
	Err  error
}

func NewRowError(line int, text string, err error) *RowError {
	return &RowError{
		Line: line,
		Text: text,
		Err:  err,
	}
}

func (r *RowError) Error() string {
	return fmt.Sprintf("catalog line %d %q: %v", r.Line, r.Text, r.Err)
}

// Unwrap exposes both ErrFormat and the underlying cause.
func (r *RowError) Unwrap() []error {
	return []error{ErrFormat, r.Err}
}

type NotFoundError struct {
	Name string
}

func NewNotFoundError(name string) *NotFoundError {
	return &NotFoundError{
		Name: name,
	}
}

func (n *NotFoundError) Error() string {
	return fmt.Sprintf("galaxy '%s' not found in local volume", n.Name)
}

func (n *NotFoundError) Unwrap() error {
	return ErrNotFound
}
