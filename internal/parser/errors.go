package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for a widget kind no renderer supports.
	ErrUnknownKind = errors.New("unknown widget kind")
	// ErrConflictingSources is returned when a widget names more than one data source.
	ErrConflictingSources = errors.New("conflicting data sources")
)

// DataError describes a payload that could not be decoded for a widget.
type DataError struct {
	Widget string
	Kind   string
	Err    error
}

func (e *DataError) Error() string {
	if e.Widget == "" {
		return fmt.Sprintf("invalid %s data: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("widget %q: invalid %s data: %v", e.Widget, e.Kind, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
