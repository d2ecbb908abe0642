package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by the pipeline. These allow errors.Is from callers.
var (
	// ErrData marks a per-file data failure: malformed rows, no samples or a
	// degenerate efficiency computation.
	ErrData = errors.New("polar data error")
	// ErrIO marks unreadable inputs or an unwritable report; always fatal.
	ErrIO = errors.New("polar io failure")
)

// DataError describes why one input file could not be used.
type DataError struct {
	Source string
	Line   int // 1-based; 0 when the failure is not tied to a line
	Reason string
	Err    error
}

// NewDataError builds a DataError without a line reference.
func NewDataError(source, reason string) *DataError {
	return &DataError{Source: source, Reason: reason}
}

func (e *DataError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes every DataError match ErrData.
func (e *DataError) Is(target error) bool { return target == ErrData }

func (e *DataError) Unwrap() error { return e.Err }
