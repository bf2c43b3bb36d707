package models

import "fmt"

// StatementError is the single structural error surfaced to callers: missing
// columns, no extractable tables, unreadable files, or an empty result.
type StatementError struct {
	Msg string
	Err error
}

func (e *StatementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError returns a structural error with a user-facing message.
func NewStatementError(format string, args ...interface{}) *StatementError {
	return &StatementError{Msg: fmt.Sprintf(format, args...)}
}

// WrapStatementError attaches an upstream cause to a structural error.
func WrapStatementError(err error, msg string) *StatementError {
	return &StatementError{Msg: msg, Err: err}
}
