package cli

import (
	"errors"
	"fmt"
)

// UsageError reports a wrong number of positional arguments.
type UsageError struct {
	Got int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected %d arguments, got %d", len(argNames), e.Got)
}

// ParseError reports the first argument that is not a number.
type ParseError struct {
	Index int // zero-based position
	Name  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("argument %d (%s) %q is not numeric: %v", e.Index+1, e.Name, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExitCode maps a Run result to a process exit status. Usage and parse
// errors terminate normally; only failing to emit output is a failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	var parse *ParseError
	if errors.As(err, &usage) || errors.As(err, &parse) {
		return 0
	}
	return 1
}
