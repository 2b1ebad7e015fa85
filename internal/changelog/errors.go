package changelog

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ParseError.
var (
	ErrMissingSignificance = errors.New("change without significance")
	ErrUnknownSignificance = errors.New("unknown significance")
	ErrUnrecognizedContent = errors.New("unrecognized content")
)

// ParseError reports stored changelog content that violates the grammar.
type ParseError struct {
	// Line is the 1-based line number of the offending line.
	Line int
	// Text is the offending line without its terminator.
	Text string
	// Err is one of the sentinel causes above.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CallerError reports an invalid argument in the current call, as opposed
// to a problem with stored content.
type CallerError struct {
	Field   string
	Message string
}

func (e *CallerError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsCallerError returns true if err is or wraps a CallerError.
func IsCallerError(err error) bool {
	var ce *CallerError
	return errors.As(err, &ce)
}
