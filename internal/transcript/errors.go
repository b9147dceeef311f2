package transcript

import (
	"errors"
	"fmt"
)

var (
	// ErrUndecodable marks transcript input that is not valid text.
	ErrUndecodable = errors.New("transcript is not decodable text")
	// ErrOutOfOrder marks entries whose start times do not strictly increase.
	ErrOutOfOrder = errors.New("transcript entries out of start order")
)

// ParseError reports a transcript that could not be read as text.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse transcript: %v", e.Err)
	}
	return fmt.Sprintf("parse transcript %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorKind classifies the failure for run history.
func (e *ParseError) ErrorKind() string { return "parse" }
