package subtitle

import (
	"errors"
	"fmt"
)

// ErrEmptyOrUnparsable is returned when a file has the right structure but
// no cue survived parsing.
var ErrEmptyOrUnparsable = errors.New("no usable subtitle cues")

// ParseError reports content that does not match the declared format.
type ParseError struct {
	Format Format
	Line   int // 0 when the failure is not tied to a line
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s", e.formatName())
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) formatName() string {
	if e.Format == FormatUnknown {
		return "subtitle"
	}
	return string(e.Format)
}

func emptyResultError(format Format, skipped int) error {
	return fmt.Errorf(
		"%s file: %w (%d entries skipped)",
		format,
		ErrEmptyOrUnparsable,
		skipped,
	)
}
