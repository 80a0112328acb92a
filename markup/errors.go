package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTag means a click or hover tag is missing a field.
	ErrMalformedTag = errors.New("malformed tag")
	// ErrUnbalancedClose means a closing tag had nothing to close.
	ErrUnbalancedClose = errors.New("unbalanced closing tag")
	// ErrUnknownActionKind means a click or hover kind is not recognized.
	ErrUnknownActionKind = errors.New("unknown action kind")

	// ErrDepthExceeded means hover payloads nest deeper than the parser allows.
	ErrDepthExceeded = errors.New("hover nesting too deep")
	// ErrInputTooLarge means the markup is longer than the parser allows.
	ErrInputTooLarge = errors.New("input too large")
	// ErrUnknownTag is only returned in strict mode.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrUnclosedTag is only returned in strict mode.
	ErrUnclosedTag = errors.New("unclosed tag")
)

// ParseError describes why a parse failed. Use errors.Is against the Err*
// sentinels to tell the kinds apart.
type ParseError struct {
	Err    error
	Reason string
	// Tag is the raw tag content, without brackets, that caused the error.
	Tag string
	// Offset is the byte offset of the tag in the input it was found in. For
	// errors inside a hover payload it is relative to that payload.
	Offset int
}

func (e *ParseError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("markup: %s", e.Reason)
	}
	return fmt.Sprintf("markup: %s at offset %d: <%s>", e.Reason, e.Offset, e.Tag)
}

func (e *ParseError) Unwrap() error { return e.Err }

func tagError(err error, reason string, tok Token) *ParseError {
	return &ParseError{Err: err, Reason: reason, Tag: tok.Raw, Offset: tok.Pos}
}
