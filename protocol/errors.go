package protocol

import "fmt"

// ParseError reports a line that does not conform to the event schema.
// Callers should log it at debug level and move on; the CLI is free to
// emit lines this tool has never heard of.
type ParseError struct {
	Cause   error
	Message string
	Line    string
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parsing event: %v", e.Cause)
	}
	return fmt.Sprintf("parsing event: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// UnknownResultError reports a result line with an unmodeled subtype.
// Result events are a closed family, so this means the CLI protocol
// changed and the tool needs updating.
type UnknownResultError struct {
	Subtype string
}

func (e *UnknownResultError) Error() string {
	return fmt.Sprintf("unknown result subtype %q", e.Subtype)
}
