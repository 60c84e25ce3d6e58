// Package protocol parses the line-delimited stream-json output emitted by
// the claude CLI in --print --output-format=stream-json mode.
//
// Each line is one JSON object discriminated by a "type" field. The types
// this tool cares about are modeled as a closed union; everything else is
// preserved as UnknownEvent so new event kinds never break a run.
package protocol

import "encoding/json"

// EventType discriminates between event kinds.
type EventType string

const (
	EventTypeAssistant EventType = "assistant"
	EventTypeResult    EventType = "result"
)

// Event is the interface for all parsed stream events.
type Event interface {
	EventType() EventType
}

// AssistantEvent is one assistant turn: zero or more content blocks.
type AssistantEvent struct {
	Message AssistantMessage `json:"message"`
}

// EventType returns the event type.
func (AssistantEvent) EventType() EventType { return EventTypeAssistant }

// AssistantMessage carries the ordered content blocks of a turn.
type AssistantMessage struct {
	Content ContentBlocks `json:"content"`
}

// ResultEvent is the terminal event for a run. At most one should occur.
type ResultEvent struct {
	Result SuccessResult
}

// EventType returns the event type.
func (ResultEvent) EventType() EventType { return EventTypeResult }

// UnknownEvent is a well-formed line whose type this tool does not model.
// It renders nothing but is still logged verbatim by the caller.
type UnknownEvent struct {
	Type string
}

// EventType returns the event type.
func (e UnknownEvent) EventType() EventType { return EventType(e.Type) }

// UnmarshalEvent parses one raw line of CLI output.
//
// Unknown top-level types yield UnknownEvent. Result lines are a closed
// family: an unmodeled subtype yields *UnknownResultError so the caller
// can treat the protocol change as fatal. Anything else that fails to
// conform yields *ParseError, which callers should skip at debug level.
func UnmarshalEvent(data []byte) (Event, error) {
	var base struct {
		Type    string `json:"type"`
		Subtype string `json:"subtype"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, &ParseError{Cause: err, Line: string(data)}
	}
	if base.Type == "" {
		return nil, &ParseError{Message: "missing type field", Line: string(data)}
	}

	switch EventType(base.Type) {
	case EventTypeAssistant:
		var ev AssistantEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, &ParseError{Cause: err, Line: string(data)}
		}
		return ev, nil
	case EventTypeResult:
		if base.Subtype == "" {
			return nil, &ParseError{Message: "result missing subtype", Line: string(data)}
		}
		if base.Subtype != ResultSubtypeSuccess {
			return nil, &UnknownResultError{Subtype: base.Subtype}
		}
		var res SuccessResult
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, &ParseError{Cause: err, Line: string(data)}
		}
		return ResultEvent{Result: res}, nil
	default:
		return UnknownEvent{Type: base.Type}, nil
	}
}
