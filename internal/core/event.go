package core

import "time"

// EventKind is a notification a client emits to whatever renders it.
type EventKind int

const (
	// EventSnapshot carries the rendered log as read by the client.
	EventSnapshot EventKind = iota
	// EventTypingStarted marks the start of a typed message.
	EventTypingStarted
	// EventTyping carries the partial body of a message being typed.
	EventTyping
	// EventTypingFinished marks the end of a typed message, posted or not.
	EventTypingFinished
	// EventPosted confirms that the client's message is in the log.
	EventPosted
	// EventError reports a failed append.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventSnapshot:
		return "snapshot"
	case EventTypingStarted:
		return "typing_started"
	case EventTyping:
		return "typing"
	case EventTypingFinished:
		return "typing_finished"
	case EventPosted:
		return "posted"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event describes what happened to a client.
type Event struct {
	Kind  EventKind
	User  string
	Text  string
	Error *CoreError
	At    time.Time
}
