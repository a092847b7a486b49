package core

import (
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func newTestLog(t *testing.T, capacity int, opts ...Option) *MessageLog {
	t.Helper()

	ml, err := NewMessageLog(capacity, opts...)
	if err != nil {
		t.Fatalf("new message log: %v", err)
	}
	return ml
}

func mustAppend(t *testing.T, ml *MessageLog, author, body string) {
	t.Helper()

	if err := ml.Append(author, body); err != nil {
		t.Fatalf("append %s/%s: %v", author, body, err)
	}
}
