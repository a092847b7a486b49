package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/chatmonitor/internal/core"
)

func TestFrameSnapshot(t *testing.T) {
	got := Frame("Ricky", &core.Event{Kind: core.EventSnapshot, Text: "[Marty]:\thola"})

	want := "<Ricky> - Chat\n[Marty]:\thola\n" + strings.Repeat("-", 24) + "\n"
	if got != want {
		t.Fatalf("unexpected frame:\n got %q\nwant %q", got, want)
	}
}

func TestFrameHidesBookkeepingEvents(t *testing.T) {
	for _, kind := range []core.EventKind{core.EventTypingStarted, core.EventTypingFinished, core.EventPosted} {
		if got := Frame("Ricky", &core.Event{Kind: kind}); got != "" {
			t.Fatalf("%v: expected no frame, got %q", kind, got)
		}
	}
}

func TestFrameError(t *testing.T) {
	ev := &core.Event{Kind: core.EventError, Error: &core.CoreError{Code: core.ErrCodeEmptyAuthor, Op: "Append", Err: core.ErrEmptyAuthor}}
	if got := Frame("Ricky", ev); !strings.Contains(got, "author must not be empty") {
		t.Fatalf("unexpected frame %q", got)
	}
}

func TestRendererWritesUntilEventsClosed(t *testing.T) {
	client := core.NewClient("r", "Ricky", nil)
	var buf bytes.Buffer
	r := NewRenderer(client, NewSyncWriter(&buf), nil)

	client.Events <- &core.Event{Kind: core.EventSnapshot, Text: ""}
	client.Events <- &core.Event{Kind: core.EventTyping, Text: "ab"}
	client.Events <- &core.Event{Kind: core.EventPosted}
	close(client.Events)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("renderer did not stop after events closed")
	}

	out := buf.String()
	if !strings.Contains(out, "<Ricky> - Chat\n") || !strings.Contains(out, "<Ricky> > ab\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRendererReportsWriteError(t *testing.T) {
	client := core.NewClient("r", "Ricky", nil)
	r := NewRenderer(client, failingWriter{}, nil)

	client.Events <- &core.Event{Kind: core.EventSnapshot}

	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected write error")
	}
}

func TestRendererStopsOnCancel(t *testing.T) {
	client := core.NewClient("r", "Ricky", nil)
	r := NewRenderer(client, &bytes.Buffer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
}
