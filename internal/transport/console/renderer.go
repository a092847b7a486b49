// Package console renders chat clients as text windows on a shared writer.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatmonitor/internal/core"
)

// SyncWriter serializes writes from several renderers onto one writer.
type SyncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewSyncWriter wraps out.
func NewSyncWriter(out io.Writer) *SyncWriter {
	return &SyncWriter{out: out}
}

func (w *SyncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// Renderer bridges a core.Client's events to a text window.
type Renderer struct {
	client *core.Client
	out    io.Writer
	log    *zerolog.Logger
}

// NewRenderer builds a renderer for client writing to out.
func NewRenderer(client *core.Client, out io.Writer, logger *zerolog.Logger) *Renderer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Renderer{client: client, out: out, log: logger}
}

// Run writes one frame per event until the client's event channel is closed
// or ctx is cancelled.
func (r *Renderer) Run(ctx context.Context) error {
	for {
		select {
		case event, ok := <-r.client.Events:
			if !ok {
				return nil
			}
			frame := Frame(r.client.Name, event)
			if frame == "" {
				continue
			}
			if _, err := io.WriteString(r.out, frame); err != nil {
				r.log.Error().Err(err).Str("client_id", r.client.ID).Msg("write console frame")
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Frame renders a single event for the window titled name.
// Events without a visible effect render as "".
func Frame(name string, event *core.Event) string {
	switch event.Kind {
	case core.EventSnapshot:
		var b strings.Builder
		fmt.Fprintf(&b, "<%s> - Chat\n", name)
		if event.Text != "" {
			b.WriteString(event.Text)
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("-", 24))
		b.WriteByte('\n')
		return b.String()
	case core.EventTyping:
		return fmt.Sprintf("<%s> > %s\n", name, event.Text)
	case core.EventError:
		msg := "unknown error"
		if event.Error != nil {
			msg = event.Error.Error()
		}
		return fmt.Sprintf("<%s> ! %s\n", name, msg)
	default:
		return ""
	}
}
