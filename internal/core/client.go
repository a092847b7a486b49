package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Client is a chat participant: it repeatedly reads the shared log, then
// posts a message of its own.
type Client struct {
	ID       string
	Name     string
	Composer Composer
	Events   chan *Event
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id, name string, composer Composer) *Client {
	if name == "" {
		name = id
	}
	return &Client{
		ID:       id,
		Name:     name,
		Composer: composer,
		Events:   make(chan *Event, 32),
	}
}

// LoopConfig paces a client's read/post loop.
type LoopConfig struct {
	// Interval is the pause after each posted message.
	Interval time.Duration
	// TypingDelay is the pause after each typed character.
	TypingDelay time.Duration
}

// Run reads and posts until ctx is cancelled. It returns nil on cancellation.
func (c *Client) Run(ctx context.Context, ml *MessageLog, cfg LoopConfig, logger *zerolog.Logger) error {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	clog := logger.With().Str("client_id", c.ID).Str("user", c.Name).Logger()
	clog.Debug().Msg("client started")
	defer clog.Debug().Msg("client stopped")

	for {
		if err := c.step(ctx, ml, cfg, &clog); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if cfg.Interval > 0 {
			if err := sleep(ctx, cfg.Interval); err != nil {
				return nil
			}
		} else if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Client) step(ctx context.Context, ml *MessageLog, cfg LoopConfig, logger *zerolog.Logger) error {
	c.emit(&Event{Kind: EventSnapshot, Text: ml.Read()})

	if c.Composer == nil {
		return nil
	}
	cmd := c.Composer.Next()

	var err error
	switch cmd.Kind {
	case CommandType:
		c.emit(&Event{Kind: EventTypingStarted})
		err = ml.AppendTyped(ctx, c.Name, cmd.source(), cfg.TypingDelay, func(partial string) {
			c.emit(&Event{Kind: EventTyping, Text: partial})
		})
		c.emit(&Event{Kind: EventTypingFinished})
	default:
		err = ml.Append(c.Name, cmd.Text)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn().Err(err).Msg("append failed")
		var ce *CoreError
		if !errors.As(err, &ce) {
			ce = coreError("", "Append", err)
		}
		c.emit(&Event{Kind: EventError, Error: ce})
		return nil
	}

	logger.Debug().Msg("message posted")
	c.emit(&Event{Kind: EventPosted})
	return nil
}

// emit never blocks: a slow consumer loses events.
func (c *Client) emit(ev *Event) {
	ev.User = c.Name
	ev.At = time.Now()
	select {
	case c.Events <- ev:
	default:
	}
}
