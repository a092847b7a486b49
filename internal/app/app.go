package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/chatmonitor/internal/config"
	"github.com/vovakirdan/chatmonitor/internal/core"
	"github.com/vovakirdan/chatmonitor/internal/transport/console"
	"github.com/vovakirdan/chatmonitor/internal/utils"
)

// App wires together the shared log, its clients and their console windows.
type App struct {
	hub       *core.Hub
	renderers []*console.Renderer
	duration  time.Duration
	log       *zerolog.Logger
}

// New constructs the application with provided configuration.
// Every client window is rendered to out.
func New(cfg config.Config, logger *zerolog.Logger, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	lock, err := core.ParseTypingLock(cfg.TypingLock)
	if err != nil {
		return nil, err
	}
	scriptKind, err := cfg.ScriptKind()
	if err != nil {
		return nil, err
	}

	ml, err := core.NewMessageLog(cfg.Capacity, core.WithTypingLock(lock))
	if err != nil {
		return nil, fmt.Errorf("init message log: %w", err)
	}

	hub := core.NewHub(ml, core.LoopConfig{
		Interval:    cfg.ReadInterval,
		TypingDelay: cfg.TypingDelay,
	}, logger)

	shared := console.NewSyncWriter(out)
	renderers := make([]*console.Renderer, 0, len(cfg.Users))
	for _, user := range cfg.Users {
		var composer core.Composer
		if len(cfg.Script) > 0 {
			composer = core.NewScriptComposer(cfg.Script, scriptKind)
		} else {
			composer = core.NewRandomComposer(cfg.Letters, cfg.Alphabet, nil)
		}

		client := core.NewClient(utils.NewID(), strings.TrimSpace(user), composer)
		if err := hub.RegisterClient(client); err != nil {
			return nil, fmt.Errorf("register %s: %w", user, err)
		}
		renderers = append(renderers, console.NewRenderer(client, shared, logger))
		logger.Debug().Str("client_id", client.ID).Str("user", client.Name).Msg("client registered")
	}

	return &App{
		hub:       hub,
		renderers: renderers,
		duration:  cfg.Duration,
		log:       logger,
	}, nil
}

// Log exposes the shared message log.
func (a *App) Log() *core.MessageLog {
	return a.hub.Log()
}

// Run drives every client until ctx is cancelled, the configured duration
// elapses or a window fails to render.
func (a *App) Run(ctx context.Context) error {
	if a.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.hub.Run(gctx)
	})
	for _, r := range a.renderers {
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	err := g.Wait()
	a.log.Info().Msg("chat closed")
	return err
}
