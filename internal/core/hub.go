package core

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrHubRunning is returned when clients are registered on a running hub.
var ErrHubRunning = errors.New("hub is already running")

// Hub owns the shared message log and runs every registered client against it.
type Hub struct {
	log     *MessageLog
	loop    LoopConfig
	logger  *zerolog.Logger
	mu      sync.Mutex
	clients []*Client
	running bool
}

// NewHub creates a hub around an existing log. A nil logger disables logging.
func NewHub(ml *MessageLog, loop LoopConfig, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:    ml,
		loop:   loop,
		logger: logger,
	}
}

// Log returns the shared message log.
func (h *Hub) Log() *MessageLog {
	return h.log
}

// RegisterClient adds a client. Clients must be registered before Run.
func (h *Hub) RegisterClient(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return ErrHubRunning
	}
	h.clients = append(h.clients, c)
	return nil
}

// Clients returns the registered clients.
func (h *Hub) Clients() []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Client, len(h.clients))
	copy(out, h.clients)
	return out
}

// Run starts one goroutine per client and blocks until all of them stopped.
// Client event channels are closed when Run returns.
func (h *Hub) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrHubRunning
	}
	h.running = true
	clients := make([]*Client, len(h.clients))
	copy(clients, h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Int("clients", len(clients)).
		Int("capacity", h.log.Cap()).
		Str("typing_lock", h.log.TypingLock().String()).
		Msg("hub started")

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range clients {
		g.Go(func() error {
			defer close(c.Events)
			return c.Run(gctx, h.log, h.loop, h.logger)
		})
	}
	err := g.Wait()

	stats := h.log.Stats()
	h.logger.Info().
		Uint64("reads", stats.Reads).
		Uint64("appends", stats.Appends).
		Uint64("evictions", stats.Evictions).
		Msg("hub stopped")
	return err
}
