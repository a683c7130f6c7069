package engine

import (
	"context"
	"time"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/genricoloni/mprisline/internal/evaluator"
	"github.com/genricoloni/mprisline/internal/registry"
	"github.com/genricoloni/mprisline/internal/scroll"
	"go.uber.org/zap"
)

// Engine drives the status line.
// Every tick it applies queued commands, refreshes player state, advances the
// scroll engine and renders the display format.
type Engine struct {
	logger    *zap.Logger
	cfg       domain.Config
	backend   domain.Backend
	registry  *registry.Registry
	scroller  *scroll.Engine
	evaluator *evaluator.Evaluator
	commands  domain.CommandSource
	renderer  domain.Renderer

	tick         uint64
	lastRefresh  uint64
	forceRefresh bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewEngine creates a new tick driver
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	backend domain.Backend,
	reg *registry.Registry,
	scroller *scroll.Engine,
	eval *evaluator.Evaluator,
	commands domain.CommandSource,
	renderer domain.Renderer,
) *Engine {
	return &Engine{
		logger:    logger,
		cfg:       cfg,
		backend:   backend,
		registry:  reg,
		scroller:  scroller,
		evaluator: eval,
		commands:  commands,
		renderer:  renderer,
	}
}

// Start launches the tick loop in a goroutine.
// It returns immediately (non-blocking). The loop outlives ctx and runs until Stop.
func (e *Engine) Start(ctx context.Context) error {
	interval := e.cfg.GetTickInterval()
	e.logger.Info("Engine starting...",
		zap.Duration("tick", interval),
		zap.Uint("refreshTicks", e.cfg.GetRefreshTicks()))

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.runLoop(loopCtx, interval)
	return nil
}

// runLoop renders one frame immediately, then one per interval
func (e *Engine) runLoop(ctx context.Context, interval time.Duration) {
	defer close(e.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick performs one iteration of the loop
func (e *Engine) Tick(ctx context.Context) {
	e.tick++

	for _, cmd := range e.commands.Drain() {
		if err := e.registry.ApplyCommand(ctx, cmd); err != nil {
			e.logger.Warn("Failed to apply command",
				zap.String("command", string(cmd)),
				zap.Error(err))
		}
	}

	e.refresh(ctx)
	e.scroller.Advance(e.tick)

	var fragments []domain.Fragment
	if e.registry.Len() == 0 {
		fragments = []domain.Fragment{{Text: e.cfg.GetEmptyMessage()}}
	} else {
		fragments = e.evaluator.Evaluate(e.registry, e.scroller)
	}

	if err := e.renderer.Render(fragments); err != nil {
		e.logger.Error("Failed to render status line", zap.Error(err))
	}
}

// refresh reloads the whole player list when due and otherwise only the focused player
func (e *Engine) refresh(ctx context.Context) {
	every := uint64(max(e.cfg.GetRefreshTicks(), 1))

	if e.forceRefresh || e.lastRefresh == 0 || e.tick-e.lastRefresh >= every {
		players, err := e.backend.Players(ctx)
		if err != nil {
			e.logger.Warn("Player refresh incomplete", zap.Error(err))
		}
		e.registry.Refresh(players)
		e.lastRefresh = e.tick
		e.forceRefresh = false

		e.logger.Debug("Player list refreshed", zap.Int("players", len(players)))
		return
	}

	focused, _, ok := e.registry.Focused()
	if !ok {
		return
	}

	snapshot, err := e.backend.Player(ctx, focused.ID)
	if err != nil {
		e.logger.Debug("Focused player query failed, refreshing next tick",
			zap.String("player", focused.ID),
			zap.Error(err))
		e.registry.Remove(focused.ID)
		e.forceRefresh = true
		return
	}
	e.registry.Update(snapshot)
}

// Stop cancels the tick loop and waits for it to exit
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	if e.cancel == nil {
		return nil
	}
	e.cancel()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
