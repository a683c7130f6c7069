package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/genricoloni/mprisline/internal/command"
	"github.com/genricoloni/mprisline/internal/config"
	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/genricoloni/mprisline/internal/engine"
	"github.com/genricoloni/mprisline/internal/evaluator"
	"github.com/genricoloni/mprisline/internal/format"
	"github.com/genricoloni/mprisline/internal/mpris"
	"github.com/genricoloni/mprisline/internal/registry"
	"github.com/genricoloni/mprisline/internal/render"
	"github.com/genricoloni/mprisline/internal/scroll"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the program and returns its exit code
func run(args []string) int {
	flags, err := config.ParseFlags(filepath.Base(os.Args[0]), args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}

	logger, err := newLogger(flags.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	defer logger.Sync()

	cfg, err := config.NewAppConfig(logger, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	if flags.Command != "" {
		return runClient(cfg, flags.Command)
	}

	app := fx.New(
		AppOptions(logger, cfg),
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	// Wait for interrupt signal
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		return 1
	}
	return 0
}

// runClient forwards a single command to the running daemon
func runClient(cfg domain.Config, token string) int {
	cmd, ok := command.Parse(token)
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q\n", token)
		return 2
	}
	if err := command.Send(cfg.GetPipePath(), cmd); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

// AppOptions assembles the daemon's dependency graph
func AppOptions(logger *zap.Logger, cfg *config.AppConfig) fx.Option {
	return fx.Options(
		fx.Supply(logger),
		fx.Provide(
			func() domain.Config { return cfg },
			mpris.NewBackend,
			func(b *mpris.Backend) domain.Backend { return b },
			func(b domain.Backend) domain.Controller { return b },
			command.NewQueue,
			func(q *command.Queue) domain.CommandSource { return q },
			newListener,
			newRenderer,
			newEvaluator,
			registry.NewRegistry,
			scroll.NewEngine,
			engine.NewEngine,
		),
		fx.Invoke(registerHooks),
	)
}

// newLogger creates a new zap logger instance
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newListener(logger *zap.Logger, cfg domain.Config, queue *command.Queue) *command.Listener {
	return command.NewListener(logger, cfg.GetPipePath(), queue)
}

func newRenderer(cfg domain.Config, logger *zap.Logger) (domain.Renderer, error) {
	return render.NewRenderer(cfg, logger)
}

// newEvaluator compiles both configured formats
func newEvaluator(cfg domain.Config) (*evaluator.Evaluator, error) {
	display, err := format.Parse(cfg.GetDisplayFormat(), format.Display)
	if err != nil {
		return nil, fmt.Errorf("invalid display format: %w", err)
	}
	metadata, err := format.Parse(cfg.GetMetadataFormat(), format.Metadata)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata format: %w", err)
	}
	return evaluator.NewEvaluator(display, metadata, cfg.GetIcons())
}

// registerHooks sets up application lifecycle hooks.
// fx stops components in reverse order: engine first, then the bus, then the pipe.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	listener *command.Listener,
	backend *mpris.Backend,
	eng *engine.Engine,
) {
	lc.Append(fx.Hook{
		OnStart: listener.Start,
		OnStop:  listener.Stop,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := backend.Connect(ctx); err != nil {
				logger.Warn("D-Bus unavailable, showing no players until it comes up", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return backend.Close()
		},
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("mprisline started")
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return eng.Stop(ctx)
		},
	})
}
