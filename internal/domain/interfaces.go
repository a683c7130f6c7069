package domain

import (
	"context"
	"time"
)

// Controller forwards playback commands to a specific player
type Controller interface {
	// Control sends cmd to the player identified by playerID.
	// Only playback commands (play, pause, stop, prev, next, play-pause) are meaningful.
	Control(ctx context.Context, playerID string, cmd Command) error
}

// Backend supplies player snapshots and accepts playback commands.
// Implementations should handle D-Bus/MPRIS communication
//
//go:generate mockgen -destination=mocks/backend_mock.go -package=mocks github.com/genricoloni/mprisline/internal/domain Backend
type Backend interface {
	Controller

	// Players returns a snapshot of every reachable player in discovery order.
	// Players that fail to answer are left out; the returned error describes them
	// and does not invalidate the returned slice.
	Players(ctx context.Context) ([]PlayerSnapshot, error)

	// Player returns a fresh snapshot of a single player
	Player(ctx context.Context, playerID string) (PlayerSnapshot, error)
}

// CommandSource yields commands received since the previous call
type CommandSource interface {
	// Drain returns all pending commands in arrival order and empties the source
	Drain() []Command
}

// Renderer turns the fragments of one tick into backend-specific output
type Renderer interface {
	Render(fragments []Fragment) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetDisplayFormat returns the display format source string
	GetDisplayFormat() string

	// GetMetadataFormat returns the metadata format source string
	GetMetadataFormat() string

	// GetRefreshTicks returns how many ticks to wait between player list refreshes
	GetRefreshTicks() uint

	// GetTickInterval returns the period of the render loop
	GetTickInterval() time.Duration

	// GetEmptyMessage returns the text shown when no player is available
	GetEmptyMessage() string

	// GetPipePath returns the path of the command FIFO
	GetPipePath() string

	// GetRenderer returns the name of the output renderer
	GetRenderer() string

	// GetIcons returns the glyph set for action and status blocks
	GetIcons() Icons
}
