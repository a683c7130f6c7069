package registry

import (
	"context"
	"fmt"

	"github.com/genricoloni/mprisline/internal/domain"
	"go.uber.org/zap"
)

// Direction selects the cycling direction
type Direction int

const (
	Next Direction = iota
	Prev
)

const noFocus = -1

// Registry holds the known players in discovery order and which one is focused.
// It is owned by the tick loop and is not safe for concurrent use.
type Registry struct {
	logger     *zap.Logger
	controller domain.Controller
	players    []domain.PlayerSnapshot
	focused    int
}

// NewRegistry creates an empty registry that forwards playback commands to controller
func NewRegistry(logger *zap.Logger, controller domain.Controller) *Registry {
	return &Registry{
		logger:     logger,
		controller: controller,
		focused:    noFocus,
	}
}

// Refresh replaces the player list.
// Focus follows the previously focused player's ID when it is still present,
// otherwise it falls back to the first player (or to nothing if the list is empty).
func (r *Registry) Refresh(snapshots []domain.PlayerSnapshot) {
	previous := ""
	if r.focused != noFocus {
		previous = r.players[r.focused].ID
	}

	r.players = append(r.players[:0:0], snapshots...)

	switch {
	case len(r.players) == 0:
		r.focused = noFocus
	case previous != "":
		r.focused = 0
		for i, p := range r.players {
			if p.ID == previous {
				r.focused = i
				break
			}
		}
	default:
		r.focused = 0
	}
}

// Update replaces the snapshot whose ID matches snapshot.ID.
// It reports whether such a player was found.
func (r *Registry) Update(snapshot domain.PlayerSnapshot) bool {
	for i, p := range r.players {
		if p.ID == snapshot.ID {
			r.players[i] = snapshot
			return true
		}
	}
	return false
}

// Remove drops the player with id until the next Refresh.
// Focus stays on the same player, or moves to the one that took the removed
// player's place. It reports whether the player was found.
func (r *Registry) Remove(id string) bool {
	for i, p := range r.players {
		if p.ID != id {
			continue
		}

		r.players = append(r.players[:i], r.players[i+1:]...)
		switch {
		case len(r.players) == 0:
			r.focused = noFocus
		case i < r.focused:
			r.focused--
		case i == r.focused && r.focused == len(r.players):
			r.focused = 0
		}
		return true
	}
	return false
}

// Cycle moves focus one player forward or backward, wrapping around at both ends.
// It does nothing on an empty registry.
func (r *Registry) Cycle(dir Direction) {
	n := len(r.players)
	if n == 0 {
		return
	}

	switch dir {
	case Next:
		r.focused = (r.focused + 1) % n
	case Prev:
		r.focused = (r.focused - 1 + n) % n
	}
}

// ApplyCommand executes one command.
// Player cycling changes focus; playback commands are sent to the focused player.
func (r *Registry) ApplyCommand(ctx context.Context, cmd domain.Command) error {
	switch cmd {
	case domain.CommandNextPlayer:
		r.Cycle(Next)
		return nil
	case domain.CommandPrevPlayer:
		r.Cycle(Prev)
		return nil
	case domain.CommandPlay, domain.CommandPause, domain.CommandStop,
		domain.CommandPrev, domain.CommandNext, domain.CommandPlayPause:
	default:
		r.logger.Debug("Ignoring unknown command", zap.String("command", string(cmd)))
		return nil
	}

	focused, _, ok := r.Focused()
	if !ok {
		return nil
	}

	if err := r.controller.Control(ctx, focused.ID, cmd); err != nil {
		return fmt.Errorf("failed to send %s to %s: %w", cmd, focused.ID, err)
	}

	r.logger.Debug("Command forwarded",
		zap.String("command", string(cmd)),
		zap.String("player", focused.ID))
	return nil
}

// Focused returns the focused player and its index
func (r *Registry) Focused() (domain.PlayerSnapshot, int, bool) {
	if r.focused == noFocus {
		return domain.PlayerSnapshot{}, noFocus, false
	}
	return r.players[r.focused], r.focused, true
}

// Len returns the number of players
func (r *Registry) Len() int {
	return len(r.players)
}

// Players returns a copy of the player list
func (r *Registry) Players() []domain.PlayerSnapshot {
	return append([]domain.PlayerSnapshot(nil), r.players...)
}
