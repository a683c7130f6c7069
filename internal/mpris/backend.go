package mpris

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/mprisline/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	busPrefix       = "org.mpris.MediaPlayer2."
	objectPath      = "/org/mpris/MediaPlayer2"
	rootInterface   = "org.mpris.MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
)

// ErrNotConnected is returned while no session bus connection is available
var ErrNotConnected = errors.New("not connected to the session bus")

var methods = map[domain.Command]string{
	domain.CommandPlay:      "Play",
	domain.CommandPause:     "Pause",
	domain.CommandStop:      "Stop",
	domain.CommandPrev:      "Previous",
	domain.CommandNext:      "Next",
	domain.CommandPlayPause: "PlayPause",
}

// Backend reads player state from MPRIS services on the session bus
type Backend struct {
	logger *zap.Logger
	dial   func() (DBusClient, error)

	mu    sync.Mutex
	conn  DBusClient // Interface for testability
	order []string   // bus names in discovery order
}

// NewBackend creates a backend that dials the session bus on Connect
func NewBackend(logger *zap.Logger) *Backend {
	return &Backend{
		logger: logger,
		dial: func() (DBusClient, error) {
			c, err := NewStdDBusClient()
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// Connect dials the session bus. A failed dial is retried on the next player refresh.
func (b *Backend) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := b.dial()
	if err != nil {
		return fmt.Errorf("session bus connection failed: %w", err)
	}
	b.conn = conn
	b.logger.Info("Connected to session bus")
	return nil
}

// Close releases the bus connection
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

// connection returns the live connection, optionally dialing a new one
func (b *Backend) connection(ctx context.Context, redial bool) (DBusClient, error) {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()

	if conn != nil {
		return conn, nil
	}
	if !redial {
		return nil, ErrNotConnected
	}
	if err := b.Connect(ctx); err != nil {
		return nil, errors.Join(ErrNotConnected, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn, nil
}

// drop forgets a connection that stopped answering so the next refresh redials
func (b *Backend) drop(conn DBusClient) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != conn {
		return
	}
	if err := conn.Close(); err != nil {
		b.logger.Debug("Failed to close D-Bus connection", zap.Error(err))
	}
	b.conn = nil
}

// Players returns a snapshot of every MPRIS player on the bus.
// Players keep their position across calls; new ones are appended in bus order.
func (b *Backend) Players(ctx context.Context) ([]domain.PlayerSnapshot, error) {
	conn, err := b.connection(ctx, true)
	if err != nil {
		return nil, err
	}

	names, err := conn.ListNames()
	if err != nil {
		b.drop(conn)
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var found []string
	for _, name := range names {
		if strings.HasPrefix(name, busPrefix) {
			found = append(found, name)
		}
	}

	b.mu.Lock()
	b.order = mergeOrder(b.order, found)
	order := slices.Clone(b.order)
	b.mu.Unlock()

	var errs error
	snapshots := make([]domain.PlayerSnapshot, 0, len(order))
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return snapshots, multierr.Append(errs, err)
		}

		snap, err := b.fetchPlayer(conn, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		snapshots = append(snapshots, snap)
	}

	b.logger.Debug("Player detection complete",
		zap.Int("count", len(snapshots)),
		zap.Int("failed", len(multierr.Errors(errs))))
	return snapshots, errs
}

// Player returns a fresh snapshot of one player
func (b *Backend) Player(ctx context.Context, playerID string) (domain.PlayerSnapshot, error) {
	conn, err := b.connection(ctx, false)
	if err != nil {
		return domain.PlayerSnapshot{}, err
	}
	return b.fetchPlayer(conn, playerID)
}

// Control invokes the MPRIS method matching cmd on playerID
func (b *Backend) Control(ctx context.Context, playerID string, cmd domain.Command) error {
	method, ok := methods[cmd]
	if !ok {
		return fmt.Errorf("command %q has no MPRIS method", cmd)
	}

	conn, err := b.connection(ctx, false)
	if err != nil {
		return err
	}

	if err := conn.Call(ctx, playerID, objectPath, playerInterface+"."+method); err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	return nil
}

// fetchPlayer retrieves status, identity, metadata and position of a player
func (b *Backend) fetchPlayer(conn DBusClient, name string) (domain.PlayerSnapshot, error) {
	statusVariant, err := conn.GetProperty(name, objectPath, playerInterface+".PlaybackStatus")
	if err != nil {
		return domain.PlayerSnapshot{}, fmt.Errorf("failed to get playback status of %s: %w", name, err)
	}
	status, ok := statusVariant.Value().(string)
	if !ok {
		return domain.PlayerSnapshot{}, fmt.Errorf("invalid playback status format from %s", name)
	}

	// SAFE CAST: Some players may return nil or unexpected types if not playing anything
	var metadata map[string]dbus.Variant
	if variant, err := conn.GetProperty(name, objectPath, playerInterface+".Metadata"); err == nil {
		if m, ok := variant.Value().(map[string]dbus.Variant); ok {
			metadata = m
		} else {
			b.logger.Debug("Metadata variant is not a map, skipping", zap.String("player", name))
		}
	}

	snap := b.parseMetadata(metadata, status)
	snap.ID = name
	snap.Name = strings.TrimPrefix(name, busPrefix)

	if variant, err := conn.GetProperty(name, objectPath, rootInterface+".Identity"); err == nil {
		if identity, ok := variant.Value().(string); ok && identity != "" {
			snap.Name = identity
		}
	}

	if variant, err := conn.GetProperty(name, objectPath, playerInterface+".Position"); err == nil {
		if us, ok := toInt64(variant.Value()); ok {
			snap.Position = microseconds(us)
			snap.HasPosition = true
		}
	}

	return snap, nil
}

// parseMetadata converts MPRIS metadata to a player snapshot
func (b *Backend) parseMetadata(metadata map[string]dbus.Variant, status string) domain.PlayerSnapshot {
	var snap domain.PlayerSnapshot

	switch status {
	case "Playing":
		snap.Status = domain.StatusPlaying
	case "Paused":
		snap.Status = domain.StatusPaused
	default:
		snap.Status = domain.StatusStopped
	}

	if metadata == nil {
		return snap
	}

	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			snap.Title = title
		}
	}

	if albumVar, ok := metadata["xesam:album"]; ok {
		if album, ok := albumVar.Value().(string); ok {
			snap.Album = album
		}
	}

	snap.Artists = b.stringList(metadata, "xesam:artist")
	snap.AlbumArtists = b.stringList(metadata, "xesam:albumArtist")

	if trackVar, ok := metadata["xesam:trackNumber"]; ok {
		if n, ok := toInt64(trackVar.Value()); ok && n > 0 {
			snap.TrackNumber = int(n)
		}
	}

	if lengthVar, ok := metadata["mpris:length"]; ok {
		if us, ok := toInt64(lengthVar.Value()); ok && us > 0 {
			snap.Length = microseconds(us)
		}
	}

	return snap
}

// stringList reads a tag that should be a list of strings but is a plain string on some players
func (b *Backend) stringList(metadata map[string]dbus.Variant, key string) []string {
	v, ok := metadata[key]
	if !ok {
		return nil
	}

	switch values := v.Value().(type) {
	case []string:
		return values
	case string:
		return []string{values}
	default:
		// Some non-compliant players may use unexpected types
		b.logger.Debug("Unexpected tag type in metadata",
			zap.String("key", key),
			zap.String("type", fmt.Sprintf("%T", v.Value())))
		return nil
	}
}

// mergeOrder keeps known names in place, drops vanished ones and appends new ones
func mergeOrder(known, current []string) []string {
	merged := make([]string, 0, len(current))
	for _, name := range known {
		if slices.Contains(current, name) {
			merged = append(merged, name)
		}
	}
	for _, name := range current {
		if !slices.Contains(merged, name) {
			merged = append(merged, name)
		}
	}
	return merged
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func microseconds(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
