package domain

import "time"

// PlayerStatus represents the current state of the media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// PlayerSnapshot is an immutable view of one player taken during a refresh.
// Absent text fields are empty strings, absent lists are empty and an absent
// track number is zero.
type PlayerSnapshot struct {
	// ID is the player's bus name (e.g. "org.mpris.MediaPlayer2.spotify")
	ID string
	// Name is the human readable player identity
	Name string
	// Status is the current playback status
	Status PlayerStatus

	Artists      []string
	Album        string
	AlbumArtists []string
	Title        string
	TrackNumber  int

	// Position is only meaningful when HasPosition is set
	Position    time.Duration
	HasPosition bool
	// Length is zero when unknown
	Length time.Duration
}

// Command is a control token delivered through the command channel
type Command string

const (
	CommandPlay       Command = "play"
	CommandPause      Command = "pause"
	CommandStop       Command = "stop"
	CommandPrev       Command = "prev"
	CommandNext       Command = "next"
	CommandPrevPlayer Command = "prev-player"
	CommandNextPlayer Command = "next-player"
	CommandPlayPause  Command = "play-pause"
)

// Commands lists every accepted command token in a stable order
var Commands = []Command{
	CommandPlay,
	CommandPause,
	CommandStop,
	CommandPrev,
	CommandNext,
	CommandPrevPlayer,
	CommandNextPlayer,
	CommandPlayPause,
}

// Fragment is one piece of a rendered status line.
// An empty Action means the text is not clickable.
// Fixed marks a scroll window whose padding is part of its width.
type Fragment struct {
	Text   string
	Action Command
	Fixed  bool
}

// Icons holds the glyphs used by the action and status blocks
type Icons struct {
	Prev       string `yaml:"prev"`
	Next       string `yaml:"next"`
	Play       string `yaml:"play"`
	Pause      string `yaml:"pause"`
	Stop       string `yaml:"stop"`
	PrevPlayer string `yaml:"prev_player"`
	NextPlayer string `yaml:"next_player"`
}

// DefaultIcons returns the built-in glyph set
func DefaultIcons() Icons {
	return Icons{
		Prev:       "⏮",
		Next:       "⏭",
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "⏹",
		PrevPlayer: "◂",
		NextPlayer: "▸",
	}
}
