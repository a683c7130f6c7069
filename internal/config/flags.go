package config

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// Flags holds the parsed command line
type Flags struct {
	DisplayFormat  string
	MetadataFormat string
	RefreshTicks   uint
	Tick           time.Duration
	EmptyMessage   string
	Pipe           string
	Renderer       string
	ConfigPath     string
	Debug          bool

	// Command is the optional positional argument selecting client mode
	Command string

	fs *flag.FlagSet
}

// ParseFlags parses args (without the program name).
// It returns flag.ErrHelp when help was requested.
func ParseFlags(name string, args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.DisplayFormat, "display-format", "f", defaultDisplayFormat, "display format of the status line")
	fs.StringVarP(&f.MetadataFormat, "metadata-format", "m", defaultMetadataFormat, "format of the [metadata] block")
	fs.UintVarP(&f.RefreshTicks, "refresh-ticks", "r", defaultRefreshTicks, "ticks between player list refreshes")
	fs.DurationVarP(&f.Tick, "tick", "t", defaultTick, "interval between two renders")
	fs.StringVar(&f.EmptyMessage, "empty-msg", defaultEmptyMessage, "text shown when no player is running")
	fs.StringVar(&f.Pipe, "pipe", defaultPipePath(), "command pipe <path>")
	fs.StringVar(&f.Renderer, "renderer", defaultRenderer, "output renderer: polybar, lemonbar, plain or tty")
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to YAML config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [command]\n\n", name)
		fmt.Fprintf(fs.Output(), "Commands: play pause stop prev next play-pause prev-player next-player\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		f.Command = rest[0]
	default:
		return nil, fmt.Errorf("expected at most one command, got %d", len(rest))
	}

	f.fs = fs
	return f, nil
}

// changed reports whether the flag was given explicitly
func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}
