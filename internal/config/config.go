package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/genricoloni/mprisline/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultDisplayFormat  = "[prev] [play-pause] [next] [info] ┃ [metadata]"
	defaultMetadataFormat = "<[artist] - >[title]"
	defaultRefreshTicks   = 10
	defaultTick           = 300 * time.Millisecond
	defaultEmptyMessage   = " no music playing"
	defaultRenderer       = "polybar"
)

// settings is the layered configuration, also the schema of the YAML file
type settings struct {
	DisplayFormat  string        `yaml:"display_format"`
	MetadataFormat string        `yaml:"metadata_format"`
	RefreshTicks   uint          `yaml:"refresh_ticks"`
	Tick           time.Duration `yaml:"tick"`
	EmptyMessage   string        `yaml:"empty_msg"`
	Pipe           string        `yaml:"pipe"`
	Renderer       string        `yaml:"renderer"`
	Icons          domain.Icons  `yaml:"icons"`
}

// AppConfig holds application configuration
type AppConfig struct {
	logger *zap.Logger
	s      settings
}

// NewAppConfig merges defaults, the YAML file, environment variables and flags,
// in increasing order of precedence
func NewAppConfig(logger *zap.Logger, flags *Flags) (*AppConfig, error) {
	s := settings{
		DisplayFormat:  defaultDisplayFormat,
		MetadataFormat: defaultMetadataFormat,
		RefreshTicks:   defaultRefreshTicks,
		Tick:           defaultTick,
		EmptyMessage:   defaultEmptyMessage,
		Pipe:           defaultPipePath(),
		Renderer:       defaultRenderer,
		Icons:          domain.DefaultIcons(),
	}

	path, explicit := flags.ConfigPath, flags.ConfigPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if err := loadFile(path, &s); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else {
		logger.Debug("Config file loaded", zap.String("path", path))
	}

	applyEnv(logger, &s)
	applyFlags(flags, &s)

	// Expand path if it contains ~ or environment variables
	s.Pipe = expandPath(s.Pipe)

	if s.Tick <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %v", s.Tick)
	}

	logger.Info("Configuration loaded",
		zap.String("displayFormat", s.DisplayFormat),
		zap.String("metadataFormat", s.MetadataFormat),
		zap.Uint("refreshTicks", s.RefreshTicks),
		zap.Duration("tick", s.Tick),
		zap.String("pipe", s.Pipe),
		zap.String("renderer", s.Renderer))

	return &AppConfig{logger: logger, s: s}, nil
}

// loadFile overlays the keys present in the YAML file at path onto s
func loadFile(path string, s *settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(logger *zap.Logger, s *settings) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("MPRISLINE_DISPLAY_FORMAT", &s.DisplayFormat)
	setString("MPRISLINE_METADATA_FORMAT", &s.MetadataFormat)
	setString("MPRISLINE_EMPTY_MSG", &s.EmptyMessage)
	setString("MPRISLINE_PIPE", &s.Pipe)
	setString("MPRISLINE_RENDERER", &s.Renderer)

	if v := os.Getenv("MPRISLINE_REFRESH_TICKS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 0); err == nil {
			s.RefreshTicks = uint(n)
		} else {
			logger.Warn("Ignoring invalid MPRISLINE_REFRESH_TICKS", zap.String("value", v))
		}
	}

	if v := os.Getenv("MPRISLINE_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.Tick = d
		} else {
			logger.Warn("Ignoring invalid MPRISLINE_TICK", zap.String("value", v))
		}
	}
}

func applyFlags(f *Flags, s *settings) {
	if f.changed("display-format") {
		s.DisplayFormat = f.DisplayFormat
	}
	if f.changed("metadata-format") {
		s.MetadataFormat = f.MetadataFormat
	}
	if f.changed("refresh-ticks") {
		s.RefreshTicks = f.RefreshTicks
	}
	if f.changed("tick") {
		s.Tick = f.Tick
	}
	if f.changed("empty-msg") {
		s.EmptyMessage = f.EmptyMessage
	}
	if f.changed("pipe") {
		s.Pipe = f.Pipe
	}
	if f.changed("renderer") {
		s.Renderer = f.Renderer
	}
}

func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mprisline", "config.yaml")
}

func defaultPipePath() string {
	user := os.Getenv("USER")
	if user == "" {
		user = strconv.Itoa(os.Getuid())
	}
	return filepath.Join(os.TempDir(), "mprisline."+user)
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetDisplayFormat returns the display format source
func (c *AppConfig) GetDisplayFormat() string {
	return c.s.DisplayFormat
}

// GetMetadataFormat returns the metadata format source
func (c *AppConfig) GetMetadataFormat() string {
	return c.s.MetadataFormat
}

// GetRefreshTicks returns the number of ticks between player list refreshes
func (c *AppConfig) GetRefreshTicks() uint {
	return c.s.RefreshTicks
}

// GetTickInterval returns the render period
func (c *AppConfig) GetTickInterval() time.Duration {
	return c.s.Tick
}

// GetEmptyMessage returns the text shown without players
func (c *AppConfig) GetEmptyMessage() string {
	return c.s.EmptyMessage
}

// GetPipePath returns the command FIFO path
func (c *AppConfig) GetPipePath() string {
	return c.s.Pipe
}

// GetRenderer returns the renderer name
func (c *AppConfig) GetRenderer() string {
	return c.s.Renderer
}

// GetIcons returns the glyph set
func (c *AppConfig) GetIcons() domain.Icons {
	return c.s.Icons
}
