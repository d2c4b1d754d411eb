package gal

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultHeapSize        = 64 << 20
	DefaultHeapGranularity = 256
	DefaultFenceTimeout    = time.Second
)

// Config is passed to a backend when a renderer is created.
type Config struct {
	// AppName is reported to native drivers where they accept it.
	AppName string
	// Validation enables extra checks such as shader interface matching.
	Validation bool
	// Backend names the preferred backend; empty selects by priority.
	Backend string
	// HeapSize is the size of each memory heap arena in bytes.
	HeapSize uint64
	// HeapGranularity is the slot size of the linear sub-allocator.
	HeapGranularity uint64
	// FenceTimeout bounds waits the layer performs on its own behalf.
	FenceTimeout time.Duration
	// PluginDir is probed for plugin manifests when set.
	PluginDir string
	// Logger overrides the package logger for one renderer.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		AppName:         "gal",
		Validation:      true,
		HeapSize:        DefaultHeapSize,
		HeapGranularity: DefaultHeapGranularity,
		FenceTimeout:    DefaultFenceTimeout,
	}
}

// Log returns the logger of c, falling back to the package logger.
func (c *Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return Logger()
}

// configFile is the TOML form of Config.
type configFile struct {
	AppName         string `toml:"app_name"`
	Validation      *bool  `toml:"validation"`
	Backend         string `toml:"backend"`
	HeapSize        uint64 `toml:"heap_size"`
	HeapGranularity uint64 `toml:"heap_granularity"`
	FenceTimeout    string `toml:"fence_timeout"`
	PluginDir       string `toml:"plugin_dir"`
}

// ParseConfig decodes a TOML document on top of DefaultConfig. Unknown
// keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return cfg, fmt.Errorf("gal: parse config: %w", err)
	}
	if f.AppName != "" {
		cfg.AppName = f.AppName
	}
	if f.Validation != nil {
		cfg.Validation = *f.Validation
	}
	cfg.Backend = f.Backend
	cfg.PluginDir = f.PluginDir
	if f.HeapSize != 0 {
		cfg.HeapSize = f.HeapSize
	}
	if f.HeapGranularity != 0 {
		cfg.HeapGranularity = f.HeapGranularity
	}
	if f.FenceTimeout != "" {
		d, err := time.ParseDuration(f.FenceTimeout)
		if err != nil {
			return cfg, errorf(ErrInvalidArgument, "config fence_timeout: %v", err)
		}
		cfg.FenceTimeout = d
	}
	return cfg, cfg.validate()
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("gal: load config: %w", err)
	}
	return ParseConfig(data)
}

func (c *Config) validate() error {
	if c.HeapGranularity == 0 || c.HeapGranularity&(c.HeapGranularity-1) != 0 {
		return errorf(ErrInvalidArgument, "config: heap granularity %d is not a power of two", c.HeapGranularity)
	}
	if c.HeapSize < c.HeapGranularity || c.HeapSize&(c.HeapSize-1) != 0 {
		return errorf(ErrInvalidArgument, "config: heap size %d must be a power of two of at least one slot", c.HeapSize)
	}
	if c.FenceTimeout < 0 {
		return errorf(ErrInvalidArgument, "config: negative fence timeout")
	}
	return nil
}

// Option configures renderer creation.
//
// Example:
//
//	r, err := reg.CreateRenderer("null", gal.WithValidation(false))
type Option func(*Config)

// WithConfig replaces the whole configuration, typically one read by
// LoadConfig. Later options still apply on top.
func WithConfig(c Config) Option {
	return func(o *Config) {
		*o = c
	}
}

// WithAppName sets the application name.
func WithAppName(name string) Option {
	return func(o *Config) {
		o.AppName = name
	}
}

// WithValidation toggles validation.
func WithValidation(on bool) Option {
	return func(o *Config) {
		o.Validation = on
	}
}

// WithLogger sets the logger used by the renderer and its devices.
func WithLogger(l *slog.Logger) Option {
	return func(o *Config) {
		o.Logger = l
	}
}

// WithHeap sets the heap arena size and the linear slot granularity.
func WithHeap(size, granularity uint64) Option {
	return func(o *Config) {
		o.HeapSize = size
		o.HeapGranularity = granularity
	}
}

// WithFenceTimeout bounds internal fence waits.
func WithFenceTimeout(d time.Duration) Option {
	return func(o *Config) {
		o.FenceTimeout = d
	}
}

// NewConfig applies opts to DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.validate()
}
