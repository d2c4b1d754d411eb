package gal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"plugin"
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// APIVersion is the version of this API checked against
// Plugin.RequiredVersion.
const APIVersion = "1.0.0"

// PluginSymbol is the symbol a plugin module exports. It must be a
// variable of type Plugin.
const PluginSymbol = "GalPlugin"

// ManifestExt is the file suffix of plugin manifests.
const ManifestExt = ".gal.toml"

// Plugin describes one backend.
type Plugin struct {
	// ID is a short identifier such as "null" or "wgpu".
	ID string
	// Name is the human readable name the backend is listed under.
	Name string
	// RequiredVersion is a semver constraint on APIVersion. Empty
	// accepts any version.
	RequiredVersion string
	// Priority orders Default selection; higher wins.
	Priority int
	// Create instantiates the renderer.
	Create func(cfg Config) (Renderer, error)
}

// Registry maps backend names to plugins. It is an explicit object; a
// process usually creates one at startup and passes it around.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns a registry holding plugins.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{plugins: make(map[string]Plugin)}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a plugin after checking its version requirement. A
// plugin with the same ID replaces the previous one.
func (r *Registry) Register(p Plugin) error {
	if p.ID == "" || p.Create == nil {
		return errorf(ErrInvalidArgument, "plugin %q: missing id or factory", p.Name)
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if err := checkVersion(p); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plugins == nil {
		r.plugins = make(map[string]Plugin)
	}
	r.plugins[p.ID] = p
	Logger().Info("gal: backend registered", slog.String("id", p.ID), slog.String("name", p.Name), slog.Int("priority", p.Priority))
	return nil
}

func checkVersion(p Plugin) error {
	if p.RequiredVersion == "" {
		return nil
	}
	c, err := semver.NewConstraint(p.RequiredVersion)
	if err != nil {
		return errorf(ErrIncompatibleVersion, "plugin %q: bad constraint %q: %v", p.ID, p.RequiredVersion, err)
	}
	v := semver.MustParse(APIVersion)
	if ok, errs := c.Validate(v); !ok {
		return errorf(ErrIncompatibleVersion, "plugin %q requires %s, have %s: %v", p.ID, p.RequiredVersion, APIVersion, errors.Join(errs...))
	}
	return nil
}

// Unregister removes a plugin by ID.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plugins, id)
}

// Plugins returns the registered plugins, highest priority first.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Plugin) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Names returns the human readable names of the registered backends,
// highest priority first.
func (r *Registry) Names() []string {
	ps := r.Plugins()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a plugin by ID or, case-insensitively, by name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.plugins[name]; ok {
		return p, true
	}
	for _, p := range r.plugins {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Plugin{}, false
}

// CreateRenderer instantiates the named backend.
func (r *Registry) CreateRenderer(name string, opts ...Option) (Renderer, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotFound, name)
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return p.Create(cfg)
}

// Default creates the renderer of the highest priority backend that
// initializes successfully. When cfg.Backend is set only that backend is
// tried.
func (r *Registry) Default(opts ...Option) (Renderer, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Backend != "" {
		return r.CreateRenderer(cfg.Backend, WithConfig(cfg))
	}
	var errs []error
	for _, p := range r.Plugins() {
		rd, err := p.Create(cfg)
		if err == nil {
			return rd, nil
		}
		cfg.Log().Warn("gal: backend unavailable", slog.String("id", p.ID), slog.String("err", err.Error()))
		errs = append(errs, fmt.Errorf("%s: %w", p.ID, err))
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotFound
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotFound, errors.Join(errs...))
}

// Manifest is the TOML description of a plugin module.
type Manifest struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	RequiredVersion string `toml:"required_version"`
	Priority        int    `toml:"priority"`
	// Library is the plugin module path, relative to the manifest.
	Library string `toml:"library"`
}

// ParseManifest decodes a plugin manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("gal: parse manifest: %w", err)
	}
	if m.ID == "" || m.Library == "" {
		return m, errorf(ErrInvalidArgument, "manifest needs id and library")
	}
	return m, nil
}

// Probe loads every plugin manifest in dir. Manifests are checked against
// APIVersion before their module is opened. Failures do not stop the
// probe; they are joined in the returned error.
func (r *Registry) Probe(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+ManifestExt))
	if err != nil {
		return err
	}
	var errs []error
	for _, path := range paths {
		if err := r.probeOne(path); err != nil {
			Logger().Warn("gal: plugin skipped", slog.String("manifest", path), slog.String("err", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) probeOne(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return err
	}
	// the version check runs before any code of the module is loaded
	if err := checkVersion(Plugin{ID: m.ID, RequiredVersion: m.RequiredVersion}); err != nil {
		return err
	}
	lib := m.Library
	if !filepath.IsAbs(lib) {
		lib = filepath.Join(filepath.Dir(path), lib)
	}
	mod, err := plugin.Open(lib)
	if err != nil {
		return err
	}
	sym, err := mod.Lookup(PluginSymbol)
	if err != nil {
		return err
	}
	p, ok := sym.(*Plugin)
	if !ok {
		return errorf(ErrInvalidArgument, "symbol %s has type %T", PluginSymbol, sym)
	}
	entry := *p
	entry.ID = m.ID
	if m.Name != "" {
		entry.Name = m.Name
	}
	entry.RequiredVersion = m.RequiredVersion
	entry.Priority = m.Priority
	return r.Register(entry)
}
