package gal

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// captureLogger installs a text logger at level and returns its output.
func captureLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs() changed the handler type")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() changed the handler type")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestRegistryLogsLifecycle(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	reg := &Registry{}
	err := reg.Register(Plugin{ID: "fake", Priority: 3, Create: func(Config) (Renderer, error) { return nil, nil }})
	if err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "backend registered") || !strings.Contains(out, "id=fake") || !strings.Contains(out, "priority=3") {
		t.Errorf("missing registration record: %s", out)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old"+ManifestExt), []byte("id = \"old\"\nrequired_version = \"^0.1\"\nlibrary = \"old.so\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := reg.Probe(dir); err == nil {
		t.Fatal("Probe() accepted an incompatible plugin")
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "plugin skipped") {
		t.Errorf("missing warning for the skipped plugin: %s", out)
	}
}

func TestConfigLoggerOverridesPackageLogger(t *testing.T) {
	pkg := captureLogger(t, slog.LevelDebug)
	var own bytes.Buffer
	cfg, err := NewConfig(WithLogger(slog.New(slog.NewTextHandler(&own, nil))))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Log().Info("renderer created")
	if pkg.Len() != 0 || !strings.Contains(own.String(), "renderer created") {
		t.Errorf("package log %q, renderer log %q", pkg.String(), own.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("gal: concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("gal: command recorded", "op", "draw")
	}
}
