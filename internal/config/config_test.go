// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/typeset/typeset/internal/issue"
	"github.com/typeset/typeset/internal/testutil"
	"github.com/typeset/typeset/pkg/cueutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, content)
	return path
}

// isolate points config lookup at an empty directory and runs the test
// from another empty directory so no stray config.cue is picked up.
func isolate(t *testing.T) string {
	t.Helper()

	cfgDir := t.TempDir()
	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))
	return cfgDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Layout.Concurrent {
		t.Error("expected concurrent layout by default")
	}
	if cfg.Layout.PageWidth != 80 {
		t.Errorf("expected default page width 80, got %d", cfg.Layout.PageWidth)
	}
	if cfg.Layout.FontSize != 11 {
		t.Errorf("expected default font size 11, got %g", float64(cfg.Layout.FontSize))
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config is invalid: %v", errs)
	}
}

func TestConfig_LayoutOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.LayoutOptions()
	if opts.PageWidth != 440 || opts.FontSize != 11 || opts.Sequential {
		t.Errorf("LayoutOptions() = %+v", opts)
	}

	cfg.Layout.Concurrent = false
	cfg.Layout.PageWidth = 40
	if opts := cfg.LayoutOptions(); !opts.Sequential || opts.PageWidth != 220 {
		t.Errorf("LayoutOptions() = %+v", opts)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on Linux")
	}

	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config"))
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() without XDG = %s, want %s", dir, want)
	}

	SetConfigDirOverride("/override")
	t.Cleanup(Reset)
	if dir, _ := ConfigDir(); dir != "/override" {
		t.Errorf("ConfigDir() with override = %s", dir)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolate(t)

	p := NewProvider()
	cfg, err := p.Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	path, err := p.Resolve(LoadOptions{})
	if err != nil || path != "" {
		t.Errorf("Resolve() = %q, %v; want no file", path, err)
	}
}

func TestLoad_ConfigDirOverridesDefaults(t *testing.T) {
	cfgDir := isolate(t)
	path := writeConfig(t, cfgDir, `
layout: {
	concurrent: false
	page_width: 60
}
ui: color_scheme: "dark"
`)

	p := NewProvider()
	cfg, err := p.Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Layout.Concurrent || cfg.Layout.PageWidth != 60 || cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Layout.FontSize != 11 {
		t.Errorf("unset font size should keep its default, got %g", float64(cfg.Layout.FontSize))
	}
	if got, _ := p.Resolve(LoadOptions{}); got != path {
		t.Errorf("Resolve() = %q, want %q", got, path)
	}
}

func TestLoad_WorkingDirectoryFallback(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	writeConfig(t, wd, "layout: font_size: 12.5\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Layout.FontSize != 12.5 {
		t.Errorf("font size = %g, want 12.5", float64(cfg.Layout.FontSize))
	}
}

func TestLoad_CustomPath(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "ui: verbose: true\n")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose from custom config file")
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" || ae.Resource != missing || !ae.HasSuggestions() {
		t.Errorf("unexpected error context: %+v", ae)
	}
	if ae.Issue != issue.FileNotFoundId {
		t.Errorf("issue = %d, want %d", ae.Issue, issue.FileNotFoundId)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "layout: columns: 10\n"},
		{"width too small", "layout: page_width: 5\n"},
		{"width not int", "layout: page_width: 80.5\n"},
		{"zero font", "layout: font_size: 0\n"},
		{"bad scheme", `ui: color_scheme: "neon"` + "\n"},
		{"syntax", "layout: {\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgDir := isolate(t)
			writeConfig(t, cfgDir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.Operation != "load configuration" {
				t.Errorf("expected load configuration ActionableError, got %v", err)
			}
			if i, ok := issue.Explain(err); !ok || i.Id() != issue.ConfigLoadFailedId {
				t.Errorf("expected config issue, got %v", i)
			}
		})
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	cfgDir := isolate(t)
	writeConfig(t, cfgDir, "// "+strings.Repeat("x", int(cueutil.DefaultMaxFileSize)))

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil || !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("expected size error, got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	cfgDir := isolate(t)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if want := filepath.Join(cfgDir, "config.cue"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("generated config = %+v, want defaults", cfg)
	}

	// An existing file is left alone.
	testutil.MustWriteFile(t, path, "ui: verbose: true\n")
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ui: verbose: true\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestGenerateCUE(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.FontSize = 10.5
	out := GenerateCUE(cfg)
	for _, want := range []string{"concurrent: true", "page_width: 80", "font_size:  10.5", `color_scheme: "auto"`} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}
}
