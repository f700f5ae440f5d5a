package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"dedup/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "dedup")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	wantSource, _ := filepath.EvalSymlinks(workDir)
	gotSource, _ := filepath.EvalSymlinks(cfg.Paths.SourceDir)
	if gotSource != wantSource {
		t.Fatalf("expected source dir to default to cwd %q, got %q", wantSource, gotSource)
	}
	if cfg.Paths.MoveDir != "" {
		t.Fatalf("expected no move dir by default, got %q", cfg.Paths.MoveDir)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.Journal.Path != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if cfg.Run.DryRun {
		t.Fatal("expected dry run disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.Color != "auto" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.ExiftoolBinary() != "exiftool" {
		t.Fatalf("unexpected exiftool binary: %q", cfg.ExiftoolBinary())
	}
	if err := cfg.EnsureStateDir(); err != nil {
		t.Fatalf("EnsureStateDir failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
	if cfg.LockPath() != filepath.Join(wantState, "dedup.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "dedup.toml")

	type payload struct {
		Paths struct {
			SourceDir string `toml:"source_dir"`
			MoveDir   string `toml:"move_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Run struct {
			DryRun bool `toml:"dry_run"`
		} `toml:"run"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.SourceDir = filepath.Join(tempDir, "media")
	custom.Paths.MoveDir = filepath.Join(tempDir, "dupes")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Run.DryRun = true
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "DEBUG"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.SourceDir != custom.Paths.SourceDir {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if cfg.Paths.MoveDir != custom.Paths.MoveDir {
		t.Fatalf("unexpected move dir: %q", cfg.Paths.MoveDir)
	}
	if cfg.Journal.Path != filepath.Join(custom.Paths.StateDir, "journal.db") {
		t.Fatalf("expected journal under custom state dir, got %q", cfg.Journal.Path)
	}
	if !cfg.Run.DryRun {
		t.Fatal("expected dry run from config")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized debug level, got %q", cfg.Logging.Level)
	}
}

func TestLoadExpandsLogFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "dedup.toml")
	content := "[logging]\nfile = \"~/logs/dedup.log\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(tempHome, "logs", "dedup.log"); cfg.Logging.File != want {
		t.Fatalf("logging.file = %q, want %q", cfg.Logging.File, want)
	}
}

func TestLoadExpandsTildeMoveDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "dedup.toml")
	content := "[paths]\nsource_dir = \"~/photos\"\nmove_dir = \"~/dupes\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.SourceDir != filepath.Join(tempHome, "photos") {
		t.Fatalf("unexpected source dir: %q", cfg.Paths.SourceDir)
	}
	if cfg.Paths.MoveDir != filepath.Join(tempHome, "dupes") {
		t.Fatalf("unexpected move dir: %q", cfg.Paths.MoveDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "level", content: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "color", content: "[logging]\ncolor = \"rainbow\"\n", wantErr: "logging.color"},
		{name: "format", content: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "unknown key", content: "[paths]\nlibrary_dir = \"/x\"\n", wantErr: "parse config"},
		{name: "bad toml", content: "[paths\n", wantErr: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dedup.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected sample to keep the journal enabled")
	}
	if cfg.Timestamps.Make != "WhatsApp" || cfg.Timestamps.Model != "WhatsApp" {
		t.Fatalf("unexpected timestamp tags: %+v", cfg.Timestamps)
	}
}
