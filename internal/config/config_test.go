package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showrunner/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

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

	wantData := filepath.Join(tempHome, ".local", "share", "showrunner", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if strings.Contains(cfg.Paths.OutputsDir, "~") {
		t.Fatalf("outputs dir not expanded: %q", cfg.Paths.OutputsDir)
	}
	if cfg.ScriptGen.Model != "claude-3-5-sonnet-20241022" {
		t.Fatalf("unexpected scriptgen model: %q", cfg.ScriptGen.Model)
	}
	if cfg.ScriptGen.MaxTokens != 8192 {
		t.Fatalf("unexpected max tokens: %d", cfg.ScriptGen.MaxTokens)
	}
	if cfg.TTS.MinClipBytes != 1000 {
		t.Fatalf("unexpected min clip bytes: %d", cfg.TTS.MinClipBytes)
	}
	if cfg.TTS.RequestIntervalMS != 500 {
		t.Fatalf("unexpected request interval: %d", cfg.TTS.RequestIntervalMS)
	}
	if cfg.Assembly.GapSeconds != 0.3 {
		t.Fatalf("unexpected gap seconds: %v", cfg.Assembly.GapSeconds)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatalf("expected empty ntfy topic, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestLoadExplicitFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "showrunner.toml")
	body := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
outputs_dir = "` + filepath.Join(dir, "outputs") + `"

[scriptgen]
target_lines = 25

[tts]
request_interval_ms = 50

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.ScriptGen.TargetLines != 25 {
		t.Fatalf("override not applied: %d", cfg.ScriptGen.TargetLines)
	}
	if cfg.TTS.RequestIntervalMS != 50 {
		t.Fatalf("override not applied: %d", cfg.TTS.RequestIntervalMS)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadLoggingFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for xml log format")
	}
}

func TestLoadRejectsSharedDataAndOutputsDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	body := `
[paths]
data_dir = "` + dir + `"
outputs_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for shared directories")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load cleanly: exists=%v err=%v", exists, err)
	}
}
