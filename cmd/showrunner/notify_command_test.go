package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestTestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"test-notify"}, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "No ntfy topic configured")
}

func TestTestNotifySendsToTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	received := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\noutputs_dir = %q\nsecrets_dir = %q\nlog_dir = %q\n\n[notifications]\nntfy_topic = %q\n",
		env.cfg.Paths.DataDir,
		env.cfg.Paths.OutputsDir,
		env.cfg.Paths.SecretsDir,
		env.cfg.Paths.LogDir,
		server.URL+"/showrunner",
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"test-notify"}, configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Test notification sent")
	if received != 1 {
		t.Fatalf("expected one notification request, got %d", received)
	}
}
