package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showrunner/internal/production"
	"showrunner/internal/testsupport"
)

func TestOutputsListEmptyLedger(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"outputs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("outputs list: %v", err)
	}
	requireContains(t, out, "PRODUCTION")
}

func TestOutputsListShowsRecordedProductions(t *testing.T) {
	env := setupCLITestEnv(t)

	root := filepath.Join(env.cfg.Paths.OutputsDir, "house_0_20250314_0926")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir production dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "script.md"), []byte("**Claire:** Hi.\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	ledger := testsupport.MustOpenLedger(t, env.cfg)
	rec := production.Record{
		ID:           "house_0_20250314_0926",
		ShowID:       "house",
		EpisodeIndex: 0,
		Title:        "Pilot",
		Directory:    root,
	}
	if err := ledger.Begin(context.Background(), rec); err != nil {
		t.Fatalf("ledger.Begin: %v", err)
	}
	if err := ledger.Finish(context.Background(), rec.ID, nil); err != nil {
		t.Fatalf("ledger.Finish: %v", err)
	}

	out, _, err := runCLI(t, []string{"outputs", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("outputs list: %v", err)
	}
	requireContains(t, out, "house_0_20250314_0926")
	requireContains(t, out, production.StatusCompleted)
	requireContains(t, out, "yes")
}

func TestOutputsExportCopiesArtifacts(t *testing.T) {
	env := setupCLITestEnv(t)

	id := "house_0_20250314_0926"
	layout := production.Layout{Root: filepath.Join(env.cfg.Paths.OutputsDir, id)}
	if err := os.MkdirAll(layout.AudioDir(), 0o755); err != nil {
		t.Fatalf("mkdir audio dir: %v", err)
	}
	if err := os.WriteFile(layout.ScriptPath(), []byte("**Claire:** Hi.\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if err := os.WriteFile(layout.CombinedPath(), []byte("mp3-bytes"), 0o644); err != nil {
		t.Fatalf("write combined: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "exports")
	out, _, err := runCLI(t, []string{"outputs", "export", id, "--to", dest}, env.configPath)
	if err != nil {
		t.Fatalf("outputs export: %v", err)
	}
	requireContains(t, out, "Exported")

	for _, name := range []string{id + "_script.md", id + "_combined.mp3"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("expected exported file %s: %v", name, err)
		}
	}
	if strings.Contains(out, "final.mp4") {
		t.Fatalf("did not expect video export without final.mp4, got %q", out)
	}
}

func TestOutputsExportUnknownProduction(t *testing.T) {
	env := setupCLITestEnv(t)

	dest := filepath.Join(t.TempDir(), "exports")
	_, _, err := runCLI(t, []string{"outputs", "export", "missing", "--to", dest}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown production")
	}
	requireContains(t, err.Error(), "not found")
}
