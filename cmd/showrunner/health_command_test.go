package main

import "testing"

func TestHealthListsAllStages(t *testing.T) {
	env := setupCLITestEnv(t)

	// Readiness depends on host tooling (ffmpeg on PATH), so only the
	// table contents are asserted here.
	out, _, _ := runCLI(t, []string{"health"}, env.configPath)
	for _, name := range []string{"script", "voicing", "assembly", "video", "clips"} {
		requireContains(t, out, name)
	}
	requireContains(t, out, "FFmpeg")
}
