package assembly

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showrunner/internal/config"
	"showrunner/internal/logging"
)

type recordedCommand struct {
	name string
	args []string
}

func newRecordingAssembler(t *testing.T, commands *[]recordedCommand) *Assembler {
	t.Helper()
	cfg := config.Default()
	asm := NewAssembler(&cfg, logging.NewNop())
	asm.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		*commands = append(*commands, recordedCommand{name: name, args: args})
		return nil
	})
	return asm
}

func TestCombineBuildsSilenceThenConcat(t *testing.T) {
	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "000_claire.mp3"), filepath.Join(dir, "001_viktor.mp3")}
	output := filepath.Join(dir, "combined.mp3")

	var commands []recordedCommand
	var manifest string
	asm := newRecordingAssembler(t, &commands)
	asm.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		commands = append(commands, recordedCommand{name: name, args: args})
		// Capture the manifest before Combine removes it.
		if len(commands) == 2 {
			data, err := os.ReadFile(filepath.Join(dir, "concat_list.txt"))
			if err != nil {
				t.Fatalf("read manifest: %v", err)
			}
			manifest = string(data)
		}
		return nil
	})

	if err := asm.Combine(context.Background(), clips, output); err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("expected 2 ffmpeg invocations, got %d", len(commands))
	}

	silenceArgs := strings.Join(commands[0].args, " ")
	if !strings.Contains(silenceArgs, "anullsrc=r=44100:cl=mono") || !strings.Contains(silenceArgs, "-t 0.3") {
		t.Fatalf("unexpected silence invocation: %s", silenceArgs)
	}
	concatArgs := strings.Join(commands[1].args, " ")
	if !strings.Contains(concatArgs, "-f concat -safe 0") || !strings.Contains(concatArgs, "-c:a libmp3lame -q:a 2") {
		t.Fatalf("unexpected concat invocation: %s", concatArgs)
	}

	lines := strings.Split(strings.TrimSpace(manifest), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected clip, silence, clip manifest, got %d lines:\n%s", len(lines), manifest)
	}
	if !strings.Contains(lines[0], "000_claire.mp3") || !strings.Contains(lines[1], "silence.mp3") || !strings.Contains(lines[2], "001_viktor.mp3") {
		t.Fatalf("unexpected manifest ordering:\n%s", manifest)
	}
	if strings.Contains(lines[len(lines)-1], "silence.mp3") {
		t.Fatal("manifest must not end with silence")
	}
}

func TestCombineRemovesScratchFiles(t *testing.T) {
	dir := t.TempDir()
	var commands []recordedCommand
	asm := newRecordingAssembler(t, &commands)
	output := filepath.Join(dir, "combined.mp3")
	if err := asm.Combine(context.Background(), []string{filepath.Join(dir, "000_a.mp3")}, output); err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	for _, scratch := range []string{"concat_list.txt", "silence.mp3"} {
		if _, err := os.Stat(filepath.Join(dir, scratch)); !os.IsNotExist(err) {
			t.Fatalf("scratch file %s not removed", scratch)
		}
	}
}

func TestCombineSingleClipHasNoSilence(t *testing.T) {
	dir := t.TempDir()
	var commands []recordedCommand
	var manifest string
	asm := newRecordingAssembler(t, &commands)
	asm.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		commands = append(commands, recordedCommand{name: name, args: args})
		if len(commands) == 2 {
			data, _ := os.ReadFile(filepath.Join(dir, "concat_list.txt"))
			manifest = string(data)
		}
		return nil
	})
	if err := asm.Combine(context.Background(), []string{filepath.Join(dir, "000_a.mp3")}, filepath.Join(dir, "combined.mp3")); err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	if strings.Contains(manifest, "silence.mp3") {
		t.Fatalf("single clip manifest should carry no silence entry:\n%s", manifest)
	}
}

func TestCombineRejectsEmptyClipList(t *testing.T) {
	var commands []recordedCommand
	asm := newRecordingAssembler(t, &commands)
	if err := asm.Combine(context.Background(), nil, "out.mp3"); err == nil {
		t.Fatal("expected error for empty clip list")
	}
	if len(commands) != 0 {
		t.Fatal("no commands should run for an empty clip list")
	}
}
