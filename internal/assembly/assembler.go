// Package assembly stitches per-cue audio artifacts into the combined
// episode track with ffmpeg.
package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"showrunner/internal/config"
	"showrunner/internal/logging"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Assembler concatenates ordered audio clips with fixed silence gaps.
type Assembler struct {
	logger     *slog.Logger
	ffmpeg     string
	gapSeconds float64
	sampleRate int
	run        commandRunner
}

// NewAssembler constructs an assembler from configuration.
func NewAssembler(cfg *config.Config, logger *slog.Logger) *Assembler {
	return &Assembler{
		logger:     logging.NewComponentLogger(logger, "assembly"),
		ffmpeg:     cfg.FFmpegBinary(),
		gapSeconds: cfg.Assembly.GapSeconds,
		sampleRate: cfg.Assembly.SampleRate,
		run:        defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (a *Assembler) WithCommandRunner(r commandRunner) {
	if a != nil && r != nil {
		a.run = r
	}
}

// Combine merges the given clips, in the order given, into outputPath with a
// short silence between consecutive clips and none after the last. Scratch
// files (silence clip, concat manifest) are created next to the output and
// removed afterwards.
func (a *Assembler) Combine(ctx context.Context, clips []string, outputPath string) error {
	if len(clips) == 0 {
		return fmt.Errorf("assembly: no clips to combine")
	}
	outputDir := filepath.Dir(outputPath)
	silencePath := filepath.Join(outputDir, "silence.mp3")
	manifestPath := filepath.Join(outputDir, "concat_list.txt")
	defer func() {
		_ = os.Remove(manifestPath)
		_ = os.Remove(silencePath)
	}()

	if err := a.generateSilence(ctx, silencePath); err != nil {
		return fmt.Errorf("assembly: generate silence: %w", err)
	}
	if err := writeManifest(manifestPath, clips, silencePath); err != nil {
		return fmt.Errorf("assembly: write manifest: %w", err)
	}

	if err := a.run(ctx, a.ffmpeg,
		"-y", "-f", "concat", "-safe", "0",
		"-i", manifestPath,
		"-c:a", "libmp3lame", "-q:a", "2",
		outputPath,
	); err != nil {
		return fmt.Errorf("assembly: concat: %w", err)
	}
	a.logger.Info("combined audio written",
		logging.String("path", outputPath),
		logging.Int("clips", len(clips)))
	return nil
}

func (a *Assembler) generateSilence(ctx context.Context, path string) error {
	source := fmt.Sprintf("anullsrc=r=%d:cl=mono", a.sampleRate)
	duration := strconv.FormatFloat(a.gapSeconds, 'g', -1, 64)
	return a.run(ctx, a.ffmpeg,
		"-y", "-f", "lavfi", "-i", source,
		"-t", duration, "-q:a", "9",
		path)
}

// writeManifest builds the ffmpeg concat demuxer input: absolute paths, a
// silence entry between consecutive clips, no trailing silence.
func writeManifest(path string, clips []string, silencePath string) error {
	silenceAbs, err := filepath.Abs(silencePath)
	if err != nil {
		return err
	}
	var b strings.Builder
	for i, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
		if i < len(clips)-1 {
			fmt.Fprintf(&b, "file '%s'\n", silenceAbs)
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
