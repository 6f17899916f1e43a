package assembly

import (
	"context"
	"log/slog"
	"os/exec"

	"showrunner/internal/config"
	"showrunner/internal/logging"
	"showrunner/internal/production"
	"showrunner/internal/services"
	"showrunner/internal/stage"
)

const stageName = "assembly"

// Stage produces audio/combined.mp3 from the per-cue artifacts.
type Stage struct {
	cfg       *config.Config
	logger    *slog.Logger
	assembler *Assembler
}

// NewStage constructs the assembly stage.
func NewStage(cfg *config.Config, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, stageName),
		assembler: NewAssembler(cfg, logger),
	}
}

// Assembler exposes the underlying assembler for test injection.
func (s *Stage) Assembler() *Assembler { return s.assembler }

func (s *Stage) Prepare(ctx context.Context, prod *production.Production) error {
	if !production.Exists(prod.Layout.DialogueLinesPath()) {
		return services.Wrap(
			services.ErrValidation, stageName, "validate inputs",
			"Dialogue cue list missing; run the voicing stage first", nil)
	}
	return nil
}

func (s *Stage) Execute(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)
	combinedPath := prod.Layout.CombinedPath()

	if production.Exists(combinedPath) {
		logger.Info("combined audio already exists, skipping", logging.String("path", combinedPath))
		return nil
	}

	cues, err := stage.LoadCues(prod.Layout.DialogueLinesPath())
	if err != nil {
		return err
	}

	// Cue order, not directory enumeration order. The cue list is already
	// sequence-index ordered on disk.
	var clips []string
	for _, cue := range cues {
		path := prod.Layout.CuePath(cue.Index, cue.Character)
		if production.ExistsWithMinSize(path, s.cfg.TTS.MinClipBytes) {
			clips = append(clips, path)
		}
	}
	if len(clips) == 0 {
		logger.Info("no cue artifacts present, nothing to combine")
		return nil
	}

	if err := s.assembler.Combine(ctx, clips, combinedPath); err != nil {
		return services.Wrap(
			services.ErrExternalTool, stageName, "combine audio",
			"ffmpeg concat failed", err)
	}
	return nil
}

func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := exec.LookPath(s.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy(stageName, "ffmpeg not found in PATH")
	}
	return stage.Healthy(stageName)
}
