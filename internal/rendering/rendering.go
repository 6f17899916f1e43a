// Package rendering holds the video and social-clip stages. Both are
// placeholders today: they create their output directories and record
// intent, so a real renderer can replace the Execute bodies without touching
// the pipeline sequence.
package rendering

import (
	"context"
	"log/slog"
	"os"

	"showrunner/internal/logging"
	"showrunner/internal/production"
	"showrunner/internal/services"
	"showrunner/internal/stage"
)

// VideoStage prepares video/ and marks where final.mp4 rendering will slot
// in.
type VideoStage struct {
	logger *slog.Logger
}

// NewVideoStage constructs the video placeholder stage.
func NewVideoStage(logger *slog.Logger) *VideoStage {
	return &VideoStage{logger: logging.NewComponentLogger(logger, "video")}
}

func (s *VideoStage) Prepare(ctx context.Context, prod *production.Production) error {
	if err := os.MkdirAll(prod.Layout.VideoDir(), 0o755); err != nil {
		return services.Wrap(
			services.ErrTransient, "video", "create video directory",
			"Video directory could not be created", err)
	}
	return nil
}

func (s *VideoStage) Execute(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)
	if production.Exists(prod.Layout.FinalVideoPath()) {
		logger.Info("final video already exists, skipping",
			logging.String("path", prod.Layout.FinalVideoPath()))
		return nil
	}
	if !production.Exists(prod.Layout.CombinedPath()) {
		logger.Info("no combined audio available, video stage has nothing to render")
		return nil
	}
	logger.Info("video rendering not implemented, run the renderer externally",
		logging.String("audio", prod.Layout.CombinedPath()),
		logging.String("target", prod.Layout.FinalVideoPath()))
	return nil
}

func (s *VideoStage) HealthCheck(ctx context.Context) stage.Health {
	return stage.Healthy("video")
}

// ClipsStage prepares clips/ for social-media cuts of the final video.
type ClipsStage struct {
	logger *slog.Logger
}

// NewClipsStage constructs the clips placeholder stage.
func NewClipsStage(logger *slog.Logger) *ClipsStage {
	return &ClipsStage{logger: logging.NewComponentLogger(logger, "clips")}
}

func (s *ClipsStage) Prepare(ctx context.Context, prod *production.Production) error {
	if err := os.MkdirAll(prod.Layout.ClipsDir(), 0o755); err != nil {
		return services.Wrap(
			services.ErrTransient, "clips", "create clips directory",
			"Clips directory could not be created", err)
	}
	return nil
}

func (s *ClipsStage) Execute(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)
	if !production.Exists(prod.Layout.FinalVideoPath()) {
		logger.Info("no final video available, clips stage has nothing to cut")
		return nil
	}
	logger.Info("clip generation not implemented",
		logging.String("source", prod.Layout.FinalVideoPath()),
		logging.String("target", prod.Layout.ClipsDir()))
	return nil
}

func (s *ClipsStage) HealthCheck(ctx context.Context) stage.Health {
	return stage.Healthy("clips")
}
