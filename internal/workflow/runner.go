// Package workflow sequences the production pipeline stages. Execution is
// strictly linear: script, voicing, assembly, video, clips. Resumability
// comes from the stages themselves re-checking artifacts on disk, so the
// runner carries no progress state between runs.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"showrunner/internal/assembly"
	"showrunner/internal/config"
	"showrunner/internal/logging"
	"showrunner/internal/notifications"
	"showrunner/internal/production"
	"showrunner/internal/rendering"
	"showrunner/internal/scriptgen"
	"showrunner/internal/secrets"
	"showrunner/internal/services"
	"showrunner/internal/stage"
	"showrunner/internal/voicing"
)

// Step pairs a stage handler with the name used for logging and error
// context.
type Step struct {
	Name    string
	Handler stage.Handler
}

// DefaultSteps builds the full pipeline in production order.
func DefaultSteps(cfg *config.Config, resolver *secrets.Resolver, logger *slog.Logger) []Step {
	return []Step{
		{Name: "script", Handler: scriptgen.NewStage(cfg, resolver, logger)},
		{Name: "voicing", Handler: voicing.NewStage(cfg, resolver, logger)},
		{Name: "assembly", Handler: assembly.NewStage(cfg, logger)},
		{Name: "video", Handler: rendering.NewVideoStage(logger)},
		{Name: "clips", Handler: rendering.NewClipsStage(logger)},
	}
}

// Runner executes the pipeline for one production under an exclusive lock.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	ledger   *production.Ledger
	notifier notifications.Service
	steps    []Step
	lockPath string
}

// NewRunner constructs a pipeline runner.
func NewRunner(cfg *config.Config, ledger *production.Ledger, notifier notifications.Service, logger *slog.Logger, steps []Step) *Runner {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		ledger:   ledger,
		notifier: notifier,
		steps:    steps,
		lockPath: filepath.Join(cfg.Paths.DataDir, "produce.lock"),
	}
}

// ErrAlreadyRunning indicates another produce run holds the lock.
var ErrAlreadyRunning = errors.New("another production is already running")

// Run executes every stage in order. The first stage error aborts the run;
// the ledger records the outcome either way.
func (r *Runner) Run(ctx context.Context, prod *production.Production) error {
	lock := flock.New(r.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire production lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() { _ = lock.Unlock() }()

	ctx = services.WithProductionID(ctx, prod.ID)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	if r.ledger != nil {
		if err := r.ledger.Begin(ctx, production.Record{
			ID:           prod.ID,
			ShowID:       prod.ShowID,
			EpisodeIndex: prod.EpisodeIndex,
			Title:        prod.Episode.Title,
			Directory:    prod.Layout.Root,
		}); err != nil {
			logger.Warn("ledger update failed", logging.Error(err))
		}
	}
	if r.cfg.Notifications.Production {
		if err := r.notifier.NotifyProductionStarted(ctx, prod.ID, prod.Show.Title, prod.Episode.Title); err != nil {
			logger.Warn("start notification failed", logging.Error(err))
		}
	}

	logger.Info("production started",
		logging.String(logging.FieldShowID, prod.ShowID),
		logging.Int(logging.FieldEpisode, prod.EpisodeIndex),
		logging.String("directory", prod.Layout.Root))

	runErr := r.runSteps(ctx, prod)

	if r.ledger != nil {
		if err := r.ledger.Finish(ctx, prod.ID, runErr); err != nil {
			logger.Warn("ledger update failed", logging.Error(err))
		}
	}

	if runErr != nil {
		if r.cfg.Notifications.Errors {
			if err := r.notifier.NotifyError(ctx, runErr, prod.ID); err != nil {
				logger.Warn("error notification failed", logging.Error(err))
			}
		}
		logger.Error("production failed", logging.Error(runErr))
		return runErr
	}

	if r.cfg.Notifications.Production {
		if err := r.notifier.NotifyProductionCompleted(ctx, prod.ID, prod.Layout.Root, time.Since(started)); err != nil {
			logger.Warn("completion notification failed", logging.Error(err))
		}
	}
	logger.Info("production complete",
		logging.Duration("elapsed", time.Since(started)),
		logging.String("directory", prod.Layout.Root))
	return nil
}

func (r *Runner) runSteps(ctx context.Context, prod *production.Production) error {
	for _, step := range r.steps {
		stageCtx := logging.WithStage(ctx, step.Name)
		logger := logging.WithContext(stageCtx, r.logger)
		logger.Info("stage starting")

		if err := step.Handler.Prepare(stageCtx, prod); err != nil {
			return fmt.Errorf("%s prepare: %w", step.Name, err)
		}
		if err := step.Handler.Execute(stageCtx, prod); err != nil {
			return fmt.Errorf("%s execute: %w", step.Name, err)
		}
		logger.Info("stage complete")
		r.notifyMilestone(stageCtx, prod, step.Name, logger)
	}
	return nil
}

// notifyMilestone emits the per-stage progress notifications. Counts are
// derived from artifacts on disk because stages do not surface execution
// summaries.
func (r *Runner) notifyMilestone(ctx context.Context, prod *production.Production, stepName string, logger *slog.Logger) {
	if !r.cfg.Notifications.Production {
		return
	}
	var err error
	switch stepName {
	case "script":
		info, statErr := os.Stat(prod.Layout.ScriptPath())
		if statErr != nil {
			return
		}
		err = r.notifier.NotifyScriptReady(ctx, prod.ID, int(info.Size()))
	case "voicing":
		cues, loadErr := stage.LoadCues(prod.Layout.DialogueLinesPath())
		if loadErr != nil {
			return
		}
		var generated, skipped, failed int
		for _, cue := range cues {
			char, ok := prod.Characters[cue.Character]
			if !ok {
				skipped++
				continue
			}
			if _, _, voiced := char.VoiceRef(); !voiced {
				skipped++
				continue
			}
			if production.ExistsWithMinSize(prod.Layout.CuePath(cue.Index, cue.Character), r.cfg.TTS.MinClipBytes) {
				generated++
			} else {
				failed++
			}
		}
		err = r.notifier.NotifyAudioReady(ctx, prod.ID, generated, skipped, failed)
	default:
		return
	}
	if err != nil {
		logger.Warn("milestone notification failed", logging.Error(err))
	}
}

// HealthChecks reports readiness for every configured stage.
func (r *Runner) HealthChecks(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(r.steps))
	for _, step := range r.steps {
		checks = append(checks, step.Handler.HealthCheck(ctx))
	}
	return checks
}
