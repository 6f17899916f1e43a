// Package scriptgen produces the episode script, the first pipeline stage.
// A production directory that already contains script.md is left untouched,
// which is how operators drop in a hand-written script.
package scriptgen

import (
	"context"
	"log/slog"
	"os"
	"time"

	"showrunner/internal/config"
	"showrunner/internal/logging"
	"showrunner/internal/production"
	"showrunner/internal/secrets"
	"showrunner/internal/services"
	"showrunner/internal/services/anthropic"
	"showrunner/internal/stage"
)

const stageName = "scriptgen"

// Completer generates text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Stage generates script.md for a production.
type Stage struct {
	cfg       *config.Config
	logger    *slog.Logger
	completer Completer
}

// NewStage constructs the script stage with the configured Anthropic client.
// The API key is resolved lazily in Execute so a cached script never needs
// credentials.
func NewStage(cfg *config.Config, resolver *secrets.Resolver, logger *slog.Logger) *Stage {
	return NewStageWithCompleter(cfg, logger, lazyCompleter{cfg: cfg, resolver: resolver})
}

// NewStageWithCompleter allows injecting the text-generation client (used in
// tests).
func NewStageWithCompleter(cfg *config.Config, logger *slog.Logger, completer Completer) *Stage {
	return &Stage{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, stageName),
		completer: completer,
	}
}

type lazyCompleter struct {
	cfg      *config.Config
	resolver *secrets.Resolver
}

func (l lazyCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	key, err := l.resolver.Lookup("anthropic")
	if err != nil {
		return "", services.Wrap(
			services.ErrConfiguration, stageName, "resolve api key",
			"Anthropic API key lookup failed", err)
	}
	if key == "" {
		return "", services.Wrap(
			services.ErrConfiguration, stageName, "resolve api key",
			"Anthropic API key not found; add anthropic.json to the secrets directory or set ANTHROPIC_API_KEY", nil)
	}
	client := anthropic.NewClient(key,
		anthropic.WithBaseURL(l.cfg.ScriptGen.BaseURL),
		anthropic.WithModel(l.cfg.ScriptGen.Model),
		anthropic.WithMaxTokens(l.cfg.ScriptGen.MaxTokens),
		anthropic.WithTimeout(time.Duration(l.cfg.ScriptGen.TimeoutSeconds)*time.Second),
	)
	return client.Complete(ctx, prompt)
}

func (s *Stage) Prepare(ctx context.Context, prod *production.Production) error {
	if prod.Show.Title == "" {
		return services.Wrap(
			services.ErrValidation, stageName, "validate inputs",
			"Show record is empty; check the show identifier", nil)
	}
	if err := os.MkdirAll(prod.Layout.Root, 0o755); err != nil {
		return services.Wrap(
			services.ErrValidation, stageName, "create production directory",
			"Production directory could not be created", err)
	}
	return nil
}

func (s *Stage) Execute(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)
	scriptPath := prod.Layout.ScriptPath()

	if production.Exists(scriptPath) {
		logger.Info("script already exists, skipping generation",
			logging.String("path", scriptPath))
		return nil
	}

	prompt := BuildPrompt(prod.Show, prod.Episode, prod.Characters, s.cfg.ScriptGen.TargetLines)
	logger.Info("generating script",
		logging.String("model", s.cfg.ScriptGen.Model),
		logging.Int("prompt_chars", len(prompt)))

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		if services.IsFatal(err) {
			return err
		}
		return services.Wrap(
			services.ErrExternalTool, stageName, "generate script",
			"Script generation provider request failed", err)
	}

	if err := os.WriteFile(scriptPath, []byte(text), 0o644); err != nil {
		return services.Wrap(
			services.ErrTransient, stageName, "persist script",
			"Generated script could not be written", err)
	}
	logger.Info("script saved",
		logging.String("path", scriptPath),
		logging.Int("chars", len(text)))
	return nil
}

func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if s.cfg.ScriptGen.Model == "" {
		return stage.Unhealthy(stageName, "script generation model not configured")
	}
	return stage.Healthy(stageName)
}
