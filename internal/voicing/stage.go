// Package voicing turns parsed dialogue cues into per-cue speech artifacts.
// It is the job runner of the pipeline: cache-aware, strictly sequential,
// and rate-limited between provider calls. A cue that cannot be voiced or
// that fails synthesis is logged and skipped; the run continues.
package voicing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"showrunner/internal/config"
	"showrunner/internal/logging"
	"showrunner/internal/production"
	"showrunner/internal/roster"
	"showrunner/internal/script"
	"showrunner/internal/secrets"
	"showrunner/internal/services"
	"showrunner/internal/services/elevenlabs"
	"showrunner/internal/services/hume"
	"showrunner/internal/stage"
)

const stageName = "voicing"

// Synthesizer converts text plus a voice identifier to audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// SynthesizerFactory returns the client for a voice provider. A
// configuration problem (missing API key) is fatal for the whole run.
type SynthesizerFactory func(provider roster.Provider) (Synthesizer, error)

// Stage synthesizes one audio artifact per voiced cue.
type Stage struct {
	cfg     *config.Config
	logger  *slog.Logger
	factory SynthesizerFactory
	limiter *rate.Limiter
	clients map[roster.Provider]Synthesizer
}

// NewStage constructs the voicing stage with real provider clients.
func NewStage(cfg *config.Config, resolver *secrets.Resolver, logger *slog.Logger) *Stage {
	return NewStageWithFactory(cfg, logger, defaultFactory(cfg, resolver))
}

// NewStageWithFactory allows injecting synthesis clients (used in tests).
func NewStageWithFactory(cfg *config.Config, logger *slog.Logger, factory SynthesizerFactory) *Stage {
	interval := time.Duration(cfg.TTS.RequestIntervalMS) * time.Millisecond
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &Stage{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, stageName),
		factory: factory,
		limiter: limiter,
		clients: make(map[roster.Provider]Synthesizer),
	}
}

func defaultFactory(cfg *config.Config, resolver *secrets.Resolver) SynthesizerFactory {
	timeout := time.Duration(cfg.TTS.RequestTimeout) * time.Second
	return func(provider roster.Provider) (Synthesizer, error) {
		key, err := resolver.Lookup(string(provider))
		if err != nil {
			return nil, services.Wrap(
				services.ErrConfiguration, stageName, "resolve api key",
				fmt.Sprintf("%s API key lookup failed", provider), err)
		}
		if key == "" {
			return nil, services.Wrap(
				services.ErrConfiguration, stageName, "resolve api key",
				fmt.Sprintf("%s API key not found in secrets directory or environment", provider), nil)
		}
		switch provider {
		case roster.ProviderHume:
			return hume.NewClient(key,
				hume.WithBaseURL(cfg.TTS.HumeBaseURL),
				hume.WithTimeout(timeout)), nil
		case roster.ProviderElevenLabs:
			return elevenlabs.NewClient(key,
				elevenlabs.WithBaseURL(cfg.TTS.ElevenLabsBaseURL),
				elevenlabs.WithTimeout(timeout)), nil
		default:
			return nil, services.Wrap(
				services.ErrConfiguration, stageName, "resolve provider",
				fmt.Sprintf("unsupported voice provider %q", provider), nil)
		}
	}
}

func (s *Stage) synthesizerFor(provider roster.Provider) (Synthesizer, error) {
	if client, ok := s.clients[provider]; ok {
		return client, nil
	}
	client, err := s.factory(provider)
	if err != nil {
		return nil, err
	}
	s.clients[provider] = client
	return client, nil
}

// Prepare parses script.md into the dialogue cue list and persists it.
// Parsing is cheap and deterministic, so it always reruns from the script on
// disk rather than trusting a stale cue list.
func (s *Stage) Prepare(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)

	text, err := os.ReadFile(prod.Layout.ScriptPath())
	if err != nil {
		return services.Wrap(
			services.ErrValidation, stageName, "read script",
			"script.md missing or unreadable; run the script stage first", err)
	}
	if err := os.MkdirAll(prod.Layout.AudioDir(), 0o755); err != nil {
		return services.Wrap(
			services.ErrTransient, stageName, "create audio directory",
			"Audio directory could not be created", err)
	}

	result := script.Parse(string(text), prod.Characters)
	if result.UnresolvedSpeakers > 0 {
		logger.Warn("dropped dialogue lines with unresolved speakers",
			logging.Int("dropped", result.UnresolvedSpeakers))
	}
	logger.Info("parsed dialogue cues", logging.Int("cues", len(result.Cues)))

	return stage.SaveCues(prod.Layout.DialogueLinesPath(), result.Cues)
}

// Result reports what the synthesis loop did for one cue.
type Result struct {
	Cue  script.Cue
	Path string
	// Cached is true when the artifact already existed above the size
	// floor and no provider call was made.
	Cached  bool
	Skipped bool
	Err     error
}

// Execute synthesizes audio for every voiced cue, in cue order.
func (s *Stage) Execute(ctx context.Context, prod *production.Production) error {
	logger := logging.WithContext(ctx, s.logger)

	cues, err := stage.LoadCues(prod.Layout.DialogueLinesPath())
	if err != nil {
		return err
	}

	var generated, cached, skipped, failed int
	for _, cue := range cues {
		res := s.synthesizeCue(ctx, prod, cue)
		cueLogger := logger.With(
			logging.Int(logging.FieldCueIndex, cue.Index),
			logging.String(logging.FieldCharacter, cue.Character),
		)
		switch {
		case res.Err != nil:
			if services.IsFatal(res.Err) {
				return res.Err
			}
			failed++
			cueLogger.Warn("cue synthesis failed, continuing", logging.Error(res.Err))
		case res.Cached:
			cached++
			cueLogger.Debug("cue artifact already present", logging.String("path", res.Path))
		case res.Skipped:
			skipped++
			cueLogger.Info("character has no voice configured, skipping cue")
		default:
			generated++
			cueLogger.Info("cue synthesized", logging.String("path", res.Path))
		}
	}

	logger.Info("synthesis pass complete",
		logging.Int("generated", generated),
		logging.Int("cached", cached),
		logging.Int("skipped", skipped),
		logging.Int("failed", failed))
	return nil
}

func (s *Stage) synthesizeCue(ctx context.Context, prod *production.Production, cue script.Cue) Result {
	path := prod.Layout.CuePath(cue.Index, cue.Character)
	res := Result{Cue: cue, Path: path}

	if production.ExistsWithMinSize(path, s.cfg.TTS.MinClipBytes) {
		res.Cached = true
		return res
	}

	char, ok := prod.Characters[cue.Character]
	if !ok {
		res.Skipped = true
		return res
	}
	provider, voiceID, ok := char.VoiceRef()
	if !ok {
		res.Skipped = true
		return res
	}

	client, err := s.synthesizerFor(provider)
	if err != nil {
		res.Err = err
		return res
	}

	if err := s.limiter.Wait(ctx); err != nil {
		res.Err = services.Wrap(services.ErrTransient, stageName, "rate limit", "synthesis pacing interrupted", err)
		return res
	}

	audio, err := client.Synthesize(ctx, cue.Text, voiceID)
	if err != nil {
		res.Err = services.Wrap(
			services.ErrExternalTool, stageName, "synthesize cue",
			fmt.Sprintf("provider %s request failed", provider), err)
		return res
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		res.Err = services.Wrap(
			services.ErrTransient, stageName, "persist cue audio",
			"Cue audio could not be written", err)
		return res
	}
	return res
}

func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if s.cfg.TTS.MinClipBytes <= 0 {
		return stage.Unhealthy(stageName, "min_clip_bytes must be positive")
	}
	return stage.Healthy(stageName)
}
