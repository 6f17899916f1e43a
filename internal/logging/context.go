package logging

import (
	"context"
	"log/slog"

	"showrunner/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldProductionID is the standardized structured logging key for production identifiers.
	FieldProductionID = "production_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldShowID is the standardized structured logging key for show identifiers.
	FieldShowID = "show_id"
	// FieldEpisode is the standardized structured logging key for episode indexes.
	FieldEpisode = "episode"
	// FieldCueIndex is the standardized structured logging key for dialogue cue indexes.
	FieldCueIndex = "cue_index"
	// FieldCharacter is the standardized structured logging key for character identifiers.
	FieldCharacter = "character"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.ProductionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldProductionID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

// WithStage annotates the context for downstream ContextFields extraction.
func WithStage(ctx context.Context, stage string) context.Context {
	return services.WithStage(ctx, stage)
}
