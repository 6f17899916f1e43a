package services

import "context"

type contextKey string

const (
	productionIDKey contextKey = "production_id"
	stageKey        contextKey = "stage"
)

// WithProductionID annotates context with the production identifier.
func WithProductionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, productionIDKey, id)
}

// ProductionIDFromContext extracts the production identifier if present.
func ProductionIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(productionIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
