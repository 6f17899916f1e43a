package stage

import (
	"context"

	"showrunner/internal/production"
)

// Handler describes the contract the workflow runner needs from each
// pipeline stage. Prepare validates inputs and loads prior artifacts;
// Execute produces the stage's artifacts. Both must be idempotent: a stage
// whose artifacts already exist on disk returns without repeating work.
type Handler interface {
	Prepare(context.Context, *production.Production) error
	Execute(context.Context, *production.Production) error
	HealthCheck(context.Context) Health
}
