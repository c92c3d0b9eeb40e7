package stage

import (
	"context"

	"reelforge/internal/queue"
)

// Handler describes the contract the workflow manager needs from each stage.
type Handler interface {
	Prepare(context.Context, *queue.Project) error
	Execute(context.Context, *queue.Project) error
	HealthCheck(context.Context) Health
}
