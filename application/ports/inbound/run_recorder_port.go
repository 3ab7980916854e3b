package inbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

// RunRecorderPort persists pipeline run records off the hot path; failures
// are logged and never surfaced to the caller.
type RunRecorderPort interface {
	Record(ctx context.Context, run domain.PipelineRun)
}
