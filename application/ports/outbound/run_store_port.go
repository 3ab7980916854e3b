package outbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

type RunStorePort interface {
	Save(ctx context.Context, run domain.PipelineRun) error
}
