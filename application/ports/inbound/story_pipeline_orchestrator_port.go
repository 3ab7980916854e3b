package inbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

type StartPipelineParams struct {
	StoryID             string
	Prompt              string
	Style               string
	VoiceID             string
	PageCount           int
	UseStyleConsistency bool
	OrderedDelivery     bool
}

type StoryPipelineOrchestratorPort interface {
	// StartPipeline runs the pipeline in streaming mode: one story event,
	// one scene event per page as it settles, then a terminal complete. The
	// error channel carries only fatal stage-one failures.
	StartPipeline(ctx context.Context, params StartPipelineParams) (<-chan domain.StoryEvent, <-chan error)

	// GenerateStory runs the same pipeline in batch mode, waiting for every
	// page to settle and assembling the story in page-index order.
	GenerateStory(ctx context.Context, params StartPipelineParams) (domain.Story, error)
}
