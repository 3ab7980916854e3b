package inbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

type GeneratePagesParams struct {
	StoryID   string
	Prompt    string
	Style     string
	PageCount int
}

// PageTextGeneratorPort is stage one of the pipeline: it blocks until the
// script back-end has produced the full story and returns the parsed,
// positionally ordered page list.
type PageTextGeneratorPort interface {
	Generate(ctx context.Context, params GeneratePagesParams) ([]domain.Page, error)
}
