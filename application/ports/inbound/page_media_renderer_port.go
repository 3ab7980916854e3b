package inbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

type RenderPageParams struct {
	StoryID      string
	VoiceID      string
	StyleContext string
}

// PageMediaRendererPort is stage two's per-page executor. Render always
// returns a page: media failures leave the corresponding ref empty.
type PageMediaRendererPort interface {
	Render(ctx context.Context, page domain.Page, params RenderPageParams) domain.Page
}
