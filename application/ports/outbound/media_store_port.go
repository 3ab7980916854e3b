package outbound

import (
	"context"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

// MediaStorePort persists generated binary media and returns a locator. The
// caller never holds the bytes past the save.
type MediaStorePort interface {
	Save(ctx context.Context, media domain.PageMedia) (string, error)
}
