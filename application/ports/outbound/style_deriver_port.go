package outbound

import "context"

// StyleDeriverPort asks the text back-end for a master style descriptor that
// keeps illustrations visually consistent across a story's pages.
type StyleDeriverPort interface {
	DeriveStyle(ctx context.Context, prompt string, style string) (string, error)
}
