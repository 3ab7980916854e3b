package inbound

import "context"

// StyleDirectorPort derives the master style descriptor shared by all of a
// story's image prompts. An empty return means per-page styling.
type StyleDirectorPort interface {
	DeriveMasterStyle(ctx context.Context, prompt string, style string) string
}
