package outbound

import "context"

type GenerateScriptRequest struct {
	Prompt    string
	Style     string
	PageCount int
}

// ScriptStreamerPort streams raw script tokens from the text back-end. The
// token channel closes when the stream ends; a send on the error channel is
// fatal for the stream.
type ScriptStreamerPort interface {
	Generate(ctx context.Context, req GenerateScriptRequest) (<-chan string, <-chan error)
}
