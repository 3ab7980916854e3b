package outbound

import "context"

type GenerateSpeechParams struct {
	Text    string
	VoiceID string
}

type SpeechGeneratorPort interface {
	Generate(ctx context.Context, params GenerateSpeechParams) ([]byte, error)
}
