package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
)

type elevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechGenerator struct {
	ContentFetcher
	logger           outbound.LoggerPort
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewSpeechGenerator(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig,
	logger outbound.LoggerPort) outbound.SpeechGeneratorPort {
	return &speechGenerator{
		ContentFetcher:   contentFetcher,
		logger:           logger,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (a *speechGenerator) Generate(ctx context.Context, params outbound.GenerateSpeechParams) ([]byte, error) {
	req, err := a.getRequest(ctx, params.Text, params.VoiceID)
	if err != nil {
		a.logger.ErrorWithFields(err, "Failed to construct the speech HTTP request", map[string]interface{}{
			"voice_id": params.VoiceID,
		})
		return nil, err
	}

	return a.FetchContent(req)
}

func (a *speechGenerator) getRequest(ctx context.Context, text string, voiceID string) (*http.Request, error) {
	reqBody := elevenLabsRequest{
		Text:    text,
		ModelId: a.elevenLabsConfig.ModelId,
		VoiceSettings: voiceSettings{
			Stability:       a.elevenLabsConfig.Stability,
			SimilarityBoost: a.elevenLabsConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the speech request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.elevenLabsConfig.ApiUrl+"/"+voiceID, bytes.NewBuffer(jsonPayload))
	if err != nil {
		a.logger.ErrorWithFields(err, "Failed to create the speech HTTP request", map[string]interface{}{
			"URL": a.elevenLabsConfig.ApiUrl + "/" + voiceID,
		})
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", a.elevenLabsConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
