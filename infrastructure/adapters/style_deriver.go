package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
)

const stylePrompt = "You are an art director for children's picture books. " +
	"Given a story topic, reply with one short visual style descriptor " +
	"(palette, medium, mood) that an illustrator could apply to every page. " +
	"Reply with the descriptor only, no prose."

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type styleDeriver struct {
	ContentFetcher
	logger       outbound.LoggerPort
	scriptConfig *config.ScriptConfig
}

func NewStyleDeriver(contentFetcher ContentFetcher, scriptConfig *config.ScriptConfig,
	logger outbound.LoggerPort) outbound.StyleDeriverPort {
	return &styleDeriver{
		ContentFetcher: contentFetcher,
		logger:         logger,
		scriptConfig:   scriptConfig,
	}
}

func (s *styleDeriver) DeriveStyle(ctx context.Context, prompt string, style string) (string, error) {
	reqBody := chatRequest{
		Stream: false,
		Model:  s.scriptConfig.Model,
		Messages: []chatMessage{
			{Role: "system", Content: stylePrompt},
			{Role: "user", Content: fmt.Sprintf("Story topic: %q. Requested style: %s.", prompt, style)},
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the style request body")
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.scriptConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		s.logger.Error(err, "Failed to create the style HTTP request")
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.scriptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	rawRes, err := s.FetchContent(req)
	if err != nil {
		return "", err
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(rawRes, &completion); err != nil {
		s.logger.Error(err, "Failed to unmarshal the style response")
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("style response contains no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
