package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/donovanhide/eventsource"

	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
)

const DoneSignal = "[DONE]"
const MaxStreamRetries = 3

const storybookPromptTemplate = "You are a professional children's storybook writer with 20 years of experience writing for children ages 4-8.\n" +
	"Write a whimsical, gentle, and encouraging children's storybook with the following requirements:\n" +
	"- Exactly %d pages total.\n" +
	"- Each page contains 1-2 short sentences.\n" +
	"- Clear beginning, middle, and end.\n" +
	"- Light rhyming throughout.\n" +
	"- Easy to read aloud.\n" +
	"- Focus on ONE clear child-friendly lesson.\n" +
	"\n" +
	"Formatting rules:\n" +
	"- Label each section as \"Page 1:\", \"Page 2:\", etc.\n" +
	"- The output must begin with \"Page 1:\" and end with the final page.\n" +
	"- No text is allowed before or after the story.\n" +
	"\n" +
	"Restrictions:\n" +
	"- Do NOT include explanations, analysis, reasoning, planning, or commentary.\n" +
	"- Do NOT mention being an AI or following instructions.\n" +
	"- Output ONLY the story text."

type chatRequest struct {
	Stream   bool          `json:"stream"`
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChunkBody struct {
	Choices []chatChunkChoice `json:"choices"`
}

type chatChunkChoice struct {
	Index int `json:"index"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type scriptStreamGenerator struct {
	logger       outbound.LoggerPort
	scriptConfig *config.ScriptConfig
	workerPool   outbound.TaskDispatcher
}

func NewScriptStreamGenerator(scriptConfig *config.ScriptConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.ScriptStreamerPort {
	return &scriptStreamGenerator{
		logger:       logger,
		scriptConfig: scriptConfig,
		workerPool:   workerPool,
	}
}

func (s *scriptStreamGenerator) Generate(ctx context.Context, req outbound.GenerateScriptRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	retryCount := 0

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		httpReq, err := s.createRequest(newCtx, req)
		if err != nil {
			s.logger.Error(err, "Failed to create HTTP request for script stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			s.logger.Error(err, "Failed to subscribe to script stream")
			errCh <- err
			return
		}
		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				if ev.Data() != DoneSignal {
					payload, err := s.extractPayload(ev)
					if err != nil {
						errCh <- err
						return
					}
					select {
					case out <- payload:
					case <-newCtx.Done():
						return
					}
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					s.logger.Debug("Script stream closed")
					return
				} else if retryCount < MaxStreamRetries {
					s.logger.WarnWithFields("Error during script streaming, retrying", map[string]interface{}{
						"retry_count": retryCount,
						"error":       err.Error(),
					})
					retryCount++
					continue
				}
				s.logger.Error(err, "Script streaming failed, max retries reached")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "Failed to submit script stream task to worker pool")
		errCh <- err
	}

	return out, errCh
}

func (s *scriptStreamGenerator) extractPayload(event eventsource.Event) (string, error) {
	var chunkBody chatChunkBody
	err := json.Unmarshal([]byte(event.Data()), &chunkBody)
	if err != nil {
		s.logger.Error(err, "Failed to unmarshal script stream chunk")
		return "", err
	}
	if len(chunkBody.Choices) == 0 {
		return "", nil
	}
	return chunkBody.Choices[0].Delta.Content, nil
}

func (s *scriptStreamGenerator) createRequest(ctx context.Context, req outbound.GenerateScriptRequest) (*http.Request, error) {
	systemMessage := chatMessage{
		Role:    "system",
		Content: fmt.Sprintf(storybookPromptTemplate, req.PageCount),
	}
	userMessage := chatMessage{
		Role:    "user",
		Content: fmt.Sprintf("Write a %s story centered around the following topic: %q", req.Style, req.Prompt),
	}

	promptReq := chatRequest{
		Stream:   true,
		Model:    s.scriptConfig.Model,
		Messages: []chatMessage{systemMessage, userMessage},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		s.logger.Error(err, "Failed to marshal the script request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.scriptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		s.logger.Error(err, "Failed to create the script HTTP request")
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.scriptConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
