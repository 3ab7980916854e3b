package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

type pageTextGenerator struct {
	logger         outbound.LoggerPort
	scriptStreamer outbound.ScriptStreamerPort
}

func NewPageTextGenerator(logger outbound.LoggerPort, scriptStreamer outbound.ScriptStreamerPort) inbound.PageTextGeneratorPort {
	return &pageTextGenerator{
		logger:         logger,
		scriptStreamer: scriptStreamer,
	}
}

func (s *pageTextGenerator) Generate(ctx context.Context, params inbound.GeneratePagesParams) ([]domain.Page, error) {
	tokenCh, streamErrCh := s.scriptStreamer.Generate(ctx, outbound.GenerateScriptRequest{
		Prompt:    params.Prompt,
		Style:     params.Style,
		PageCount: params.PageCount,
	})

	var builder strings.Builder
	for tokenCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err, ok := <-streamErrCh:
			if !ok {
				streamErrCh = nil
				continue
			}
			s.logger.Error(err, "Script stream failed")
			return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
		case token, ok := <-tokenCh:
			if !ok {
				tokenCh = nil
				continue
			}
			builder.WriteString(token)
		}
	}

	// The stream may close in the same instant the error channel is written.
	if streamErrCh != nil {
		select {
		case err, ok := <-streamErrCh:
			if ok && err != nil {
				s.logger.Error(err, "Script stream failed")
				return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
			}
		default:
		}
	}

	storyText, found := ExtractFinalStory(builder.String())
	if !found {
		s.logger.WarnWithFields("Script contains no page marker", map[string]interface{}{
			"story_id": params.StoryID,
			"length":   builder.Len(),
		})
		return nil, fmt.Errorf("%w: no page marker in script", domain.ErrGenerationFailed)
	}

	pages := ParseStoryPages(storyText)
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: script parsed to zero pages", domain.ErrGenerationFailed)
	}

	s.logger.DebugWithFields("Story script parsed", map[string]interface{}{
		"story_id": params.StoryID,
		"pages":    len(pages),
	})

	return pages, nil
}
