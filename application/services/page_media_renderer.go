package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/channel_utils"
	"github.com/lissani/devfest-vivid-stroy/domain"
	"github.com/lissani/devfest-vivid-stroy/retry_utils"
)

type mediaResult struct {
	mediaType domain.MediaType
	ref       string
}

type pageMediaRenderer struct {
	logger          outbound.LoggerPort
	imageGenerator  outbound.ImageGeneratorPort
	speechGenerator outbound.SpeechGeneratorPort
	mediaStore      outbound.MediaStorePort
	workerPool      outbound.TaskDispatcher
	callTimeout     time.Duration
	maxAttempts     int
}

func NewPageMediaRenderer(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	speechGenerator outbound.SpeechGeneratorPort, mediaStore outbound.MediaStorePort,
	workerPool outbound.TaskDispatcher, callTimeout time.Duration, maxAttempts int) inbound.PageMediaRendererPort {
	return &pageMediaRenderer{
		logger:          logger,
		imageGenerator:  imageGenerator,
		speechGenerator: speechGenerator,
		mediaStore:      mediaStore,
		workerPool:      workerPool,
		callTimeout:     callTimeout,
		maxAttempts:     maxAttempts,
	}
}

// Render issues the image and speech calls concurrently and attaches
// whatever succeeded. It never fails the caller: a media type that exhausts
// its retries leaves its ref empty behind a logged warning. The two
// sub-results are commutative, so arrival order does not matter.
func (s *pageMediaRenderer) Render(ctx context.Context, page domain.Page, params inbound.RenderPageParams) domain.Page {
	imageCh := s.renderAsync(func() mediaResult {
		return mediaResult{domain.ImageMediaType, s.renderImage(ctx, page, params)}
	})
	audioCh := s.renderAsync(func() mediaResult {
		return mediaResult{domain.AudioMediaType, s.renderSpeech(ctx, page, params)}
	})

	merged, err := channel_utils.MergeChannels(s.workerPool, imageCh, audioCh)
	if err != nil {
		// Pool saturation degrades to draining the two sub-results directly.
		s.logger.Warn("Worker pool rejected media fan-in, draining sequentially")
		s.apply(&page, <-imageCh)
		s.apply(&page, <-audioCh)
		return page
	}

	for result := range merged {
		s.apply(&page, result)
	}
	return page
}

func (s *pageMediaRenderer) apply(page *domain.Page, result mediaResult) {
	switch result.mediaType {
	case domain.ImageMediaType:
		page.ImageRef = result.ref
	case domain.AudioMediaType:
		page.AudioRef = result.ref
	}
}

// renderAsync runs task on the pool, falling back to inline execution when
// the pool rejects it, so a saturated pool costs latency instead of a page.
func (s *pageMediaRenderer) renderAsync(task func() mediaResult) <-chan mediaResult {
	out := make(chan mediaResult, 1)
	if err := s.workerPool.Submit(func() {
		defer close(out)
		out <- task()
	}); err != nil {
		s.logger.Warn("Worker pool rejected media task, running inline")
		out <- task()
		close(out)
	}
	return out
}

func (s *pageMediaRenderer) renderImage(ctx context.Context, page domain.Page, params inbound.RenderPageParams) string {
	description := page.Text
	if params.StyleContext != "" {
		description = fmt.Sprintf("%s. %s", params.StyleContext, page.Text)
	}

	content, err := retry_utils.Do(ctx, s.logger, "image generation", s.maxAttempts, func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		return s.imageGenerator.Generate(callCtx, description)
	})
	if err != nil {
		s.logger.WarnWithFields("Image generation failed, page degrades", map[string]interface{}{
			"story_id": params.StoryID,
			"page":     page.Index,
			"error":    err.Error(),
		})
		return ""
	}

	return s.saveMedia(ctx, params.StoryID, page.Index, domain.ImageMediaType, content)
}

func (s *pageMediaRenderer) renderSpeech(ctx context.Context, page domain.Page, params inbound.RenderPageParams) string {
	content, err := retry_utils.Do(ctx, s.logger, "speech generation", s.maxAttempts, func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		return s.speechGenerator.Generate(callCtx, outbound.GenerateSpeechParams{
			Text:    page.Text,
			VoiceID: params.VoiceID,
		})
	})
	if err != nil {
		s.logger.WarnWithFields("Speech generation failed, page degrades", map[string]interface{}{
			"story_id": params.StoryID,
			"page":     page.Index,
			"error":    err.Error(),
		})
		return ""
	}

	return s.saveMedia(ctx, params.StoryID, page.Index, domain.AudioMediaType, content)
}

func (s *pageMediaRenderer) saveMedia(ctx context.Context, storyID string, pageIndex int, mediaType domain.MediaType, content []byte) string {
	locator, err := s.mediaStore.Save(ctx, domain.PageMedia{
		StoryID:   storyID,
		PageIndex: pageIndex,
		Type:      mediaType,
		Content:   content,
	})
	if err != nil {
		s.logger.WarnWithFields("Failed to store generated media, page degrades", map[string]interface{}{
			"story_id": storyID,
			"page":     pageIndex,
			"type":     mediaType,
			"error":    err.Error(),
		})
		return ""
	}
	return locator
}
