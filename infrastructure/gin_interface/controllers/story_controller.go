package controllers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/config"
	"github.com/lissani/devfest-vivid-stroy/infrastructure/gin_interface/dto"
	"github.com/lissani/devfest-vivid-stroy/middleware"
)

type StoryController interface {
	CreateStory(c *gin.Context)
	StreamStory(c *gin.Context)
	RegisterRoutes(g *gin.Engine, workerPool outbound.TaskDispatcher)
}

type storyController struct {
	logger         outbound.LoggerPort
	orchestrator   inbound.StoryPipelineOrchestratorPort
	pipelineConfig *config.PipelineConfig
}

func NewStoryController(logger outbound.LoggerPort, orchestrator inbound.StoryPipelineOrchestratorPort,
	pipelineConfig *config.PipelineConfig) StoryController {
	return &storyController{
		logger:         logger,
		orchestrator:   orchestrator,
		pipelineConfig: pipelineConfig,
	}
}

// CreateStory is the batch entrypoint: it waits for every page to settle
// and returns the assembled story as one JSON document.
func (s *storyController) CreateStory(c *gin.Context) {
	params, ok := s.bindParams(c)
	if !ok {
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	story, err := s.orchestrator.GenerateStory(newCtx, params)
	if err != nil {
		s.logger.ErrorWithFields(err, "Story generation failed", map[string]interface{}{
			"story_id": params.StoryID,
		})
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, dto.CreateStoryResponse{
		StoryID: story.ID,
		Prompt:  story.Prompt,
		Pages:   story.Pages,
	})
}

// StreamStory is the streaming entrypoint: events are written as SSE data
// blocks as the pipeline makes progress and the connection closes after the
// terminal complete or error event.
func (s *storyController) StreamStory(c *gin.Context) {
	params, ok := s.bindParams(c)
	if !ok {
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	streamWriter := middleware.StreamWriterFor(c)
	events, errCh := s.orchestrator.StartPipeline(newCtx, params)

	for events != nil || errCh != nil {
		select {
		case event, open := <-events:
			if !open {
				events = nil
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.Error(err, "Failed to marshal story event")
				continue
			}
			if err := streamWriter.WriteFrame("data: " + string(payload) + "\n\n"); err != nil {
				s.logger.Debug("Stream consumer disconnected")
				return
			}
		case err, open := <-errCh:
			if !open {
				errCh = nil
				continue
			}
			s.logger.ErrorWithFields(err, "Pipeline reported fatal error", map[string]interface{}{
				"story_id": params.StoryID,
			})
		}
	}
}

func (s *storyController) bindParams(c *gin.Context) (inbound.StartPipelineParams, bool) {
	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if abortErr := c.AbortWithError(400, err); abortErr != nil {
			s.logger.Error(abortErr, "Failed to abort with error")
		}
		return inbound.StartPipelineParams{}, false
	}

	style := req.Style
	if style == "" {
		style = s.pipelineConfig.DefaultStyle
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = s.pipelineConfig.DefaultVoiceID
	}

	return inbound.StartPipelineParams{
		StoryID:             uuid.NewString(),
		Prompt:              req.Prompt,
		Style:               style,
		VoiceID:             voiceID,
		PageCount:           s.pipelineConfig.ClampPageCount(req.PageCount),
		UseStyleConsistency: req.UseStyleConsistency,
		OrderedDelivery:     req.OrderedDelivery,
	}, true
}

func (s *storyController) RegisterRoutes(g *gin.Engine, workerPool outbound.TaskDispatcher) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Vivid Story API is running"})
	})
	g.POST("/stories", s.CreateStory)
	g.POST("/stories/stream", middleware.SSEMiddleware(workerPool), s.StreamStory)
}
