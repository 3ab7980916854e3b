package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/config"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                      {}
func (nopLogger) InfoWithFields(string, map[string]interface{})    {}
func (nopLogger) Error(error, string)                              {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {
}
func (nopLogger) Debug(string)                                  {}
func (nopLogger) DebugWithFields(string, map[string]interface{}) {
}
func (nopLogger) Warn(string)                                  {}
func (nopLogger) WarnWithFields(string, map[string]interface{}) {
}

// captureOrchestrator records the bound parameters and completes instantly.
type captureOrchestrator struct {
	params inbound.StartPipelineParams
}

func (o *captureOrchestrator) StartPipeline(_ context.Context, params inbound.StartPipelineParams) (<-chan domain.StoryEvent, <-chan error) {
	o.params = params
	events := make(chan domain.StoryEvent)
	errCh := make(chan error)
	close(events)
	close(errCh)
	return events, errCh
}

func (o *captureOrchestrator) GenerateStory(_ context.Context, params inbound.StartPipelineParams) (domain.Story, error) {
	o.params = params
	return domain.NewStory(params.StoryID, params.Prompt, nil), nil
}

func newTestRouter(t *testing.T, orchestrator *captureOrchestrator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller := NewStoryController(nopLogger{}, orchestrator, &config.PipelineConfig{
		DefaultPageCount: 4,
		DefaultVoiceID:   "voice-1",
		DefaultStyle:     "fantasy",
	})

	router := gin.New()
	router.POST("/stories", controller.CreateStory)
	return router
}

func TestCreateStory_ClampsPageCount(t *testing.T) {
	cases := []struct {
		name      string
		pageCount int
		want      int
	}{
		{"missing count uses default", 0, 4},
		{"below range clamps up", 1, config.MinPageCount},
		{"above range clamps down", 99, config.MaxPageCount},
		{"in range passes through", 6, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orchestrator := &captureOrchestrator{}
			router := newTestRouter(t, orchestrator)

			body := map[string]interface{}{"prompt": "A dragon learns to bake."}
			if tc.pageCount != 0 {
				body["page_count"] = tc.pageCount
			}
			payload, err := json.Marshal(body)
			if err != nil {
				t.Fatal("Failed to marshal request body:", err)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/stories", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != 200 {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := orchestrator.params.PageCount; got != tc.want {
				t.Fatalf("Expected page count %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCreateStory_MissingPromptRejected(t *testing.T) {
	orchestrator := &captureOrchestrator{}
	router := newTestRouter(t, orchestrator)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/stories", bytes.NewReader([]byte(`{"page_count":3}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("Expected 400 for a missing prompt, got %d", rec.Code)
	}
}

func TestCreateStory_AppliesVoiceAndStyleDefaults(t *testing.T) {
	orchestrator := &captureOrchestrator{}
	router := newTestRouter(t, orchestrator)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/stories", bytes.NewReader([]byte(`{"prompt":"A quiet lighthouse."}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if orchestrator.params.VoiceID != "voice-1" || orchestrator.params.Style != "fantasy" {
		t.Fatalf("Expected configured defaults, got %+v", orchestrator.params)
	}
}
