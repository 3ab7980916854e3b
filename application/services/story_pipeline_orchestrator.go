package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

type storyPipelineOrchestrator struct {
	logger             outbound.LoggerPort
	workerPool         outbound.TaskDispatcher
	pageGenerator      inbound.PageTextGeneratorPort
	mediaRenderer      inbound.PageMediaRendererPort
	styleDirector      inbound.StyleDirectorPort
	runRecorder        inbound.RunRecorderPort
	maxConcurrentPages int
}

func NewStoryPipelineOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	pageGenerator inbound.PageTextGeneratorPort, mediaRenderer inbound.PageMediaRendererPort,
	styleDirector inbound.StyleDirectorPort, runRecorder inbound.RunRecorderPort,
	maxConcurrentPages int) inbound.StoryPipelineOrchestratorPort {
	return &storyPipelineOrchestrator{
		logger:             logger,
		workerPool:         workerPool,
		pageGenerator:      pageGenerator,
		mediaRenderer:      mediaRenderer,
		styleDirector:      styleDirector,
		runRecorder:        runRecorder,
		maxConcurrentPages: maxConcurrentPages,
	}
}

func (s *storyPipelineOrchestrator) StartPipeline(ctx context.Context, params inbound.StartPipelineParams) (<-chan domain.StoryEvent, <-chan error) {
	out := make(chan domain.StoryEvent)
	errCh := make(chan error, 1)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		s.run(ctx, params, out, errCh)
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (s *storyPipelineOrchestrator) GenerateStory(ctx context.Context, params inbound.StartPipelineParams) (domain.Story, error) {
	events, errCh := s.StartPipeline(ctx, params)

	var runErr error
	pages := make([]domain.Page, 0)
	for events != nil || errCh != nil {
		select {
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if event.Type == domain.SceneEventType && event.Page != nil {
				pages = append(pages, *event.Page)
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			runErr = err
		}
	}
	if runErr != nil {
		return domain.Story{}, runErr
	}

	// Batch mode assembles in page-index order regardless of completion order.
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Index < pages[j].Index
	})

	return domain.NewStory(params.StoryID, params.Prompt, pages), nil
}

// run drives the two stages. Stage one blocks the whole run on a single
// result; stage two forks one render task per page with bounded concurrency.
// Stage-two failures degrade pages and never abort the run.
func (s *storyPipelineOrchestrator) run(ctx context.Context, params inbound.StartPipelineParams, out chan<- domain.StoryEvent, errCh chan<- error) {
	startedAt := time.Now()

	pages, err := s.pageGenerator.Generate(ctx, inbound.GeneratePagesParams{
		StoryID:   params.StoryID,
		Prompt:    params.Prompt,
		Style:     params.Style,
		PageCount: params.PageCount,
	})
	scriptStage := time.Since(startedAt)
	if err != nil {
		s.logger.ErrorWithFields(err, "Stage one failed, aborting run", map[string]interface{}{
			"story_id": params.StoryID,
		})
		s.emit(ctx, out, domain.NewErrorEvent(params.StoryID, err.Error()))
		errCh <- err
		s.runRecorder.Record(ctx, domain.PipelineRun{
			StoryID:     params.StoryID,
			Prompt:      params.Prompt,
			ScriptStage: scriptStage,
			StartedAt:   startedAt,
		})
		return
	}

	s.emit(ctx, out, domain.NewStoryPagesEvent(params.StoryID, pages))

	styleContext := ""
	if params.UseStyleConsistency {
		styleContext = s.styleDirector.DeriveMasterStyle(ctx, params.Prompt, params.Style)
	}

	mediaStart := time.Now()
	completed := s.renderAll(ctx, params, pages, styleContext)

	var resequencer *sceneResequencer
	if params.OrderedDelivery {
		resequencer = newSceneResequencer()
	}

	degraded := 0
	for page := range completed {
		if page.Degraded() {
			degraded++
		}
		event := domain.NewSceneEvent(params.StoryID, page)
		if resequencer == nil {
			s.emit(ctx, out, event)
			continue
		}
		for _, ready := range resequencer.Add(event) {
			s.emit(ctx, out, ready)
		}
	}
	if resequencer != nil {
		for _, leftover := range resequencer.Flush() {
			s.emit(ctx, out, leftover)
		}
	}

	s.emit(ctx, out, domain.NewCompleteEvent(params.StoryID))

	s.runRecorder.Record(ctx, domain.PipelineRun{
		StoryID:       params.StoryID,
		Prompt:        params.Prompt,
		PageCount:     len(pages),
		DegradedPages: degraded,
		ScriptStage:   scriptStage,
		MediaStage:    time.Since(mediaStart),
		StartedAt:     startedAt,
	})
}

// renderAll fans stage two out over the pages. A semaphore sized to the
// configured maximum bounds simultaneous outbound calls; pages queue FIFO
// for a slot when the bound is smaller than the page count.
func (s *storyPipelineOrchestrator) renderAll(ctx context.Context, params inbound.StartPipelineParams, pages []domain.Page, styleContext string) <-chan domain.Page {
	completed := make(chan domain.Page)

	maxInFlight := s.maxConcurrentPages
	if maxInFlight <= 0 || maxInFlight > len(pages) {
		maxInFlight = len(pages)
	}
	slots := make(chan struct{}, maxInFlight)

	renderParams := inbound.RenderPageParams{
		StoryID:      params.StoryID,
		VoiceID:      params.VoiceID,
		StyleContext: styleContext,
	}

	var wg sync.WaitGroup
	for _, page := range pages {
		page := page
		wg.Add(1)
		err := s.workerPool.Submit(func() {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()
			completed <- s.mediaRenderer.Render(ctx, page, renderParams)
		})
		if err != nil {
			// The page still settles, text-only, so the event grammar holds.
			s.logger.ErrorWithFields(err, "Failed to fork page render task", map[string]interface{}{
				"story_id": params.StoryID,
				"page":     page.Index,
			})
			go func() {
				defer wg.Done()
				completed <- page
			}()
		}
	}

	closer := func() {
		wg.Wait()
		close(completed)
	}
	if err := s.workerPool.Submit(closer); err != nil {
		go closer()
	}

	return completed
}

// emit drops the write once the consumer is gone; in-flight renders run to
// completion and their results are discarded.
func (s *storyPipelineOrchestrator) emit(ctx context.Context, out chan<- domain.StoryEvent, event domain.StoryEvent) {
	select {
	case out <- event:
	case <-ctx.Done():
	}
}
