package services

import (
	"context"
	"time"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

const runSaveTimeout = 10 * time.Second

type runRecorder struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	runStore   outbound.RunStorePort
}

func NewRunRecorder(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	runStore outbound.RunStorePort) inbound.RunRecorderPort {
	return &runRecorder{
		logger:     logger,
		workerPool: workerPool,
		runStore:   runStore,
	}
}

// Record persists the run off the hot path. The save uses its own context
// so a client disconnect does not lose the record; failures are logged only.
func (s *runRecorder) Record(_ context.Context, run domain.PipelineRun) {
	err := s.workerPool.Submit(func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), runSaveTimeout)
		defer cancel()

		if err := s.runStore.Save(saveCtx, run); err != nil {
			s.logger.WarnWithFields("Failed to save pipeline run record", map[string]interface{}{
				"story_id": run.StoryID,
				"error":    err.Error(),
			})
			return
		}
		s.logger.DebugWithFields("Pipeline run recorded", map[string]interface{}{
			"story_id": run.StoryID,
			"pages":    run.PageCount,
			"degraded": run.DegradedPages,
		})
	})
	if err != nil {
		s.logger.Warn("Worker pool rejected run record task")
	}
}
