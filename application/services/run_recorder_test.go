package services

import (
	"context"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

type signalingRunStore struct {
	saved chan domain.PipelineRun
}

func (s *signalingRunStore) Save(_ context.Context, run domain.PipelineRun) error {
	s.saved <- run
	return nil
}

func TestRunRecorder_SavesOffHotPath(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	store := &signalingRunStore{saved: make(chan domain.PipelineRun, 1)}
	recorder := NewRunRecorder(nopLogger{}, workerPool, store)

	// A canceled request context must not lose the record.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder.Record(ctx, domain.PipelineRun{StoryID: "story-1", PageCount: 4})

	select {
	case run := <-store.saved:
		if run.StoryID != "story-1" || run.PageCount != 4 {
			t.Fatalf("Unexpected run record: %+v", run)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run record was never saved")
	}
}
