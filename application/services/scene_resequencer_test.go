package services

import (
	"testing"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

func sceneFor(index int) domain.StoryEvent {
	return domain.NewSceneEvent("story-1", domain.Page{Index: index, Text: "text"})
}

func indices(events []domain.StoryEvent) []int {
	out := make([]int, 0, len(events))
	for _, event := range events {
		out = append(out, event.Page.Index)
	}
	return out
}

func TestSceneResequencer_ReleasesContiguousRuns(t *testing.T) {
	r := newSceneResequencer()

	if ready := r.Add(sceneFor(3)); len(ready) != 0 {
		t.Fatalf("Expected nothing released for out-of-order scene, got %v", indices(ready))
	}
	if ready := r.Add(sceneFor(2)); len(ready) != 0 {
		t.Fatalf("Expected nothing released, got %v", indices(ready))
	}

	ready := r.Add(sceneFor(1))
	if got := indices(ready); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("Expected release of 1,2,3, got %v", got)
	}

	ready = r.Add(sceneFor(4))
	if got := indices(ready); len(got) != 1 || got[0] != 4 {
		t.Fatalf("Expected immediate release of 4, got %v", got)
	}
}

func TestSceneResequencer_FlushDrainsGaps(t *testing.T) {
	r := newSceneResequencer()

	// Ordinal 1 never arrives, so 2 and 4 stay buffered until flush.
	r.Add(sceneFor(4))
	r.Add(sceneFor(2))

	flushed := r.Flush()
	if got := indices(flushed); len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("Expected flush of 2,4 in ascending order, got %v", got)
	}
	if again := r.Flush(); len(again) != 0 {
		t.Fatal("Second flush should be empty")
	}
}

func TestSceneResequencer_PassesThroughNonScenes(t *testing.T) {
	r := newSceneResequencer()
	event := domain.NewCompleteEvent("story-1")
	out := r.Add(event)
	if len(out) != 1 || out[0].Type != domain.CompleteEventType {
		t.Fatalf("Expected pass-through, got %v", out)
	}
}
