package services

import (
	"sort"

	"github.com/lissani/devfest-vivid-stroy/domain"
)

// sceneResequencer turns completion-order scene events into page-index
// order. Events arrive tagged with their page index; Add buffers out-of-order
// arrivals and releases the longest contiguous run starting at the next
// expected index.
type sceneResequencer struct {
	next    int
	pending map[int]domain.StoryEvent
}

func newSceneResequencer() *sceneResequencer {
	return &sceneResequencer{
		next:    1,
		pending: make(map[int]domain.StoryEvent),
	}
}

func (r *sceneResequencer) Add(event domain.StoryEvent) []domain.StoryEvent {
	if event.Page == nil {
		return []domain.StoryEvent{event}
	}
	r.pending[event.Page.Index] = event

	var ready []domain.StoryEvent
	for {
		next, ok := r.pending[r.next]
		if !ok {
			return ready
		}
		delete(r.pending, r.next)
		r.next++
		ready = append(ready, next)
	}
}

// Flush drains whatever is still buffered, in ascending index order. A
// script that skipped an ordinal would otherwise strand its successors.
func (r *sceneResequencer) Flush() []domain.StoryEvent {
	if len(r.pending) == 0 {
		return nil
	}
	indices := make([]int, 0, len(r.pending))
	for index := range r.pending {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	flushed := make([]domain.StoryEvent, 0, len(indices))
	for _, index := range indices {
		flushed = append(flushed, r.pending[index])
		delete(r.pending, index)
	}
	return flushed
}
