package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/domain"
)

func newTestRenderer(t *testing.T, image *stubImageGenerator, speech *stubSpeechGenerator, store *stubMediaStore) inbound.PageMediaRendererPort {
	t.Helper()

	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	return NewPageMediaRenderer(nopLogger{}, image, speech, store, workerPool, time.Second, 1)
}

func TestPageMediaRenderer_AllCombinations(t *testing.T) {
	mediaErr := errors.New("media back-end down")

	cases := []struct {
		name      string
		imageErr  error
		speechErr error
		wantImage bool
		wantAudio bool
	}{
		{"both succeed", nil, nil, true, true},
		{"image fails", mediaErr, nil, false, true},
		{"speech fails", nil, mediaErr, true, false},
		{"both fail", mediaErr, mediaErr, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderer := newTestRenderer(t,
				&stubImageGenerator{err: tc.imageErr},
				&stubSpeechGenerator{err: tc.speechErr},
				&stubMediaStore{})

			page := renderer.Render(context.Background(), domain.Page{Index: 1, Text: "A page."}, inbound.RenderPageParams{
				StoryID: uuid.NewString(),
				VoiceID: "voice-1",
			})

			if page.Index != 1 || page.Text != "A page." {
				t.Fatalf("Render altered the page identity: %+v", page)
			}
			if (page.ImageRef != "") != tc.wantImage {
				t.Fatalf("Expected image ref presence=%v, got %q", tc.wantImage, page.ImageRef)
			}
			if (page.AudioRef != "") != tc.wantAudio {
				t.Fatalf("Expected audio ref presence=%v, got %q", tc.wantAudio, page.AudioRef)
			}
		})
	}
}

func TestPageMediaRenderer_StoreFailureDegrades(t *testing.T) {
	renderer := newTestRenderer(t,
		&stubImageGenerator{},
		&stubSpeechGenerator{},
		&stubMediaStore{err: errors.New("bucket gone")})

	page := renderer.Render(context.Background(), domain.Page{Index: 2, Text: "A page."}, inbound.RenderPageParams{
		StoryID: uuid.NewString(),
		VoiceID: "voice-1",
	})

	if page.ImageRef != "" || page.AudioRef != "" {
		t.Fatalf("Expected empty refs when the store fails, got %+v", page)
	}
}

func TestPageMediaRenderer_RecordsLocators(t *testing.T) {
	store := &stubMediaStore{}
	renderer := newTestRenderer(t, &stubImageGenerator{}, &stubSpeechGenerator{}, store)

	storyID := uuid.NewString()
	page := renderer.Render(context.Background(), domain.Page{Index: 3, Text: "A page."}, inbound.RenderPageParams{
		StoryID: storyID,
		VoiceID: "voice-1",
	})

	if !strings.Contains(page.ImageRef, storyID) || !strings.Contains(page.ImageRef, "image") {
		t.Fatalf("Unexpected image locator %q", page.ImageRef)
	}
	if !strings.Contains(page.AudioRef, storyID) || !strings.Contains(page.AudioRef, "audio") {
		t.Fatalf("Unexpected audio locator %q", page.AudioRef)
	}
}

func TestPageMediaRenderer_StyleContextPrefixesImagePrompt(t *testing.T) {
	image := &stubImageGenerator{}
	renderer := newTestRenderer(t, image, &stubSpeechGenerator{}, &stubMediaStore{})

	renderer.Render(context.Background(), domain.Page{Index: 1, Text: "A page."}, inbound.RenderPageParams{
		StoryID:      uuid.NewString(),
		VoiceID:      "voice-1",
		StyleContext: "soft watercolor",
	})

	if got := image.prompt(); !strings.HasPrefix(got, "soft watercolor") || !strings.Contains(got, "A page.") {
		t.Fatalf("Expected style context to prefix the image prompt, got %q", got)
	}
}

// cappedDispatcher rejects everything past a fixed submission count.
type cappedDispatcher struct {
	pool      *ants.Pool
	remaining int
}

func (d *cappedDispatcher) Submit(task func()) error {
	if d.remaining <= 0 {
		return ants.ErrPoolOverload
	}
	d.remaining--
	return d.pool.Submit(task)
}

func TestPageMediaRenderer_FanInRejectionKeepsResults(t *testing.T) {
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	// Both media tasks and one fan-in task go through before the pool
	// starts rejecting, so the merge aborts half-submitted and Render
	// falls back to draining the sub-results itself.
	dispatcher := &cappedDispatcher{pool: workerPool, remaining: 3}
	store := &stubMediaStore{}
	renderer := NewPageMediaRenderer(nopLogger{}, &stubImageGenerator{}, &stubSpeechGenerator{},
		store, dispatcher, time.Second, 1)

	page := renderer.Render(context.Background(), domain.Page{Index: 1, Text: "A page."}, inbound.RenderPageParams{
		StoryID: uuid.NewString(),
		VoiceID: "voice-1",
	})

	if page.ImageRef == "" || page.AudioRef == "" {
		t.Fatalf("Expected both refs to survive a rejected fan-in, got %+v", page)
	}
}

func TestPageMediaRenderer_PermanentErrorNotRetried(t *testing.T) {
	image := &stubImageGenerator{err: &domain.HTTPStatusError{Code: 401}}
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	// A generous attempt budget: the 401 must still stop after one call.
	renderer := NewPageMediaRenderer(nopLogger{}, image, &stubSpeechGenerator{}, &stubMediaStore{},
		workerPool, time.Second, 5)

	page := renderer.Render(context.Background(), domain.Page{Index: 1, Text: "A page."}, inbound.RenderPageParams{
		StoryID: uuid.NewString(),
		VoiceID: "voice-1",
	})

	if page.ImageRef != "" {
		t.Fatalf("Expected empty image ref, got %q", page.ImageRef)
	}
	if got := image.callCount(); got != 1 {
		t.Fatalf("Expected exactly 1 image call for a permanent error, got %d", got)
	}
}
