package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lissani/devfest-vivid-stroy/application/ports/inbound"
	"github.com/lissani/devfest-vivid-stroy/application/ports/outbound"
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

// stubScriptStreamer replays a canned script word by word, or fails with a
// fixed error before producing any tokens.
type stubScriptStreamer struct {
	script string
	err    error
}

func (s *stubScriptStreamer) Generate(ctx context.Context, _ outbound.GenerateScriptRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)
		if s.err != nil {
			errCh <- s.err
			return
		}
		for _, chunk := range strings.SplitAfter(s.script, " ") {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errCh
}

type stubImageGenerator struct {
	err        error
	mu         sync.Mutex
	calls      int
	lastPrompt string
}

func (g *stubImageGenerator) Generate(_ context.Context, description string) ([]byte, error) {
	g.mu.Lock()
	g.calls++
	g.lastPrompt = description
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return []byte("image-bytes"), nil
}

func (g *stubImageGenerator) prompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastPrompt
}

func (g *stubImageGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type stubSpeechGenerator struct {
	err error
}

func (g *stubSpeechGenerator) Generate(_ context.Context, _ outbound.GenerateSpeechParams) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("audio-bytes"), nil
}

type stubMediaStore struct {
	err error
	mu  sync.Mutex
	n   int
}

func (s *stubMediaStore) Save(_ context.Context, media domain.PageMedia) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return fmt.Sprintf("mem://%s/%s/page_%d", media.StoryID, media.Type, media.PageIndex), nil
}

type stubStyleDeriver struct {
	descriptor string
	err        error
}

func (s *stubStyleDeriver) DeriveStyle(_ context.Context, _ string, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.descriptor, nil
}

type stubStyleDirector struct {
	descriptor string
}

func (s *stubStyleDirector) DeriveMasterStyle(_ context.Context, _ string, _ string) string {
	return s.descriptor
}

type stubRunRecorder struct {
	mu   sync.Mutex
	runs []domain.PipelineRun
}

func (s *stubRunRecorder) Record(_ context.Context, run domain.PipelineRun) {
	s.mu.Lock()
	s.runs = append(s.runs, run)
	s.mu.Unlock()
}

func (s *stubRunRecorder) recorded() []domain.PipelineRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PipelineRun(nil), s.runs...)
}

type stubPageGenerator struct {
	pages []domain.Page
	err   error
}

func (s *stubPageGenerator) Generate(_ context.Context, _ inbound.GeneratePagesParams) ([]domain.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Page(nil), s.pages...), nil
}

func makePages(n int) []domain.Page {
	pages := make([]domain.Page, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, domain.Page{
			Index: i,
			Text:  fmt.Sprintf("Page %d text.", i),
		})
	}
	return pages
}
