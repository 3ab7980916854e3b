package domain

// Page is one unit of the storybook: the text produced by the script
// back-end plus optional media locators attached during rendering.
// Index is 1-based and matches the page's position in the generated story.
type Page struct {
	Index    int    `json:"page"`
	Text     string `json:"text"`
	ImageRef string `json:"image_url,omitempty"`
	AudioRef string `json:"audio_url,omitempty"`
}

// Degraded reports whether the page is missing at least one media reference.
func (p Page) Degraded() bool {
	return p.ImageRef == "" || p.AudioRef == ""
}

type Story struct {
	ID     string `json:"story_id"`
	Prompt string `json:"prompt"`
	Pages  []Page `json:"pages"`
}

func NewStory(id, prompt string, pages []Page) Story {
	return Story{
		ID:     id,
		Prompt: prompt,
		Pages:  pages,
	}
}

type EventType string

const (
	StoryEventType    EventType = "story"
	SceneEventType    EventType = "scene"
	CompleteEventType EventType = "complete"
	ErrorEventType    EventType = "error"
)

// StoryEvent is the tagged union streamed to SSE consumers. Exactly one of
// Pages (story), Page (scene) or Message (error) is populated, selected by
// Type; complete carries only the story id.
type StoryEvent struct {
	Type    EventType `json:"type"`
	StoryID string    `json:"story_id"`
	Pages   []Page    `json:"pages,omitempty"`
	Page    *Page     `json:"scene,omitempty"`
	Message string    `json:"message,omitempty"`
}

func NewStoryPagesEvent(storyID string, pages []Page) StoryEvent {
	return StoryEvent{
		Type:    StoryEventType,
		StoryID: storyID,
		Pages:   pages,
	}
}

func NewSceneEvent(storyID string, page Page) StoryEvent {
	return StoryEvent{
		Type:    SceneEventType,
		StoryID: storyID,
		Page:    &page,
	}
}

func NewCompleteEvent(storyID string) StoryEvent {
	return StoryEvent{
		Type:    CompleteEventType,
		StoryID: storyID,
	}
}

func NewErrorEvent(storyID string, message string) StoryEvent {
	return StoryEvent{
		Type:    ErrorEventType,
		StoryID: storyID,
		Message: message,
	}
}

type MediaType string

const (
	ImageMediaType MediaType = "image"
	AudioMediaType MediaType = "audio"
)

// PageMedia carries generated binary content from a back-end adapter to the
// media store. The bytes are dropped as soon as a locator is recorded.
type PageMedia struct {
	StoryID   string
	PageIndex int
	Type      MediaType
	Content   []byte
}
