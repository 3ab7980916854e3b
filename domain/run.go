package domain

import "time"

// PipelineRun is the per-invocation record of one orchestration: timing for
// both stages plus how the pages settled. It is owned by a single pipeline
// invocation and handed to the run store once the run is over.
type PipelineRun struct {
	StoryID       string
	Prompt        string
	PageCount     int
	DegradedPages int
	ScriptStage   time.Duration
	MediaStage    time.Duration
	StartedAt     time.Time
}
