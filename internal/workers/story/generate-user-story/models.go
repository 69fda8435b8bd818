// internal/workers/story/generate-user-story/models.go
package generateuserstory

import "story-workers/internal/story"

type Input struct {
	Notes string `json:"notes"`
	// IncludeAnalysis overrides the worker default when set.
	IncludeAnalysis *bool `json:"includeAnalysis,omitempty"`
}

type Output struct {
	StoryID  string              `json:"storyId"`
	Story    story.StoryDocument `json:"story"`
	Analysis *story.Analysis     `json:"analysis,omitempty"`
}
