// internal/workers/story/render-user-story/models.go
package renderuserstory

import "story-workers/internal/story"

type Input struct {
	Story  story.StoryDocument `json:"story"`
	Format string              `json:"format,omitempty"`
}

type Output struct {
	Document string       `json:"document"`
	Format   story.Format `json:"format"`
}
