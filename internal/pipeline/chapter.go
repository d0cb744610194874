package pipeline

import "fmt"

// Stage names, in pipeline order. Each stage records an immutable text
// snapshot on the chapter.
const (
	StageRaw       = "raw"
	StageRewritten = "rewritten"
	StageReviewed  = "reviewed"
	StageFinal     = "final"
)

// Chapter is one unit of source content progressing through the pipeline.
// Stage snapshots only grow; a later stage never overwrites an earlier one.
type Chapter struct {
	ID        string
	SourceURL string
	Title     string

	ScreenshotRef string
	PDFRef        string
	AudioRef      string

	stages map[string]string
	order  []string
}

func NewChapter(id, sourceURL, title string) *Chapter {
	return &Chapter{
		ID:        id,
		SourceURL: sourceURL,
		Title:     title,
		stages:    map[string]string{},
	}
}

// SetStage records a stage snapshot. Recording the same stage twice is a
// programming error and is refused to keep snapshots append-only.
func (c *Chapter) SetStage(name, text string) error {
	if _, exists := c.stages[name]; exists {
		return fmt.Errorf("stage %q already recorded for chapter %s", name, c.ID)
	}
	c.stages[name] = text
	c.order = append(c.order, name)
	return nil
}

// Stage returns the snapshot recorded under name.
func (c *Chapter) Stage(name string) (string, bool) {
	text, ok := c.stages[name]
	return text, ok
}

// Stages lists recorded stage names in the order they were set.
func (c *Chapter) Stages() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// StageError tags a failure with the pipeline stage it occurred in. Stages
// already completed keep their artifacts; nothing is rolled back.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
