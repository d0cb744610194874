// Package prompts maps a feedback score (or running average) to the system
// instruction used at each LLM stage. Selection is a pure function of
// (stage, score) so pipeline behavior stays reproducible regardless of the
// model's own non-determinism.
package prompts

import "math"

type Stage string

const (
	StageRewrite Stage = "rewrite"
	StageReview  Stage = "review"
	StageEdit    Stage = "edit"
)

// band is one row of the per-stage decision table. Tables are ordered highest
// floor first; a band matches when the score clears its floor. Floors are
// exclusive except the top band's, so exactly 4 selects the top band and
// exactly 2 still falls through to the bottom one.
type band struct {
	floor       float64
	instruction string
}

var rewriteBands = []band{
	{4, "Polish the writing for clarity and brevity in a minimalist, refined tone. Prior feedback was positive, so you have more stylistic freedom."},
	{2, "Modernize the language while preserving the story's original tone and meaning."},
	{math.Inf(-1), "Add vivid imagery, enhance emotion, and make it highly engaging and descriptive. Prior rewrites fell short, so prioritize readability and logical structure."},
}

var reviewBands = []band{
	{4, "Focus on fine polish and only flag what genuinely weakens the prose."},
	{2, "Provide constructive review and suggestions inline."},
	{math.Inf(-1), "Flag every unclear sentence and suggest simpler, more direct phrasing inline."},
}

var editBands = []band{
	{4, "Refine the language to be clear, concise, and professional."},
	{2, "Enhance clarity and structure while keeping the original tone."},
	{math.Inf(-1), "Make the text more emotionally engaging, vivid, and human-like."},
}

var personas = map[Stage]string{
	StageRewrite: "You are an expert AI writer. ",
	StageReview:  "You are a careful editor checking the rewritten text for flow, grammar, and tone consistency. ",
	StageEdit:    "You are an expert copy editor. ",
}

var tables = map[Stage][]band{
	StageRewrite: rewriteBands,
	StageReview:  reviewBands,
	StageEdit:    editBands,
}

// For returns the full system instruction for a stage given a feedback score
// or running average. Unknown stages use the rewrite table.
func For(stage Stage, score float64) string {
	bands, ok := tables[stage]
	if !ok {
		stage, bands = StageRewrite, rewriteBands
	}
	return personas[stage] + pick(bands, score)
}

func pick(bands []band, score float64) string {
	for i, b := range bands {
		if i == 0 && score >= b.floor {
			return b.instruction
		}
		if score > b.floor {
			return b.instruction
		}
	}
	return bands[len(bands)-1].instruction
}
