// Package walker drives the chapter pipeline across a linked sequence of
// pages, following "next chapter" links until the chain ends or loops back on
// itself. Between chapters it blocks on a human checkpoint whose rating feeds
// the adaptive prompt policy for every later chapter in the same walk.
package walker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookflow/internal/feedback"
	"bookflow/internal/helper"
	"bookflow/internal/index"
	"bookflow/internal/pipeline"
	"bookflow/internal/render"
	"bookflow/internal/scrape"
)

// Status is how a walk ended. Both values are successful terminations; a
// detected loop is a normal stopping condition, not an error.
type Status string

const (
	StatusCompleted    Status = "completed"
	StatusLoopDetected Status = "loop_detected"
)

const maxClarifyAttempts = 3

// Operator is the synchronous human-interaction channel: spoken or printed
// announcements plus blocking questions. The console and voice
// implementations share this contract with test doubles.
type Operator interface {
	Say(msg string)
	Ask(ctx context.Context, prompt string) (string, error)
}

type (
	Fetcher interface {
		Fetch(ctx context.Context, url string) (*scrape.Page, error)
	}
	Rewriter interface {
		RewriteText(ctx context.Context, text string, score float64) (string, error)
	}
	Ledger interface {
		Append(entry feedback.Entry) error
		Average() float64
	}
	Index interface {
		Upsert(ctx context.Context, doc index.Document) error
	}
	BookRenderer interface {
		Book(chapters []render.BookChapter, outPath string) error
	}
)

type Deps struct {
	Fetcher   Fetcher
	Rewriter  Rewriter
	Ledger    Ledger
	Index     Index
	Operator  Operator
	Artifacts *pipeline.Artifacts
	Book      BookRenderer
}

type Walker struct {
	deps Deps
}

func New(deps Deps) *Walker {
	return &Walker{deps: deps}
}

// ChapterResult summarizes one processed chapter of a walk.
type ChapterResult struct {
	Num      int
	ID       string
	URL      string
	Title    string
	Content  string
	Decision string
	Score    int
}

// Report is the outcome of one walk.
type Report struct {
	Status   Status
	Chapters []ChapterResult
	BookPDF  string
}

// Walk processes chapters starting at startURL until the chain ends, a loop
// is detected, or an unrecoverable failure stops it. Chapters are strictly
// sequential: each must clear its human checkpoint before the next fetch so
// the feedback average reflects every prior decision in the walk.
func (w *Walker) Walk(ctx context.Context, startURL string) (*Report, error) {
	report := &Report{Status: StatusCompleted}
	visited := map[string]bool{}
	current := startURL

	for num := 1; current != ""; num++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		visited[current] = true

		log.Info().Int("chapter", num).Str("url", current).Msg("Processing chapter")
		result, err := w.processChapter(ctx, num, current)
		if err != nil {
			return report, fmt.Errorf("chapter %d: %w", num, err)
		}
		report.Chapters = append(report.Chapters, result.ChapterResult)

		if result.nextURL == "" {
			log.Info().Msg("No next chapter found, walk complete")
			break
		}
		if visited[result.nextURL] {
			log.Info().Str("url", result.nextURL).Msg("Loop detected, stopping walk")
			report.Status = StatusLoopDetected
			break
		}
		current = result.nextURL
	}

	if len(report.Chapters) > 0 && w.deps.Book != nil {
		path := w.deps.Artifacts.BookPDFPath()
		chapters := make([]render.BookChapter, len(report.Chapters))
		for i, ch := range report.Chapters {
			chapters[i] = render.BookChapter{Title: ch.Title, Content: ch.Content}
		}
		if err := w.deps.Book.Book(chapters, path); err != nil {
			log.Warn().Err(err).Msg("Could not render combined book PDF")
		} else {
			report.BookPDF = path
		}
	}
	return report, nil
}

type chapterOutcome struct {
	ChapterResult
	nextURL string
}

func (w *Walker) processChapter(ctx context.Context, num int, url string) (*chapterOutcome, error) {
	page, err := w.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	id := helper.SlugFromURL(url)
	if err := w.deps.Artifacts.SaveStage(id, pipeline.StageRaw, page.Text); err != nil {
		return nil, err
	}
	if len(page.Screenshot) > 0 {
		if err := w.deps.Artifacts.SaveScreenshot(id, page.Screenshot); err != nil {
			log.Warn().Err(err).Str("chapter", id).Msg("Could not save screenshot")
		}
	}

	avg := w.deps.Ledger.Average()
	log.Info().Str("chapter", id).Float64("feedback_avg", avg).Msg("Rewriting chapter with LLM")
	draft, err := w.deps.Rewriter.RewriteText(ctx, page.Text, avg)
	if err != nil {
		return nil, err
	}
	if err := w.deps.Artifacts.SaveStage(id, pipeline.StageReviewed, draft); err != nil {
		return nil, err
	}

	decision, score, err := w.checkpoint(ctx, draft, w.deps.Artifacts.StagePath(id, pipeline.StageReviewed))
	if err != nil {
		return nil, err
	}

	switch decision {
	case DecisionEdit:
		draft = w.pauseForEdit(ctx, id, draft)
	case DecisionRegenerate:
		log.Info().Str("chapter", id).Int("score", score).Msg("Regenerating rewrite")
		redone, rerr := w.deps.Rewriter.RewriteText(ctx, page.Text, float64(score))
		if rerr != nil {
			log.Warn().Err(rerr).Str("chapter", id).Msg("Regeneration failed, keeping first draft")
		} else {
			draft = redone
			if err := w.deps.Artifacts.SaveStage(id, pipeline.StageReviewed, draft); err != nil {
				return nil, err
			}
		}
	}

	if err := w.deps.Ledger.Append(feedback.Entry{
		Subject:  fmt.Sprintf("chapter%d", num),
		Decision: decision,
		Score:    score,
	}); err != nil {
		log.Warn().Err(err).Str("chapter", id).Msg("Could not save feedback")
	}

	err = w.deps.Index.Upsert(ctx, index.Document{
		ChapterID: id,
		Title:     page.Title,
		Content:   draft,
		Score:     score,
	})
	if err != nil {
		log.Warn().Err(err).Str("chapter", id).Msg("Failed to store embedding")
	}

	return &chapterOutcome{
		ChapterResult: ChapterResult{
			Num:      num,
			ID:       id,
			URL:      url,
			Title:    page.Title,
			Content:  draft,
			Decision: decision,
			Score:    score,
		},
		nextURL: page.NextURL,
	}, nil
}

// previewRunes bounds how much of a draft is read back at the checkpoint so
// voice output stays manageable.
const previewRunes = 1000

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}

// checkpoint reads the draft back to the operator, then asks for a decision
// plus rating, with a bounded number of clarification retries before
// defaulting to approve with a neutral score.
func (w *Walker) checkpoint(ctx context.Context, draft, draftPath string) (string, int, error) {
	w.deps.Operator.Say("Here is the rewritten chapter:\n\n" + previewText(draft))
	w.deps.Operator.Say("Full draft saved to " + draftPath)
	w.deps.Operator.Say("Chapter rewrite complete. Say approve, edit, or regenerate. Then rate 1 to 5.")

	reply := ""
	for attempt := 0; attempt < maxClarifyAttempts; attempt++ {
		answer, err := w.deps.Operator.Ask(ctx, "Decision: ")
		if err != nil {
			return "", 0, err
		}
		if hasDecision(answer) {
			reply = answer
			break
		}
		w.deps.Operator.Say("Didn't catch that. Say approve, edit, or regenerate.")
	}

	decision, score := ParseReply(reply)
	return decision, score, nil
}

// pauseForEdit blocks while the operator modifies the on-disk draft, then
// reloads it. The edited file becomes the chapter content going forward.
func (w *Walker) pauseForEdit(ctx context.Context, chapterID, draft string) string {
	path := w.deps.Artifacts.StagePath(chapterID, pipeline.StageReviewed)
	w.deps.Operator.Say("Please edit the file " + path + " and confirm when done.")
	if _, err := w.deps.Operator.Ask(ctx, "Press Enter after editing: "); err != nil {
		log.Warn().Err(err).Msg("Edit pause interrupted, keeping unedited draft")
		return draft
	}
	edited, err := w.deps.Artifacts.LoadStage(chapterID, pipeline.StageReviewed)
	if err != nil {
		log.Warn().Err(err).Msg("Could not reload edited draft, keeping unedited draft")
		return draft
	}
	return edited
}
