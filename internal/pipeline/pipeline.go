// Package pipeline runs a single chapter through the ordered stage sequence:
// scrape, rewrite, review, edit, persist, index, render to PDF and audio.
// Each LLM stage is parameterized by an instruction chosen from the running
// feedback average, so past human judgments bias future prompts.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookflow/internal/feedback"
	"bookflow/internal/helper"
	"bookflow/internal/index"
	"bookflow/internal/llm"
	"bookflow/internal/prompts"
	"bookflow/internal/scrape"
)

// Collaborator contracts the pipeline consumes. All are constructor-injected
// so stage logic tests without a browser, LLM endpoint, or vector store.
type (
	Fetcher interface {
		Fetch(ctx context.Context, url string) (*scrape.Page, error)
	}
	Completer interface {
		Complete(ctx context.Context, system, user string) (string, error)
	}
	Ledger interface {
		Append(entry feedback.Entry) error
		Average() float64
	}
	Index interface {
		Upsert(ctx context.Context, doc index.Document) error
	}
	PDFRenderer interface {
		Chapter(title, content, outPath string) error
	}
	AudioRenderer interface {
		Narrate(text, outDir, name string) (string, error)
	}
)

type Deps struct {
	Fetcher       Fetcher
	Completer     Completer
	Ledger        Ledger
	Index         Index
	PDF           PDFRenderer
	Audio         AudioRenderer
	Artifacts     *Artifacts
	MaxInputChars int
}

type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Result holds the artifact handles of a chapter that reached Done.
type Result struct {
	ChapterID  string
	Title      string
	FinalText  string
	FinalFile  string
	PDFFile    string
	AudioFile  string
	Screenshot string
}

// Draft is the output of the two-phase rewrite step, handed to a human for
// external editing before Approve resumes the pipeline.
type Draft struct {
	ChapterID     string
	Title         string
	RewrittenText string
	RewrittenFile string
}

// Process runs every stage to completion for one source URL: the full-auto
// entry point. The caller supplies the feedback score recorded for this run.
func (p *Pipeline) Process(ctx context.Context, url string, score int) (*Result, error) {
	ch, err := p.scrapeChapter(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, ch, score)
}

// ProcessText runs the post-scrape stages over text that arrived outside the
// scraper, such as an imported local book file.
func (p *Pipeline) ProcessText(ctx context.Context, title, text string, score int) (*Result, error) {
	id, err := helper.NewChapterID()
	if err != nil {
		return nil, &StageError{Stage: "scrape", Err: err}
	}
	if title == "" {
		title = "Chapter " + id
	}
	ch := NewChapter(id, "", title)
	if err := p.setAndSave(ch, StageRaw, text); err != nil {
		return nil, &StageError{Stage: "scrape", Err: err}
	}
	return p.run(ctx, ch, score)
}

// Rewrite is phase 1 of the two-phase entry point: scrape and rewrite only,
// returning the draft for external human editing.
func (p *Pipeline) Rewrite(ctx context.Context, url string) (*Draft, error) {
	ch, err := p.scrapeChapter(ctx, url)
	if err != nil {
		return nil, err
	}
	rewritten, err := p.rewriteStage(ctx, ch)
	if err != nil {
		return nil, err
	}
	return &Draft{
		ChapterID:     ch.ID,
		Title:         ch.Title,
		RewrittenText: rewritten,
		RewrittenFile: p.deps.Artifacts.StagePath(ch.ID, StageRewritten),
	}, nil
}

// Approve is phase 2: it accepts the externally-edited final text for a
// chapter produced by Rewrite and resumes the pipeline through Done. The
// human edit stands in for the review and edit stages.
func (p *Pipeline) Approve(ctx context.Context, chapterID, finalText string, score int) (*Result, error) {
	if _, err := p.deps.Artifacts.LoadStage(chapterID, StageRewritten); err != nil {
		return nil, &StageError{Stage: "approve", Err: fmt.Errorf("no rewrite draft for chapter %s: %v", chapterID, err)}
	}

	ch := NewChapter(chapterID, "", "Chapter "+chapterID)
	for _, stage := range []string{StageReviewed, StageFinal} {
		if err := p.setAndSave(ch, stage, finalText); err != nil {
			return nil, &StageError{Stage: stage, Err: err}
		}
	}
	return p.finish(ctx, ch, score)
}

// RewriteText performs just the rewrite transformation with the instruction
// band selected for score. Shared with the chain walker, which manages its
// own checkpoint flow around it.
func (p *Pipeline) RewriteText(ctx context.Context, text string, score float64) (string, error) {
	system := prompts.For(prompts.StageRewrite, score)
	user := "Rewrite the following passage:\n\n" + llm.Truncate(text, p.deps.MaxInputChars)
	return p.deps.Completer.Complete(ctx, system, user)
}

func (p *Pipeline) scrapeChapter(ctx context.Context, url string) (*Chapter, error) {
	id, err := helper.NewChapterID()
	if err != nil {
		return nil, &StageError{Stage: "scrape", Err: err}
	}

	log.Info().Str("url", url).Str("chapter", id).Msg("Scraping and taking screenshot")
	page, err := p.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &StageError{Stage: "scrape", Err: err}
	}

	ch := NewChapter(id, url, "Chapter "+id)
	if err := p.setAndSave(ch, StageRaw, page.Text); err != nil {
		return nil, &StageError{Stage: "scrape", Err: err}
	}
	if len(page.Screenshot) > 0 {
		if err := p.deps.Artifacts.SaveScreenshot(id, page.Screenshot); err != nil {
			return nil, &StageError{Stage: "scrape", Err: err}
		}
		ch.ScreenshotRef = p.deps.Artifacts.ScreenshotPath(id)
	}
	return ch, nil
}

func (p *Pipeline) rewriteStage(ctx context.Context, ch *Chapter) (string, error) {
	raw, _ := ch.Stage(StageRaw)
	avg := p.deps.Ledger.Average()

	log.Info().Str("chapter", ch.ID).Float64("feedback_avg", avg).Msg("Rewriting chapter with LLM")
	rewritten, err := p.RewriteText(ctx, raw, avg)
	if err != nil {
		return "", &StageError{Stage: StageRewritten, Err: err}
	}
	if err := p.setAndSave(ch, StageRewritten, rewritten); err != nil {
		return "", &StageError{Stage: StageRewritten, Err: err}
	}
	return rewritten, nil
}

// run drives rewrite through Done for a chapter whose raw snapshot is set.
func (p *Pipeline) run(ctx context.Context, ch *Chapter, score int) (*Result, error) {
	rewritten, err := p.rewriteStage(ctx, ch)
	if err != nil {
		return nil, err
	}
	avg := p.deps.Ledger.Average()

	log.Info().Str("chapter", ch.ID).Msg("Reviewing the rewritten content")
	reviewed, err := p.deps.Completer.Complete(ctx,
		prompts.For(prompts.StageReview, avg),
		"Please review the following chapter:\n\n"+rewritten,
	)
	if err != nil {
		return nil, &StageError{Stage: StageReviewed, Err: err}
	}
	if err := p.setAndSave(ch, StageReviewed, reviewed); err != nil {
		return nil, &StageError{Stage: StageReviewed, Err: err}
	}

	log.Info().Str("chapter", ch.ID).Msg("Editing reviewed content")
	final, err := p.deps.Completer.Complete(ctx,
		prompts.For(prompts.StageEdit, avg),
		"Please edit the following passage for grammar, flow, and clarity:\n\n"+reviewed,
	)
	if err != nil {
		return nil, &StageError{Stage: StageFinal, Err: err}
	}
	if err := p.setAndSave(ch, StageFinal, final); err != nil {
		return nil, &StageError{Stage: StageFinal, Err: err}
	}

	return p.finish(ctx, ch, score)
}

// finish runs the stages after final text exists: feedback, index, renders.
func (p *Pipeline) finish(ctx context.Context, ch *Chapter, score int) (*Result, error) {
	final, _ := ch.Stage(StageFinal)
	finalFile := p.deps.Artifacts.StagePath(ch.ID, StageFinal)

	// A ledger append failure is logged, not fatal: feedback is an
	// optimization signal, and the chapter's artifacts are still good.
	log.Info().Str("chapter", ch.ID).Int("score", score).Msg("Logging feedback")
	if err := p.deps.Ledger.Append(feedback.Entry{Subject: finalFile, Score: score}); err != nil {
		log.Warn().Err(err).Str("chapter", ch.ID).Msg("Could not record feedback")
	}

	log.Info().Str("chapter", ch.ID).Msg("Storing chapter embedding for search")
	err := p.deps.Index.Upsert(ctx, index.Document{
		ChapterID: ch.ID,
		Title:     ch.Title,
		Content:   final,
		Score:     score,
	})
	if err != nil {
		return nil, &StageError{Stage: "index", Err: err}
	}

	log.Info().Str("chapter", ch.ID).Msg("Generating PDF output")
	pdfPath := p.deps.Artifacts.PDFPath(ch.ID)
	if err := p.deps.PDF.Chapter(ch.Title, final, pdfPath); err != nil {
		return nil, &StageError{Stage: "render_pdf", Err: err}
	}
	ch.PDFRef = pdfPath

	log.Info().Str("chapter", ch.ID).Msg("Generating audio narration")
	audioPath, err := p.deps.Audio.Narrate(final, p.deps.Artifacts.StaticDir, p.deps.Artifacts.AudioName(ch.ID))
	if err != nil {
		return nil, &StageError{Stage: "render_audio", Err: err}
	}
	ch.AudioRef = audioPath

	log.Info().Str("chapter", ch.ID).Msg("All stages completed")
	return &Result{
		ChapterID:  ch.ID,
		Title:      ch.Title,
		FinalText:  final,
		FinalFile:  finalFile,
		PDFFile:    ch.PDFRef,
		AudioFile:  ch.AudioRef,
		Screenshot: ch.ScreenshotRef,
	}, nil
}

// setAndSave records the in-memory snapshot and persists it in one step.
func (p *Pipeline) setAndSave(ch *Chapter, stage, text string) error {
	if err := ch.SetStage(stage, text); err != nil {
		return err
	}
	return p.deps.Artifacts.SaveStage(ch.ID, stage, text)
}
