package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"bookflow/internal/config"
	"bookflow/internal/helper"
)

// Artifacts lays out per-chapter files on disk. Text snapshots live under the
// chapters dir, rendered outputs and screenshots under the static dir so an
// HTTP surface can serve them directly. Naming is idempotent per chapter id:
//
//	chapters/chapter_<id>.txt            raw
//	chapters/chapter_<id>_rewritten.txt  rewritten
//	chapters/chapter_<id>_reviewed.txt   reviewed
//	chapters/chapter_<id>_final.txt      final
//	static/chapter_<id>.png              screenshot
//	static/chapter_<id>_final.pdf        PDF
//	static/chapter_<id>.mp3              audio
type Artifacts struct {
	ChaptersDir string
	StaticDir   string
}

func NewArtifacts(cfg *config.PathsConfig) (*Artifacts, error) {
	for _, dir := range []string{cfg.ChaptersDir, cfg.StaticDir} {
		if err := helper.CreateFolder(dir); err != nil {
			return nil, fmt.Errorf("failed to create artifact dir %s: %v", dir, err)
		}
	}
	return &Artifacts{ChaptersDir: cfg.ChaptersDir, StaticDir: cfg.StaticDir}, nil
}

func baseName(chapterID string) string {
	return "chapter_" + chapterID
}

// StagePath returns the text snapshot file for a stage.
func (a *Artifacts) StagePath(chapterID, stage string) string {
	name := baseName(chapterID)
	if stage != StageRaw {
		name += "_" + stage
	}
	return filepath.Join(a.ChaptersDir, name+".txt")
}

func (a *Artifacts) ScreenshotPath(chapterID string) string {
	return filepath.Join(a.StaticDir, baseName(chapterID)+".png")
}

func (a *Artifacts) PDFPath(chapterID string) string {
	return filepath.Join(a.StaticDir, baseName(chapterID)+"_final.pdf")
}

// AudioName is the extensionless name handed to the audio renderer, which
// appends ".mp3" inside the static dir.
func (a *Artifacts) AudioName(chapterID string) string {
	return baseName(chapterID)
}

func (a *Artifacts) BookPDFPath() string {
	return filepath.Join(a.StaticDir, "book_output.pdf")
}

func (a *Artifacts) SaveStage(chapterID, stage, text string) error {
	path := a.StagePath(chapterID, stage)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %v", stage, err)
	}
	return nil
}

func (a *Artifacts) LoadStage(chapterID, stage string) (string, error) {
	data, err := os.ReadFile(a.StagePath(chapterID, stage))
	if err != nil {
		return "", fmt.Errorf("failed to load %s snapshot: %v", stage, err)
	}
	return string(data), nil
}

func (a *Artifacts) SaveScreenshot(chapterID string, png []byte) error {
	if err := os.WriteFile(a.ScreenshotPath(chapterID), png, 0o644); err != nil {
		return fmt.Errorf("failed to save screenshot: %v", err)
	}
	return nil
}
