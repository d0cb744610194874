package render

import (
	htgotts "github.com/hegedustibor/htgo-tts"

	"bookflow/internal/config"
)

// AudioRenderer narrates chapter text to an MP3 file.
type AudioRenderer struct {
	language string
}

func NewAudioRenderer(cfg *config.RenderConfig) *AudioRenderer {
	return &AudioRenderer{language: cfg.Language}
}

// Narrate synthesizes text into outDir/<name>.mp3 and returns the file path.
func (r *AudioRenderer) Narrate(text, outDir, name string) (string, error) {
	speech := htgotts.Speech{Folder: outDir, Language: r.language}
	path, err := speech.CreateSpeechFile(text, name)
	if err != nil {
		return "", &Error{Kind: "audio", Err: err}
	}
	return path, nil
}
