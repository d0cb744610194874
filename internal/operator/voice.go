package operator

import (
	"context"
	"os"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/hegedustibor/htgo-tts/handlers"
	"github.com/rs/zerolog/log"
)

// Voice speaks announcements and question prompts out loud, then falls back
// to the console for both display and the typed answer.
type Voice struct {
	console *Console
	speech  htgotts.Speech
}

func NewVoice(language string) *Voice {
	return &Voice{
		console: NewConsole(),
		speech: htgotts.Speech{
			Folder:   os.TempDir(),
			Language: language,
			Handler:  &handlers.Native{},
		},
	}
}

func (v *Voice) Say(msg string) {
	v.console.Say(msg)
	if err := v.speech.Speak(msg); err != nil {
		log.Warn().Err(err).Msg("Voice output failed, continuing on console only")
	}
}

func (v *Voice) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		if err := v.speech.Speak(prompt); err != nil {
			log.Warn().Err(err).Msg("Voice output failed, continuing on console only")
		}
	}
	return v.console.Ask(ctx, prompt)
}
