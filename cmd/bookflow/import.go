package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookflow/internal/ingest"
)

func newImportCmd(configPath *string) *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Run the pipeline over a local book file (.pdf, .docx, .txt, .md)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, text, err := ingest.ParseFile(args[0])
			if err != nil {
				return err
			}

			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			pipe, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			result, err := pipe.ProcessText(cmd.Context(), title, text, score)
			if err != nil {
				return err
			}
			fmt.Printf("Chapter %s processed from %s\n", result.ChapterID, args[0])
			fmt.Printf("  final text: %s\n", result.FinalFile)
			fmt.Printf("  pdf:        %s\n", result.PDFFile)
			fmt.Printf("  audio:      %s\n", result.AudioFile)
			return nil
		},
	}
	cmd.Flags().IntVar(&score, "score", 5, "Feedback score (1-5) recorded for this run")
	return cmd
}
