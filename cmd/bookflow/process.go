package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newProcessCmd(configPath *string) *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Run every pipeline stage for one chapter URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			pipe, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			result, err := pipe.Process(cmd.Context(), args[0], score)
			if err != nil {
				return err
			}
			fmt.Printf("Chapter %s processed end-to-end\n", result.ChapterID)
			fmt.Printf("  final text: %s\n", result.FinalFile)
			fmt.Printf("  pdf:        %s\n", result.PDFFile)
			fmt.Printf("  audio:      %s\n", result.AudioFile)
			if result.Screenshot != "" {
				fmt.Printf("  screenshot: %s\n", result.Screenshot)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&score, "score", 5, "Feedback score (1-5) recorded for this run")
	return cmd
}

func newRewriteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <url>",
		Short: "Scrape and rewrite a chapter, leaving the draft for human editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			pipe, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			draft, err := pipe.Rewrite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Chapter %s rewritten\n", draft.ChapterID)
			fmt.Printf("  draft: %s\n", draft.RewrittenFile)
			fmt.Printf("Edit the draft, then run: bookflow approve %s --file <edited-file>\n", draft.ChapterID)
			return nil
		},
	}
}

func newApproveCmd(configPath *string) *cobra.Command {
	var (
		file  string
		score int
	)

	cmd := &cobra.Command{
		Use:   "approve <chapter-id>",
		Short: "Resume a rewritten chapter with human-approved final text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			finalText, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read final text file: %v", err)
			}

			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			pipe, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			result, err := pipe.Approve(cmd.Context(), args[0], string(finalText), score)
			if err != nil {
				return err
			}
			fmt.Printf("Chapter %s approved and finished\n", result.ChapterID)
			fmt.Printf("  pdf:   %s\n", result.PDFFile)
			fmt.Printf("  audio: %s\n", result.AudioFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "File holding the edited final text")
	cmd.Flags().IntVar(&score, "score", 5, "Feedback score (1-5) recorded for this chapter")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
