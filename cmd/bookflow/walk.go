package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookflow/internal/operator"
	"bookflow/internal/render"
	"bookflow/internal/scrape"
	"bookflow/internal/walker"
)

func newWalkCmd(configPath *string) *cobra.Command {
	var voice bool

	cmd := &cobra.Command{
		Use:   "walk <start-url>",
		Short: "Process a chain of chapters, following next-chapter links",
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
			store, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			artifacts, err := a.artifacts()
			if err != nil {
				return err
			}

			var op walker.Operator = operator.NewConsole()
			if voice {
				op = operator.NewVoice(a.cfg.Render.Language)
			}

			w := walker.New(walker.Deps{
				Fetcher:   scrape.NewScraper(&a.cfg.Scrape),
				Rewriter:  pipe,
				Ledger:    a.ledger(),
				Index:     store,
				Operator:  op,
				Artifacts: artifacts,
				Book:      render.NewPDFRenderer(&a.cfg.Render),
			})

			report, err := w.Walk(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Walk finished: %s, %d chapters\n", report.Status, len(report.Chapters))
			if report.BookPDF != "" {
				fmt.Printf("  book pdf: %s\n", report.BookPDF)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&voice, "voice", false, "Speak checkpoint prompts out loud")
	return cmd
}
