package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback",
		Short: "Show recorded feedback scores and their running average",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			ledger := a.ledger()

			entries := ledger.Entries()
			if len(entries) == 0 {
				fmt.Println("No feedback recorded yet.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"#", "Subject", "Decision", "Score", "Timestamp"})
			for i, e := range entries {
				decision := e.Decision
				if decision == "" {
					decision = "-"
				}
				t.AppendRow(table.Row{i + 1, e.Subject, decision, e.Score, e.Timestamp.Format("2006-01-02 15:04:05")})
			}
			stats := ledger.Stats()
			t.AppendFooter(table.Row{"", "", "average", fmt.Sprintf("%.2f", stats.Average), ""})
			t.Render()
			return nil
		},
	}
}
