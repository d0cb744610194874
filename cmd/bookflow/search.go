package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookflow/internal/index"
)

func newSearchCmd(configPath *string) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find finalized chapters similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			store, err := a.store(cmd.Context())
			if err != nil {
				return err
			}

			results, err := store.Query(cmd.Context(), strings.Join(args, " "), topK)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No matching chapters.")
				return nil
			}
			for _, snippet := range index.FormatResults(results) {
				fmt.Println(snippet)
				fmt.Println(strings.Repeat("-", 60))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "k", 3, "Maximum number of results")
	return cmd
}
