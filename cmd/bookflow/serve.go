package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bookflow/internal/api"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline and search index over HTTP",
		Args:  cobra.NoArgs,
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

			server := api.NewServer(pipe, store, a.cfg.Paths.StaticDir)
			log.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting HTTP server")
			return server.Run(a.cfg.Server.Addr)
		},
	}
}
