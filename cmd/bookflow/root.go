package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bookflow/internal/config"
	"bookflow/internal/embedding"
	"bookflow/internal/feedback"
	"bookflow/internal/index"
	"bookflow/internal/llm"
	"bookflow/internal/pipeline"
	"bookflow/internal/render"
	"bookflow/internal/scrape"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "bookflow",
		Short:         "Turn web-hosted book chapters into rewritten text, PDF, and audio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./configs/config.yaml", "Path to the config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newProcessCmd(&configPath),
		newRewriteCmd(&configPath),
		newApproveCmd(&configPath),
		newWalkCmd(&configPath),
		newImportCmd(&configPath),
		newSearchCmd(&configPath),
		newFeedbackCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}

// app wires collaborators from config. Commands build only what they need.
// The store is memoized so a command that needs both the pipeline and the
// search side opens the backing database once.
type app struct {
	cfg *config.Config
	idx index.Store
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}
	return &app{cfg: cfg}, nil
}

func (a *app) ledger() *feedback.Ledger {
	return feedback.NewLedger(a.cfg.Paths.FeedbackFile)
}

func (a *app) store(ctx context.Context) (index.Store, error) {
	if a.idx != nil {
		return a.idx, nil
	}
	embedder, err := embedding.NewEmbedder(&a.cfg.Embedding)
	if err != nil {
		return nil, err
	}
	embed := embedding.AsFunc(embedder)

	switch a.cfg.Store.Backend {
	case "chromem":
		a.idx, err = index.NewChromemStore(&a.cfg.Store, embed)
	case "postgres":
		a.idx, err = index.NewPostgresStore(ctx, &a.cfg.Store, embed)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", a.cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	return a.idx, nil
}

func (a *app) artifacts() (*pipeline.Artifacts, error) {
	return pipeline.NewArtifacts(&a.cfg.Paths)
}

func (a *app) pipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	store, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	client, err := llm.New(&a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	artifacts, err := a.artifacts()
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Deps{
		Fetcher:       scrape.NewScraper(&a.cfg.Scrape),
		Completer:     client,
		Ledger:        a.ledger(),
		Index:         store,
		PDF:           render.NewPDFRenderer(&a.cfg.Render),
		Audio:         render.NewAudioRenderer(&a.cfg.Render),
		Artifacts:     artifacts,
		MaxInputChars: a.cfg.LLM.MaxInputChars,
	}), nil
}
