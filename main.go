package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quillpad/quill/internal/api"
	"github.com/quillpad/quill/internal/auth"
	"github.com/quillpad/quill/internal/cache"
	"github.com/quillpad/quill/internal/config"
	"github.com/quillpad/quill/internal/logging"
	"github.com/quillpad/quill/internal/ui"
)

var version = "dev"

func main() {
	var apiBase string

	root := &cobra.Command{
		Use:          "quill",
		Short:        "Terminal client for the Quillpad blogging platform",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if apiBase != "" {
				cfg.APIBase = apiBase
				cfg.AssetBase = apiBase
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&apiBase, "api-base", "", "backend base URL (overrides QUILL_API_BASE)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("quill", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	log := logging.New(cfg.LogPath)
	defer log.Sync()

	db, err := cache.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	session := auth.NewSession()
	client := api.New(cfg, log, api.WithTokenSource(session.TokenSource()))

	log.Info("starting", zap.String("version", version), zap.String("api_base", cfg.APIBase))

	app := ui.NewApp(cfg, client, db, session, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	app.SetProgram(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
