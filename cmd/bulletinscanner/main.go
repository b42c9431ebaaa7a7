package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"BulletinScanner/internal/app"
	"BulletinScanner/internal/config"
	"BulletinScanner/internal/infrastructure/server"
	"BulletinScanner/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	root := &cobra.Command{
		Use:          "bulletinscanner",
		Short:        "Extracts Visa Bulletin pages into a structured JSON dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			count, err := application.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %s with %d bulletins\n", cfg.Output.Path, count)
			return nil
		},
	}

	root.AddCommand(newServeCommand(cfg, logger))

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newServeCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var addr string

	serve := &cobra.Command{
		Use:          "serve",
		Short:        "Serves the generated dataset and dashboard assets over HTTP",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := server.New(cfg.Output.Path, cfg.Dashboard.AssetsDir, logger.With("component", "server"))
			logger.Info("serving dashboard", "addr", addr, "dataset", cfg.Output.Path)
			return srv.ListenAndServe(addr)
		},
	}

	serve.Flags().StringVar(&addr, "addr", cfg.Dashboard.Addr, "listen address")
	return serve
}
