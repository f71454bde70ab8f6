// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command pixelflame runs the Pixel Flame content store and serves the site shell.
package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/pixelflame/internal/config"
	"github.com/olegiv/pixelflame/internal/logging"
	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pixelflame",
		Short: "Pixel Flame content store and site server",
		Long: `pixelflame serves the Pixel Flame agency site: the REST content store under
/rest/v1, the static shell that boots the browser client, and maintenance commands
for migrations and content import/export.

Configuration is read from the environment (PIXELFLAME_*) and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newExportCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

// app is the state shared by every command that touches the database.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	logger *slog.Logger
}

// setup loads configuration, opens and migrates the database and installs the
// process logger writing to logOut. The caller must call close.
func setup(logOut io.Writer) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(logOut, cfg.SlogLevel(), nil)
	slog.SetDefault(logger)

	source := cfg.DBDSN
	if cfg.DBDriver == config.DriverSQLite {
		source = cfg.DBPath
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, source)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.MigrateDriver(db, cfg.DBDriver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Warnings and errors are mirrored into the event log from here on.
	logger = logging.NewLogger(logOut, cfg.SlogLevel(), db)
	slog.SetDefault(logger)
	slog.Info("database ready")

	return &app{cfg: cfg, db: db, logger: logger}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	}
}
