// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olegiv/pixelflame/internal/store"
	"github.com/olegiv/pixelflame/internal/transfer"
)

func newMigrateCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			if seed || a.cfg.DoSeed {
				if err := store.Seed(cmd.Context(), a.db); err != nil {
					return fmt.Errorf("seeding database: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed demo content into an empty database")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		dryRun      bool
		conflict    string
		skipProject bool
		skipPosts   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import projects and blog posts from a JSON bundle",
		Long: `Import reads a JSON bundle produced by "pixelflame export" and upserts its
projects and blog posts by slug inside a single transaction. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := transfer.DefaultImportOptions()
			opts.DryRun = dryRun
			opts.ConflictStrategy = transfer.ConflictStrategy(conflict)
			opts.ImportProjects = !skipProject
			opts.ImportBlogPosts = !skipPosts
			if !opts.ConflictStrategy.Valid() {
				return fmt.Errorf("unknown conflict strategy %q (use overwrite, skip or rename)", conflict)
			}

			a, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			importer := transfer.NewImporter(a.db, a.logger)

			var result *transfer.ImportResult
			if args[0] == "-" {
				result, err = importer.ImportFromReader(cmd.Context(), cmd.InOrStdin(), opts)
			} else {
				result, err = importer.ImportFromFile(cmd.Context(), args[0], opts)
			}
			if result != nil {
				printImportResult(cmd.OutOrStdout(), result)
			}
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().StringVar(&conflict, "conflict", string(transfer.ConflictOverwrite), "slug conflict strategy: overwrite, skip or rename")
	cmd.Flags().BoolVar(&skipProject, "no-projects", false, "ignore projects in the bundle")
	cmd.Flags().BoolVar(&skipPosts, "no-posts", false, "ignore blog posts in the bundle")
	return cmd
}

func printImportResult(w io.Writer, r *transfer.ImportResult) {
	mode := "import"
	if r.DryRun {
		mode = "dry run"
	}
	_, _ = fmt.Fprintf(w, "%s: %d created, %d updated, %d skipped\n",
		mode, r.TotalCreated(), r.TotalUpdated(), r.TotalSkipped())
	for _, e := range r.Errors {
		_, _ = fmt.Fprintf(w, "  error: %s\n", e.Error())
	}
}

func newExportCmd() *cobra.Command {
	var (
		status      string
		skipProject bool
		skipPosts   bool
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export projects and blog posts as a JSON bundle",
		Long:  `Export writes every project and the selected blog posts to file, or stdout when omitted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := transfer.DefaultExportOptions()
			opts.PostStatus = strings.ToLower(status)
			opts.IncludeProjects = !skipProject
			opts.IncludeBlogPosts = !skipPosts
			switch opts.PostStatus {
			case transfer.PostStatusAll, transfer.PostStatusPublished, transfer.PostStatusDraft:
			default:
				return fmt.Errorf("unknown post status %q (use all, published or draft)", status)
			}

			a, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			exporter := transfer.NewExporter(a.db, a.logger)

			if len(args) == 0 || args[0] == "-" {
				return exporter.ExportToWriter(cmd.Context(), opts, cmd.OutOrStdout())
			}
			if err := exporter.ExportToFile(cmd.Context(), opts, args[0]); err != nil {
				return err
			}
			slog.Info("export written", "file", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", transfer.PostStatusAll, "blog posts to include: all, published or draft")
	cmd.Flags().BoolVar(&skipProject, "no-projects", false, "leave projects out of the bundle")
	cmd.Flags().BoolVar(&skipPosts, "no-posts", false, "leave blog posts out of the bundle")
	return cmd
}
