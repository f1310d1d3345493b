// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-renamer/internal/confirm"
	"github.com/pdiddy/pdf-renamer/internal/history"
	"github.com/pdiddy/pdf-renamer/internal/remote"
	"github.com/pdiddy/pdf-renamer/internal/rename"
)

var renameCmd = &cobra.Command{
	Use:   "rename <directory>",
	Short: "Ask Gemini to fix the capitalisation of every PDF under a directory",
	Long: `Rename walks the directory recursively and, for each .pdf file, asks the
configured Gemini model whether every distinct word of the name starts with a
capital letter. Files the model corrects are renamed in place.

Renames are permanent. You are asked to type 'yes' before anything changes;
use --dry-run to see the planned renames without touching any file.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().String("model", "", "Gemini model identifier (default $MODEL_NAME)")
	renameCmd.Flags().Bool("dry-run", false, "show planned renames without changing any file")
	renameCmd.Flags().Int("max-retries", 0, "attempts per file on rate limiting (default 5)")
	renameCmd.Flags().Duration("initial-backoff", 0, "first backoff after a rate limit (default 10s)")
	renameCmd.Flags().Duration("max-backoff", 0, "cap on the exponential backoff (default 2m0s)")
	renameCmd.Flags().String("history-dir", "", "directory for the rename history database (default ~/.config/pdf-renamer)")
	renameCmd.Flags().String("report", "", "write a YAML report of the run to this file")

	for key, flag := range map[string]string{
		"model":                 "model",
		"dry_run":               "dry-run",
		"retry.max_retries":     "max-retries",
		"retry.initial_backoff": "initial-backoff",
		"retry.max_backoff":     "max-backoff",
		"history_dir":           "history-dir",
		"report_path":           "report",
	} {
		_ = viper.BindPFlag(key, renameCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(renameCmd)
}

// Seams replaced in tests.
var (
	newFs        = afero.NewOsFs
	newGenerator = func(ctx context.Context, apiKey string) (remote.Generator, error) {
		return remote.NewGeminiGenerator(ctx, apiKey)
	}
)

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadRenameConfig(viper.GetViper(), loadedSecrets, args[0])
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	fs := newFs()
	if ok, _ := afero.DirExists(fs, cfg.Root); !ok {
		return fmt.Errorf("the specified directory does not exist: %s", cfg.Root)
	}

	gen, err := newGenerator(ctx, cfg.APIKey)
	if err != nil {
		logger.Error("could not initialize the Gemini client", zap.Error(err))
		return err
	}
	logger.Info("Gemini client initialized", zap.String("model", cfg.Model))

	if !cfg.DryRun {
		ok, err := confirm.Ask(cmd.InOrStdin(), out, cfg.Root)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("operation cancelled by the user")
			fmt.Fprintln(out, "Operation cancelled. No files were changed.")
			return nil
		}
	}

	p := &rename.Processor{
		Caller: remote.NewClient(gen, cfg.Model, remote.PolicyFromConfig(cfg.Retry), logger),
		FS:     fs,
		Logger: logger,
		Model:  cfg.Model,
		DryRun: cfg.DryRun,
	}

	if !cfg.DryRun {
		store, err := history.Open(cfg.HistoryDir)
		if err != nil {
			return err
		}
		defer store.Close()
		p.History = store
	}

	started := time.Now()
	summary, results, runErr := p.Run(ctx, cfg.Root, out)

	if cfg.ReportPath != "" && results != nil {
		report := rename.Report{
			Root:       cfg.Root,
			Model:      cfg.Model,
			DryRun:     cfg.DryRun,
			StartedAt:  started,
			FinishedAt: time.Now(),
			Summary:    summary,
			Files:      results,
		}
		if err := rename.WriteReport(fs, cfg.ReportPath, report); err != nil {
			logger.Error("could not write report", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Report written to %s\n", cfg.ReportPath)
		}
	}

	if runErr != nil {
		return runErr
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to rename", summary.Failed)
	}
	return nil
}
