package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/importer"
	"github.com/Veraticus/subwatch/internal/service"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Load exported ledger files (OFX/QFX/CSV) into the local database",
		Long: `Load transaction exports you downloaded from your bank into the
local ledger. Files already imported are safe to pass again; duplicate
transactions are skipped by hash.

Examples:
  # Import a single QFX export
  subwatch import ~/Downloads/checking_jan.qfx

  # Import everything at once
  subwatch import ~/Downloads/*.qfx ~/Downloads/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, statErr := os.Stat(pattern); statErr == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		allFiles = append(allFiles, matches...)
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no ledger files to import")
	}

	var store service.Storage
	if !dryRun {
		var err error
		store, err = initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing ledger files..."),
	)

	total := 0
	for _, path := range allFiles {
		transactions, err := importer.ParseFile(ctx, path)
		if err != nil {
			return err
		}

		if !dryRun && len(transactions) > 0 {
			if err := store.SaveTransactions(ctx, transactions); err != nil {
				return fmt.Errorf("failed to save transactions from %s: %w", path, err)
			}
		}
		total += len(transactions)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if dryRun {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Would import %d transactions from %d files", total, len(allFiles))))
		return nil
	}

	var notifier service.Notifier = logNotifier{}
	notifier.DataChanged(ctx, "ledger import")

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %d files", total, len(allFiles))))
	return nil
}
