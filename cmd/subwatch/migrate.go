package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/config"
	"github.com/Veraticus/subwatch/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		RunE:  runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	statusOnly, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if statusOnly {
		version, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Schema version %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database migrated to schema version %d", storage.ExpectedSchemaVersion)))
	return nil
}
