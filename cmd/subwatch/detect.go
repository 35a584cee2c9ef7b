package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/config"
	"github.com/Veraticus/subwatch/internal/detect"
)

func detectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect recurring charges in the ledger",
		Long: `Scan the full transaction history for merchants that charge on a
regular cadence and project what each costs per year. Detection is
re-derived from scratch on every run; only hide overrides persist.`,
		RunE: runDetect,
	}

	cmd.Flags().BoolP("all", "a", false, "include hidden subscriptions")
	cmd.Flags().Bool("json", false, "emit records as JSON")

	return cmd
}

func runDetect(cmd *cobra.Command, _ []string) error {
	showAll, _ := cmd.Flags().GetBool("all")
	asJSON, _ := cmd.Flags().GetBool("json")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pipeline := detect.NewPipeline(store, store, config.Detection())
	result, err := pipeline.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	cli.RenderSubscriptions(os.Stdout, result, showAll)
	return nil
}
