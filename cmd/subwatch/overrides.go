package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/merchant"
	"github.com/Veraticus/subwatch/internal/service"
)

func hideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <merchant>",
		Short: "Hide a merchant from the default subscription view",
		Long: `Record an override excluding a merchant from the default detect
output. Detection itself is unaffected: the record is still computed,
just flagged hidden. The merchant need not currently have charges.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverride(cmd, args, true)
		},
	}
}

func unhideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unhide <merchant>",
		Short: "Restore a hidden merchant to the default view",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverride(cmd, args, false)
		},
	}
}

func runOverride(cmd *cobra.Command, args []string, hide bool) error {
	ctx := cmd.Context()
	key := merchant.Canonical(strings.Join(args, " "))
	if key == "" {
		return common.NewUserError("merchant name cannot be empty", nil)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// The override view is not updated until the write is confirmed, so
	// a failed persist is never masked.
	if hide {
		err = store.HideMerchant(ctx, key, time.Now())
	} else {
		err = store.UnhideMerchant(ctx, key)
	}
	if err != nil {
		return common.NewUserError(fmt.Sprintf("failed to update override for %q", key), err)
	}

	var notifier service.Notifier = logNotifier{}
	notifier.DataChanged(ctx, "override changed")

	if hide {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Hidden %q from the default view", key)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %q to the default view", key)))
	}
	return nil
}

func hiddenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hidden",
		Short: "List hidden merchants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.ListOverrides(ctx)
			if err != nil {
				return fmt.Errorf("failed to list overrides: %w", err)
			}

			cli.RenderOverrides(os.Stdout, entries)
			return nil
		},
	}
}
