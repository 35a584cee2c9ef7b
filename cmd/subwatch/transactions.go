package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/subwatch/internal/cli"
	"github.com/Veraticus/subwatch/internal/common"
	"github.com/Veraticus/subwatch/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List imported transactions",
		Long: `List the raw ledger entries that detection runs over, newest last.
Useful for checking what an import actually stored before running
detect.`,
		RunE: runTransactions,
	}

	cmd.Flags().String("from", "", "only transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "only transactions on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntP("limit", "n", 0, "maximum number of transactions to list")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	filter, err := transactionFilterFromFlags(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	total, err := store.GetTransactionCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}

	cli.RenderTransactions(os.Stdout, transactions, total)
	return nil
}

func transactionFilterFromFlags(cmd *cobra.Command) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	from, _ := cmd.Flags().GetString("from")
	if from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, common.NewUserError(fmt.Sprintf("invalid --from date %q, expected YYYY-MM-DD", from), err)
		}
		filter.StartDate = &date
	}

	to, _ := cmd.Flags().GetString("to")
	if to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, common.NewUserError(fmt.Sprintf("invalid --to date %q, expected YYYY-MM-DD", to), err)
		}
		filter.EndDate = &date
	}

	filter.Limit, _ = cmd.Flags().GetInt("limit")
	return filter, nil
}
