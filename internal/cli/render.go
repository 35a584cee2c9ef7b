package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/subwatch/internal/detect"
	"github.com/Veraticus/subwatch/internal/model"
)

// RenderSubscriptions writes the detection result as a table. Hidden
// records are skipped unless showHidden is set, in which case they are
// marked and dimmed.
func RenderSubscriptions(w io.Writer, result *detect.Result, showHidden bool) {
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, FormatWarning(warning))
	}

	visible := 0
	for _, r := range result.Records {
		if !r.Hidden {
			visible++
		}
	}
	if visible == 0 && (!showHidden || len(result.Records) == 0) {
		fmt.Fprintln(w, SubtleStyle.Render("No recurring charges detected."))
		return
	}

	fmt.Fprintln(w, FormatTitle("Recurring charges"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tAMOUNT\tFREQUENCY\tEVERY\tCHARGES\tLAST SEEN\tANNUAL")
	for _, r := range result.Records {
		if r.Hidden && !showHidden {
			continue
		}
		line := fmt.Sprintf("%s\t$%.2f\t%s\t%dd\t%d\t%s\t$%.2f",
			r.MerchantKey,
			r.RepresentativeAmount,
			r.Frequency,
			r.IntervalDays,
			r.OccurrenceCount,
			r.LastCharge.Format("2006-01-02"),
			r.AnnualCost,
		)
		if r.Hidden {
			line = SubtleStyle.Render(HiddenIcon + " " + line)
		}
		fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	RenderSummary(w, result.Summary)
}

// RenderSummary writes the aggregate cost figures.
func RenderSummary(w io.Writer, s detect.Summary) {
	fmt.Fprintf(w, "%s %d active",
		BoldStyle.Render("Subscriptions:"), s.ActiveCount)
	if s.HiddenCount > 0 {
		fmt.Fprintf(w, ", %d hidden", s.HiddenCount)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s $%.2f/mo  $%.2f/yr\n",
		BoldStyle.Render("Visible cost:"), s.MonthlyCost, s.AnnualCost)
}

// RenderTransactions writes raw ledger entries as a table. total is
// the full ledger size, shown when a filter narrowed the listing.
func RenderTransactions(w io.Writer, transactions []model.Transaction, total int) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No transactions stored."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tAMOUNT\tACCOUNT")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%s\n",
			t.Date.Format("2006-01-02"), t.Description, t.Amount, t.AccountID)
	}
	_ = tw.Flush()

	if len(transactions) < total {
		fmt.Fprintf(w, "\nShowing %d of %d transactions\n", len(transactions), total)
	}
}

// RenderOverrides writes the hide override list.
func RenderOverrides(w io.Writer, entries []model.OverrideEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No hidden merchants."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tHIDDEN AT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.MerchantKey, e.HiddenAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}
