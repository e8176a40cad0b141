package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"InvestTracker/internal/client"
	"InvestTracker/internal/model"
	"InvestTracker/internal/networth"
	"InvestTracker/internal/notifier"

	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

func newPerformanceCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "performance REF",
		Aliases: []string{"perf"},
		Short:   "Show the 1D, 1W, 1M, 3M and 1Y change of a ticker",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			tp, err := get().collector.Collect(ctx, args[0])
			if err != nil {
				return userError(err)
			}
			printPerformance(cmd.OutOrStdout(), tp)
			return nil
		},
	}
}

func printPerformance(out io.Writer, tp *model.TickerPerformance) {
	symbol := strings.ToUpper(tp.Ticker.TickerSymbol)
	cur, ok := tp.Current()
	if !ok {
		fmt.Fprintf(out, "%s: no price history\n", symbol)
		return
	}
	fmt.Fprintf(out, "%s  %s  %s\n", symbol, cur.Date, cur.Price.StringFixed(2))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, r := range tp.Results {
		ref := "-"
		if r.Available() {
			ref = fmt.Sprintf("%s @ %s", r.Reference.Date, r.Reference.Price.StringFixed(2))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Label, notifier.FormatPercent(r), ref)
	}
	tw.Flush()
}

func newChartCmd(get func() *app) *cobra.Command {
	var window, output string
	cmd := &cobra.Command{
		Use:   "chart REF",
		Short: "Render a price chart as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			w := a.window
			if window != "" {
				var ok bool
				if w, ok = model.WindowByLabel(window); !ok {
					return fmt.Errorf("unknown window %q", window)
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			tp, err := a.collector.Collect(ctx, args[0])
			if err != nil {
				return userError(err)
			}
			png, err := a.charts.Render(tp.Ticker.TickerSymbol, tp.Series, w)
			if err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			if output == "" {
				output = fmt.Sprintf("%s-%s.png", strings.ToUpper(tp.Ticker.TickerSymbol), w.Label)
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "", "lookback window (1D, 1W, 1M, 3M, 1Y)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

func newNetWorthCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Summarize accounts and properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			s, err := a.netWorth(ctx)
			if err != nil {
				return userError(err)
			}
			printNetWorth(cmd.OutOrStdout(), s, a.cfg.Currency)
			return nil
		},
	}
}

func printNetWorth(out io.Writer, s networth.Summary, currency string) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, acc := range s.Accounts {
		fmt.Fprintf(tw, "%s\t%s\tunvested %s\n", acc.Name,
			networth.FormatMoney(acc.Owned, currency), networth.FormatMoney(acc.Unvested, currency))
	}
	for _, p := range s.Properties {
		fmt.Fprintf(tw, "%s\t%s\tmortgage %s\n", p.Name,
			networth.FormatMoney(p.Equity, currency), networth.FormatMoney(p.Mortgage, currency))
	}
	fmt.Fprintf(tw, "Investments\t%s\t\n", networth.FormatMoney(s.Investments, currency))
	fmt.Fprintf(tw, "Real estate equity\t%s\t\n", networth.FormatMoney(s.Equity, currency))
	fmt.Fprintf(tw, "Total\t%s\t\n", networth.FormatMoney(s.Total, currency))
	tw.Flush()
}

// newBackupCmd builds either the backup or the restore command.
func newBackupCmd(get func() *app, restore bool) *cobra.Command {
	use, short := "backup [DIR]", "Ask the backend to back up its database"
	if restore {
		use, short = "restore [DIR]", "Ask the backend to restore its database"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := client.DefaultBackupDir
			if len(args) == 1 {
				dir = args[0]
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			c := get().client
			call, action := c.Backup, "backup"
			if restore {
				call, action = c.Restore, "restore"
			}
			if err := call(ctx, dir); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s completed (%s)\n", action, dir)
			return nil
		},
	}
}

// userError keeps the cause but leads with the user-facing message.
func userError(err error) error {
	if client.Classify(err) == client.KindUnknown {
		return err
	}
	return fmt.Errorf("%s (%w)", client.UserMessage(err), err)
}
