package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/api"
	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/report"
)

func dashboardCmd() *cobra.Command {
	var (
		period   string
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Sales and expense snapshot for the active branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			active, err := env.activeBranch()
			if err != nil {
				return err
			}

			if !report.ValidPeriod(period) {
				return fmt.Errorf("invalid period %q (use today, week, month or custom)", period)
			}

			query := api.PeriodQuery{Period: period}
			if report.PeriodKind(period) == report.PeriodCustom {
				resolver := report.NewResolver(report.PeriodCustom)
				if startStr != "" {
					t, parseErr := parseDay(startStr)
					if parseErr != nil {
						return parseErr
					}
					resolver.SetCustomStart(t)
				}
				if endStr != "" {
					t, parseErr := parseDay(endStr)
					if parseErr != nil {
						return parseErr
					}
					resolver.SetCustomEnd(t)
				}
				start, end := resolver.Range()
				query.StartDate = start.Format("2006-01-02")
				query.EndDate = end.Format("2006-01-02")
			}

			bar := progressbar.NewOptions(2,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Fetching dashboard..."),
				progressbar.OptionClearOnFinish(),
			)

			stats, err := env.client.DashboardStats(cmd.Context(), active.ID, query)
			if err != nil {
				return requestFailed("fetch dashboard stats", err)
			}
			_ = bar.Add(1)

			expenses, err := env.client.ExpensesSummary(cmd.Context(), active.ID, query, "", "")
			if err != nil {
				return requestFailed("fetch expenses summary", err)
			}
			_ = bar.Add(1)

			net := stats.TotalSales.Sub(expenses.TotalExpenses)

			lines := []string{
				fmt.Sprintf("Period:         %s — %s", stats.Period.Start, stats.Period.End),
				fmt.Sprintf("Sales:          %s (%d tickets)", cli.FormatMoney(stats.TotalSales), stats.SalesCount),
				fmt.Sprintf("Average ticket: %s", cli.FormatMoney(stats.AverageTicket)),
				fmt.Sprintf("Expenses:       %s", cli.FormatMoney(expenses.TotalExpenses)),
				fmt.Sprintf("Net:            %s", cli.FormatMoney(net)),
			}

			fmt.Println(cli.RenderBox(cli.ChartIcon+" "+active.Name, strings.Join(lines, "\n")))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "today", "period (today, week, month, custom)")
	cmd.Flags().StringVar(&startStr, "start", "", "custom period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "custom period end (YYYY-MM-DD)")

	return cmd
}
