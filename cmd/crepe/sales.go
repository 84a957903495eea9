package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
	"github.com/crepepos/backoffice/internal/tui"
)

func salesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Browse and manage sale records",
	}

	cmd.AddCommand(salesListCmd())
	cmd.AddCommand(salesDetailsCmd())
	cmd.AddCommand(salesDeleteCmd())
	cmd.AddCommand(salesDeleteLineCmd())

	return cmd
}

func salesListCmd() *cobra.Command {
	var (
		fromStr  string
		toStr    string
		search   string
		sellerID string
		payment  string
		kind     string
		sortKey  string
		asc      bool
		page     int
		pageSize int
		openUI   bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales with filters",
		Long: `List sales filtered by date range, seller, payment method and sale kind.
Results come from the local snapshot when one exists; --refresh forces a
fetch from the backend.`,
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

			sales, fetchedAt, err := loadSales(cmd, env, active.ID, refresh)
			if err != nil {
				return err
			}

			query := report.SalesQuery{
				Search:   search,
				SellerID: sellerID,
				Payment:  payment,
				Kind:     kind,
			}
			if fromStr != "" {
				from, parseErr := parseDay(fromStr)
				if parseErr != nil {
					return parseErr
				}
				query.From = &from
			}
			if toStr != "" {
				to, parseErr := parseDay(toStr)
				if parseErr != nil {
					return parseErr
				}
				query.To = &to
			}

			filtered := report.FilterSales(sales, query)

			if openUI {
				return tui.Run(cmd.Context(), filtered)
			}

			if sortKey != "" {
				cmp := report.SaleComparator(sortKey)
				if cmp == nil {
					return fmt.Errorf("unknown sort key %q (use date, seller, payment or total)", sortKey)
				}
				direction := report.Descending
				if asc {
					direction = report.Ascending
				}
				filtered = report.SortBy(filtered, cmp, direction)
			}

			pageItems := report.Paginate(filtered, page, pageSize)

			rows := make([][]string, len(pageItems))
			for i, s := range pageItems {
				rows[i] = []string{
					s.ID,
					s.CreatedAt.Format("2006-01-02 15:04"),
					s.SellerName(),
					s.PaymentMethod,
					fmt.Sprintf("%d", len(s.Details)),
					cli.FormatMoney(s.Total),
				}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "DATE", "SELLER", "PAYMENT", "LINES", "TOTAL"}, rows))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
				"page %d · %d of %d sales · total %s",
				page, len(pageItems), len(filtered), cli.FormatMoney(report.SalesTotal(filtered)),
			)))
			if !fetchedAt.IsZero() {
				fmt.Println(cli.SubtleStyle.Render("data from local snapshot fetched " + fetchedAt.Local().Format("2006-01-02 15:04") + "; pass --refresh to update"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&search, "search", "", "match sale id or seller name")
	cmd.Flags().StringVar(&sellerID, "seller", "", "filter by seller user id")
	cmd.Flags().StringVar(&payment, "payment", "", "filter by payment method (cash, card, transfer)")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by sale kind (products, combos)")
	cmd.Flags().StringVar(&sortKey, "sort", report.SaleSortDate, "sort key (date, seller, payment, total)")
	cmd.Flags().BoolVar(&asc, "asc", false, "sort ascending instead of descending")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")
	cmd.Flags().BoolVar(&openUI, "ui", false, "open the interactive browser")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch fresh data from the backend")

	return cmd
}

// loadSales serves the snapshot when present and fresh enough for the
// caller, falling back to the backend and re-priming the cache.
func loadSales(cmd *cobra.Command, env *appEnv, branchID string, refresh bool) ([]model.Sale, time.Time, error) {
	if !refresh {
		cached, fetchedAt, err := env.cache.Sales(cmd.Context(), branchID)
		if err != nil {
			return nil, time.Time{}, err
		}
		if cached != nil {
			return cached, fetchedAt, nil
		}
	}

	sales, err := env.client.Sales(cmd.Context())
	if err != nil {
		return nil, time.Time{}, requestFailed("list sales", err)
	}

	if err := env.cache.SaveSales(cmd.Context(), branchID, sales); err != nil {
		return nil, time.Time{}, err
	}

	return sales, time.Time{}, nil
}

func salesDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <sale-id>",
		Short: "Show the detail lines of one sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			details, err := env.client.SaleDetails(cmd.Context(), args[0])
			if err != nil {
				return requestFailed("fetch sale details", err)
			}

			sale := model.Sale{ID: args[0], Details: details}

			rows := make([][]string, len(details))
			for i, d := range details {
				rows[i] = []string{d.ID, d.LineName(), fmt.Sprintf("%d", d.Amount), cli.FormatMoney(d.Subtotal)}
			}

			fmt.Print(cli.RenderTable([]string{"LINE", "ITEM", "QTY", "SUBTOTAL"}, rows))
			fmt.Println(cli.SubtleStyle.Render("recomputed total " + cli.FormatMoney(sale.RecomputedTotal())))
			return nil
		},
	}
}

func salesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <sale-id>",
		Short: "Delete a whole sale record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete sale "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteSale(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete sale", err)
			}

			// Cached lists still hold the deleted record.
			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}

			fmt.Println(cli.FormatSuccess("Deleted sale " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func salesDeleteLineCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete-line <detail-id>",
		Short: "Delete one detail line of a sale",
		Long: `Delete one detail line. The backend keeps the sale's stored total
unchanged, so the listed total and the sum of the remaining lines will
disagree afterwards; 'crepe sales details' shows both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete sale line "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteSaleDetail(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete sale line", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}

			fmt.Println(cli.FormatSuccess("Deleted sale line " + args[0]))
			fmt.Println(cli.FormatWarning("the sale's stored total is not recomputed by the backend"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

// parseDay parses a YYYY-MM-DD flag in local time.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
