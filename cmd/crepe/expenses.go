package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/config"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
	"github.com/crepepos/backoffice/internal/sheets"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses and their category tree",
	}

	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesCreateCmd())
	cmd.AddCommand(expensesUpdateCmd())
	cmd.AddCommand(expensesDeleteCmd())
	cmd.AddCommand(expensesSummaryCmd())
	cmd.AddCommand(expenseCategoriesCmd())

	return cmd
}

func expensesListCmd() *cobra.Command {
	var (
		fromStr       string
		toStr         string
		search        string
		categoryID    string
		subcategoryID string
		refresh       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses of the active branch",
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

			expenses, fetchedAt, err := loadExpenses(cmd, env, active.ID, refresh)
			if err != nil {
				return err
			}

			predicates := []report.Predicate[model.Expense]{
				report.TextPredicate(search, func(e model.Expense) string { return e.Description }),
			}
			if categoryID != "" {
				predicates = append(predicates, report.EqualPredicate(categoryID, func(e model.Expense) string { return e.CategoryID }))
			}
			if subcategoryID != "" {
				predicates = append(predicates, report.EqualPredicate(subcategoryID, func(e model.Expense) string { return e.SubcategoryID }))
			}

			var from, to *time.Time
			if fromStr != "" {
				t, parseErr := parseDay(fromStr)
				if parseErr != nil {
					return parseErr
				}
				from = &t
			}
			if toStr != "" {
				t, parseErr := parseDay(toStr)
				if parseErr != nil {
					return parseErr
				}
				to = &t
			}
			predicates = append(predicates, report.DateRangePredicate(from, to, func(e model.Expense) time.Time { return e.Date }))

			filtered := report.Apply(expenses, predicates...)

			total := decimal.Zero
			rows := make([][]string, len(filtered))
			for i, e := range filtered {
				category := e.CategoryID
				if e.Category != nil {
					category = e.Category.Name
				}
				rows[i] = []string{e.ID, e.Date.Format("2006-01-02"), e.Description, category, cli.FormatMoney(e.Amount)}
				total = total.Add(e.Amount)
			}

			fmt.Print(cli.RenderTable([]string{"ID", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT"}, rows))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d expenses · total %s", len(filtered), cli.FormatMoney(total))))
			if !fetchedAt.IsZero() {
				fmt.Println(cli.SubtleStyle.Render("data from local snapshot fetched " + fetchedAt.Local().Format("2006-01-02 15:04") + "; pass --refresh to update"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive description filter")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	cmd.Flags().StringVar(&subcategoryID, "subcategory", "", "filter by subcategory id")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch fresh data from the backend")

	return cmd
}

func loadExpenses(cmd *cobra.Command, env *appEnv, branchID string, refresh bool) ([]model.Expense, time.Time, error) {
	if !refresh {
		cached, fetchedAt, err := env.cache.Expenses(cmd.Context(), branchID)
		if err != nil {
			return nil, time.Time{}, err
		}
		if cached != nil {
			return cached, fetchedAt, nil
		}
	}

	all, err := env.client.Expenses(cmd.Context())
	if err != nil {
		return nil, time.Time{}, requestFailed("list expenses", err)
	}

	scoped := report.Apply(all, report.EqualPredicate(branchID, func(e model.Expense) string { return e.BranchID }))

	if err := env.cache.SaveExpenses(cmd.Context(), branchID, scoped); err != nil {
		return nil, time.Time{}, err
	}

	return scoped, time.Time{}, nil
}

func loadExpenseCategories(cmd *cobra.Command, env *appEnv, branchID string, refresh bool) ([]model.ExpenseCategory, error) {
	if !refresh {
		cached, _, err := env.cache.ExpenseCategories(cmd.Context(), branchID)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	all, err := env.client.ExpenseCategories(cmd.Context())
	if err != nil {
		return nil, requestFailed("list expense categories", err)
	}

	scoped := report.Apply(all, report.EqualPredicate(branchID, func(c model.ExpenseCategory) string { return c.BranchID }))

	if err := env.cache.SaveExpenseCategories(cmd.Context(), branchID, scoped); err != nil {
		return nil, err
	}

	return scoped, nil
}

func expensesCreateCmd() *cobra.Command {
	var (
		date          string
		description   string
		categoryID    string
		subcategoryID string
		amount        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an expense in the active branch",
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

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if _, err := parseDay(date); err != nil {
				return err
			}

			expense := model.ExpenseCreate{
				Date:          date,
				Description:   description,
				CategoryID:    categoryID,
				SubcategoryID: subcategoryID,
				BranchID:      active.ID,
				Amount:        value,
			}

			if err := env.client.CreateExpense(cmd.Context(), expense); err != nil {
				return requestFailed("create expense", err)
			}

			_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)

			fmt.Println(cli.FormatSuccess("Created expense of " + cli.FormatMoney(value)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "what the money was spent on")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&subcategoryID, "subcategory", "", "subcategory id")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func expensesUpdateCmd() *cobra.Command {
	var (
		date          string
		description   string
		categoryID    string
		subcategoryID string
		amount        string
	)

	cmd := &cobra.Command{
		Use:   "update <expense-id>",
		Short: "Update an expense",
		Long:  `Only the provided flags are sent; omitted fields keep their values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			update := model.ExpenseUpdate{
				ID:            args[0],
				Date:          date,
				Description:   description,
				CategoryID:    categoryID,
				SubcategoryID: subcategoryID,
			}
			if amount != "" {
				value, parseErr := decimal.NewFromString(amount)
				if parseErr != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, parseErr)
				}
				update.Amount = &value
			}
			if date != "" {
				if _, err := parseDay(date); err != nil {
					return err
				}
			}

			if err := env.client.UpdateExpense(cmd.Context(), update); err != nil {
				return requestFailed("update expense", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}

			fmt.Println(cli.FormatSuccess("Updated expense " + args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&subcategoryID, "subcategory", "", "subcategory id")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent")

	return cmd
}

func expensesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete expense "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteExpense(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete expense", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}

			fmt.Println(cli.FormatSuccess("Deleted expense " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func expensesSummaryCmd() *cobra.Command {
	var (
		period       string
		startStr     string
		endStr       string
		refresh      bool
		exportSheets bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Grouped expense totals for a period",
		Long: `Aggregate the branch's expenses by category and subcategory for a
period. Expenses without a subcategory land in a "Sin subcategoría"
bucket under their category. With --export-sheets the summary is also
written to a Google spreadsheet.`,
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

			resolver := report.NewResolver(report.PeriodKind(period))
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

			bar := progressbar.NewOptions(2,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Fetching expense data..."),
				progressbar.OptionClearOnFinish(),
			)

			categories, err := loadExpenseCategories(cmd, env, active.ID, refresh)
			if err != nil {
				return err
			}
			_ = bar.Add(1)

			expenses, _, err := loadExpenses(cmd, env, active.ID, refresh)
			if err != nil {
				return err
			}
			_ = bar.Add(1)

			inPeriod := report.Apply(expenses,
				report.DateRangePredicate(&start, &end, func(e model.Expense) time.Time { return e.Date }),
			)

			grouped := report.GroupExpenses(inPeriod, categories)
			grouped.SortByTotal()

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Expenses %s — %s", start.Format("2006-01-02"), end.Format("2006-01-02"))))
			for _, cat := range grouped.Categories {
				fmt.Printf("%s %s\n", cli.BoldStyle.Render(cat.Name), cli.FormatMoney(cat.Total))
				for _, sub := range cat.Subcategories {
					fmt.Printf("  %-28s %4d  %s\n", sub.Name, len(sub.Expenses), cli.FormatMoney(sub.Total))
				}
			}
			fmt.Println(cli.BoldStyle.Render("Total " + cli.FormatMoney(grouped.GroupedTotal)))
			if !grouped.OverallTotal.Equal(grouped.GroupedTotal) {
				fmt.Println(cli.SubtleStyle.Render("uncategorizable expenses excluded: " +
					cli.FormatMoney(grouped.OverallTotal.Sub(grouped.GroupedTotal))))
			}

			if exportSheets {
				return exportSummary(cmd, active.Name, start, end, grouped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "month", "period (today, week, month, custom)")
	cmd.Flags().StringVar(&startStr, "start", "", "custom period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "custom period end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch fresh data from the backend")
	cmd.Flags().BoolVar(&exportSheets, "export-sheets", false, "export the summary to Google Sheets")

	return cmd
}

func exportSummary(cmd *cobra.Command, branchName string, start, end time.Time, grouped *report.GroupedExpenses) error {
	cfg := sheets.DefaultConfig()
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.ServiceAccountPath = config.ExpandPath(viper.GetString("sheets.service_account"))
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if tz := viper.GetString("sheets.timezone"); tz != "" {
		cfg.TimeZone = tz
	}
	if dir, err := config.StateDir(); err == nil {
		cfg.TokenFile = filepath.Join(dir, "sheets-token.json")
	}

	exporter, err := sheets.NewExporter(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}

	if err := exporter.Export(cmd.Context(), branchName, start, end, grouped); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Exported summary to Google Sheets"))
	return nil
}

func expenseCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the expense category tree",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories and subcategories of the active branch",
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

			categories, err := loadExpenseCategories(cmd, env, active.ID, true)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, cat := range categories {
				rows = append(rows, []string{cat.ID, cat.Name, ""})
				for _, sub := range cat.Subcategories {
					rows = append(rows, []string{sub.ID, "", sub.Name})
				}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "CATEGORY", "SUBCATEGORY"}, rows))
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category in the active branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			active, err := env.activeBranch()
			if err != nil {
				return err
			}

			if err := env.client.CreateExpenseCategory(cmd.Context(), args[0], active.ID); err != nil {
				return requestFailed("create expense category", err)
			}

			_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			fmt.Println(cli.FormatSuccess("Created category " + args[0]))
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename <category-id> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.UpdateExpenseCategory(cmd.Context(), args[0], args[1]); err != nil {
				return requestFailed("rename expense category", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}
			fmt.Println(cli.FormatSuccess("Renamed category " + args[0]))
			return nil
		},
	}

	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category and its subcategories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete category "+args[0]+" and its subcategories?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteExpenseCategory(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete expense category", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}
			fmt.Println(cli.FormatSuccess("Deleted category " + args[0]))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	sub := &cobra.Command{
		Use:   "sub",
		Short: "Manage subcategories",
	}

	subAdd := &cobra.Command{
		Use:   "add <category-id> <name>",
		Short: "Add a subcategory to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.CreateExpenseSubcategory(cmd.Context(), args[1], args[0]); err != nil {
				return requestFailed("create expense subcategory", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}
			fmt.Println(cli.FormatSuccess("Created subcategory " + args[1]))
			return nil
		},
	}

	subRename := &cobra.Command{
		Use:   "rename <subcategory-id> <new-name>",
		Short: "Rename a subcategory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.UpdateExpenseSubcategory(cmd.Context(), args[0], args[1]); err != nil {
				return requestFailed("rename expense subcategory", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}
			fmt.Println(cli.FormatSuccess("Renamed subcategory " + args[0]))
			return nil
		},
	}

	subDelete := &cobra.Command{
		Use:   "delete <subcategory-id>",
		Short: "Delete a subcategory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.DeleteExpenseSubcategory(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete expense subcategory", err)
			}

			if active, branchErr := env.activeBranch(); branchErr == nil {
				_ = env.cache.InvalidateBranch(cmd.Context(), active.ID)
			}
			fmt.Println(cli.FormatSuccess("Deleted subcategory " + args[0]))
			return nil
		},
	}

	sub.AddCommand(subAdd)
	sub.AddCommand(subRename)
	sub.AddCommand(subDelete)

	cmd.AddCommand(list)
	cmd.AddCommand(create)
	cmd.AddCommand(rename)
	cmd.AddCommand(deleteCmd)
	cmd.AddCommand(sub)

	return cmd
}
