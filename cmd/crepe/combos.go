package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

func combosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combos",
		Short: "Manage day-restricted combo offerings of the active branch",
	}

	cmd.AddCommand(combosListCmd())
	cmd.AddCommand(combosCreateCmd())
	cmd.AddCommand(combosUpdateCmd())
	cmd.AddCommand(combosDeleteCmd())

	return cmd
}

func combosListCmd() *cobra.Command {
	var (
		search string
		day    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List combos of the active branch",
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

			combos, err := env.client.Combos(cmd.Context())
			if err != nil {
				return requestFailed("list combos", err)
			}

			predicates := []report.Predicate[model.Combo]{
				report.EqualPredicate(active.ID, func(c model.Combo) string { return c.BranchID }),
				report.TextPredicate(search, func(c model.Combo) string { return c.Name }),
			}
			if day != "" {
				predicates = append(predicates, func(c model.Combo) bool { return c.AvailableOn(day) })
			}
			filtered := report.Apply(combos, predicates...)

			rows := make([][]string, len(filtered))
			for i, c := range filtered {
				days := "every day"
				if restricted := c.Days(); len(restricted) > 0 {
					days = strings.Join(restricted, ", ")
				}
				rows[i] = []string{c.ID, c.Name, cli.FormatMoney(c.Price), days, activeLabel(c.IsActive)}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "PRICE", "DAYS", "ACTIVE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&day, "day", "", "only combos available on this weekday")

	return cmd
}

func comboFlags(cmd *cobra.Command, name, description, price, days *string, isActive *bool) {
	cmd.Flags().StringVar(name, "name", "", "combo name")
	cmd.Flags().StringVar(description, "description", "", "combo description")
	cmd.Flags().StringVar(price, "price", "", "combo price")
	cmd.Flags().StringVar(days, "days", "", "comma-separated weekday names (empty = every day)")
	cmd.Flags().BoolVar(isActive, "active", true, "whether the combo is sellable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
}

func combosCreateCmd() *cobra.Command {
	var (
		name        string
		description string
		price       string
		days        string
		isActive    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a combo in the active branch",
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

			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}

			combo := model.Combo{
				Name:        name,
				Description: description,
				Price:       amount,
				BranchID:    active.ID,
				ComboDay:    days,
				IsActive:    isActive,
			}

			if err := env.client.CreateCombo(cmd.Context(), combo); err != nil {
				return requestFailed("create combo", err)
			}

			fmt.Println(cli.FormatSuccess("Created combo " + name))
			return nil
		},
	}

	comboFlags(cmd, &name, &description, &price, &days, &isActive)

	return cmd
}

func combosUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		price       string
		days        string
		isActive    bool
	)

	cmd := &cobra.Command{
		Use:   "update <combo-id>",
		Short: "Update a combo",
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

			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}

			combo := model.Combo{
				ID:          args[0],
				Name:        name,
				Description: description,
				Price:       amount,
				BranchID:    active.ID,
				ComboDay:    days,
				IsActive:    isActive,
			}

			if err := env.client.UpdateCombo(cmd.Context(), combo); err != nil {
				return requestFailed("update combo", err)
			}

			fmt.Println(cli.FormatSuccess("Updated combo " + args[0]))
			return nil
		},
	}

	comboFlags(cmd, &name, &description, &price, &days, &isActive)

	return cmd
}

func combosDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <combo-id>",
		Short: "Delete a combo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete combo "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteCombo(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete combo", err)
			}

			fmt.Println(cli.FormatSuccess("Deleted combo " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
