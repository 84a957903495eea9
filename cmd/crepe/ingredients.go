package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

func ingredientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Manage the ingredient inventory of the active branch",
	}

	cmd.AddCommand(ingredientsListCmd())
	cmd.AddCommand(ingredientsCreateCmd())
	cmd.AddCommand(ingredientsUpdateCmd())
	cmd.AddCommand(ingredientsDeleteCmd())

	return cmd
}

func ingredientsListCmd() *cobra.Command {
	var (
		search  string
		lowOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingredients of the active branch",
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

			ingredients, err := env.client.Ingredients(cmd.Context())
			if err != nil {
				return requestFailed("list ingredients", err)
			}

			predicates := []report.Predicate[model.Ingredient]{
				report.EqualPredicate(active.ID, func(i model.Ingredient) string { return i.BranchID }),
				report.TextPredicate(search, func(i model.Ingredient) string { return i.Name }),
			}
			if lowOnly {
				predicates = append(predicates, func(i model.Ingredient) bool { return i.BelowMinimum() })
			}
			filtered := report.Apply(ingredients, predicates...)

			rows := make([][]string, len(filtered))
			for i, ing := range filtered {
				stock := strconv.FormatFloat(ing.CurrentStock, 'f', -1, 64)
				if ing.BelowMinimum() {
					stock = cli.WarningStyle.Render(stock + " " + cli.WarningIcon)
				}
				rows[i] = []string{
					ing.ID,
					ing.Name,
					stock,
					strconv.FormatFloat(ing.MinStock, 'f', -1, 64),
					ing.UnitMeasurement,
					cli.FormatMoney(ing.CostUnit),
				}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "STOCK", "MIN", "UNIT", "COST"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().BoolVar(&lowOnly, "low", false, "only ingredients at or below minimum stock")

	return cmd
}

func ingredientsCreateCmd() *cobra.Command {
	var (
		name     string
		unit     string
		cost     string
		stock    float64
		minStock float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an ingredient in the active branch",
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

			costUnit, err := decimal.NewFromString(cost)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", cost, err)
			}

			ingredient := model.IngredientAdd{
				Name:            name,
				UnitMeasurement: unit,
				BranchID:        active.ID,
				CostUnit:        costUnit,
				CurrentStock:    stock,
				MinStock:        minStock,
			}

			if err := env.client.CreateIngredient(cmd.Context(), ingredient); err != nil {
				return requestFailed("create ingredient", err)
			}

			fmt.Println(cli.FormatSuccess("Created ingredient " + name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "ingredient name")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measurement (kg, l, pz)")
	cmd.Flags().StringVar(&cost, "cost", "0", "cost per unit")
	cmd.Flags().Float64Var(&stock, "stock", 0, "current stock")
	cmd.Flags().Float64Var(&minStock, "min-stock", 0, "minimum stock before restocking")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func ingredientsUpdateCmd() *cobra.Command {
	var (
		name     string
		unit     string
		cost     string
		stock    float64
		minStock float64
	)

	cmd := &cobra.Command{
		Use:   "update <ingredient-id>",
		Short: "Update an ingredient",
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

			costUnit, err := decimal.NewFromString(cost)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", cost, err)
			}

			ingredient := model.Ingredient{
				ID:              args[0],
				Name:            name,
				UnitMeasurement: unit,
				BranchID:        active.ID,
				CostUnit:        costUnit,
				CurrentStock:    stock,
				MinStock:        minStock,
			}

			if err := env.client.UpdateIngredient(cmd.Context(), ingredient); err != nil {
				return requestFailed("update ingredient", err)
			}

			fmt.Println(cli.FormatSuccess("Updated ingredient " + args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "ingredient name")
	cmd.Flags().StringVar(&unit, "unit", "", "unit of measurement")
	cmd.Flags().StringVar(&cost, "cost", "0", "cost per unit")
	cmd.Flags().Float64Var(&stock, "stock", 0, "current stock")
	cmd.Flags().Float64Var(&minStock, "min-stock", 0, "minimum stock")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func ingredientsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <ingredient-id>",
		Short: "Delete an ingredient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete ingredient "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteIngredient(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete ingredient", err)
			}

			fmt.Println(cli.FormatSuccess("Deleted ingredient " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
