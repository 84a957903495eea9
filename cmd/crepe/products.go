package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalog of the active branch",
	}

	cmd.AddCommand(productsListCmd())
	cmd.AddCommand(productsCreateCmd())
	cmd.AddCommand(productsUpdateCmd())
	cmd.AddCommand(productsDeleteCmd())
	cmd.AddCommand(productTypesCmd())
	cmd.AddCommand(productIngredientsCmd())

	return cmd
}

func productsListCmd() *cobra.Command {
	var (
		search   string
		sortKey  string
		desc     bool
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products of the active branch",
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

			products, err := env.client.Products(cmd.Context())
			if err != nil {
				return requestFailed("list products", err)
			}

			filtered := report.Apply(products,
				report.EqualPredicate(active.ID, func(p model.Product) string { return p.BranchID }),
				report.TextPredicate(search, func(p model.Product) string { return p.Name }),
			)

			var cmp report.Comparator[model.Product]
			switch sortKey {
			case "name":
				cmp = report.StringKey(func(p model.Product) (string, bool) { return p.Name, true })
			case "price":
				cmp = report.DecimalKey(func(p model.Product) (decimal.Decimal, bool) { return p.Price, true })
			default:
				return fmt.Errorf("unknown sort key %q (use name or price)", sortKey)
			}

			direction := report.Ascending
			if desc {
				direction = report.Descending
			}
			sorted := report.SortBy(filtered, cmp, direction)
			pageItems := report.Paginate(sorted, page, pageSize)

			rows := make([][]string, len(pageItems))
			for i, p := range pageItems {
				typeName := ""
				if p.Type != nil {
					typeName = p.Type.Name
				}
				rows[i] = []string{p.ID, p.Name, cli.FormatMoney(p.Price), typeName, activeLabel(p.IsActive)}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "PRICE", "TYPE", "ACTIVE"}, rows))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("page %d · %d of %d products", page, len(pageItems), len(filtered))))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&sortKey, "sort", "name", "sort key (name, price)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func productsCreateCmd() *cobra.Command {
	var (
		name   string
		price  string
		typeID string
		image  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a product in the active branch",
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

			product := model.ProductRegister{
				ID:       uuid.NewString(),
				Name:     name,
				Price:    amount,
				Image:    image,
				TypeID:   typeID,
				BranchID: active.ID,
			}

			if err := env.client.CreateProduct(cmd.Context(), product); err != nil {
				return requestFailed("create product", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created product %s (%s)", name, product.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "", "unit price")
	cmd.Flags().StringVar(&typeID, "type", "", "product type id")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func productsUpdateCmd() *cobra.Command {
	var (
		name     string
		price    string
		typeID   string
		image    string
		isActive bool
	)

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}

			update := model.ProductUpdate{
				ID:       args[0],
				Name:     name,
				Price:    amount,
				Image:    image,
				TypeID:   typeID,
				IsActive: isActive,
			}

			if err := env.client.UpdateProduct(cmd.Context(), update); err != nil {
				return requestFailed("update product", err)
			}

			fmt.Println(cli.FormatSuccess("Updated product " + args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "", "unit price")
	cmd.Flags().StringVar(&typeID, "type", "", "product type id")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	cmd.Flags().BoolVar(&isActive, "active", true, "whether the product is sellable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func productsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete product "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete product", err)
			}

			fmt.Println(cli.FormatSuccess("Deleted product " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func productTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List product types of the active branch",
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

			types, err := env.client.TypeProducts(cmd.Context())
			if err != nil {
				return requestFailed("list product types", err)
			}

			scoped := report.Apply(types,
				report.EqualPredicate(active.ID, func(t model.TypeProduct) string { return t.BranchID }),
			)

			rows := make([][]string, len(scoped))
			for i, tp := range scoped {
				rows[i] = []string{tp.ID, tp.Name, tp.Description}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

func productIngredientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Manage a product's recipe",
	}

	list := &cobra.Command{
		Use:   "list <product-id>",
		Short: "List the ingredients of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			links, err := env.client.ProductIngredients(cmd.Context(), args[0])
			if err != nil {
				return requestFailed("list product ingredients", err)
			}

			rows := make([][]string, len(links))
			for i, link := range links {
				name, unit := link.IngredientID, ""
				if link.Ingredient != nil {
					name = link.Ingredient.Name
					unit = link.Ingredient.UnitMeasurement
				}
				base := ""
				if link.IsBase {
					base = cli.SuccessIcon
				}
				rows[i] = []string{link.ID, name, strconv.FormatFloat(link.Amount, 'f', -1, 64), unit, base}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "INGREDIENT", "AMOUNT", "UNIT", "BASE"}, rows))
			return nil
		},
	}

	var (
		amount float64
		isBase bool
	)
	add := &cobra.Command{
		Use:   "add <product-id> <ingredient-id>",
		Short: "Add an ingredient to a product's recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.AddProductIngredient(cmd.Context(), args[0], args[1], amount, isBase); err != nil {
				return requestFailed("add product ingredient", err)
			}

			fmt.Println(cli.FormatSuccess("Added ingredient to product " + args[0]))
			return nil
		},
	}
	add.Flags().Float64Var(&amount, "amount", 0, "amount used per unit sold")
	add.Flags().BoolVar(&isBase, "base", false, "mark as base ingredient")
	_ = add.MarkFlagRequired("amount")

	remove := &cobra.Command{
		Use:   "remove <link-id>",
		Short: "Remove an ingredient from a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.client.DeleteProductIngredient(cmd.Context(), args[0]); err != nil {
				return requestFailed("remove product ingredient", err)
			}

			fmt.Println(cli.FormatSuccess("Removed recipe entry " + args[0]))
			return nil
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(add)
	cmd.AddCommand(remove)

	return cmd
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
