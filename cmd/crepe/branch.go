package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
)

func branchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Inspect and switch the active branch",
		Long: `Every catalog and report command is scoped to one branch. Superadmins
see every branch; other managers only the branches they are assigned to.`,
	}

	cmd.AddCommand(branchListCmd())
	cmd.AddCommand(branchSelectCmd())

	return cmd
}

func branchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the branches you can manage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			branches, err := env.branches.Accessible(cmd.Context(), env.identity)
			if err != nil {
				return err
			}

			activeID := ""
			if active, activeErr := env.branches.Active(); activeErr == nil {
				activeID = active.ID
			}

			rows := make([][]string, len(branches))
			for i, b := range branches {
				marker := ""
				if b.ID == activeID {
					marker = cli.SuccessIcon
				}
				rows[i] = []string{marker, b.ID, b.Name}
			}

			fmt.Print(cli.RenderTable([]string{"", "ID", "NAME"}, rows))
			return nil
		},
	}
}

func branchSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <branch-id or name>",
		Short: "Switch the active branch",
		Long: `Switch the active branch. Any locally cached sales and expense data is
dropped so the next report reflects the new branch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			branches, err := env.branches.Accessible(cmd.Context(), env.identity)
			if err != nil {
				return err
			}

			for _, b := range branches {
				if b.ID == args[0] || b.Name == args[0] {
					if err := env.branches.Select(cmd.Context(), b); err != nil {
						return err
					}
					fmt.Println(cli.FormatSuccess("Selected branch " + b.Name))
					return nil
				}
			}

			return fmt.Errorf("branch %q is not among your accessible branches", args[0])
		},
	}
}
