package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersRolesCmd())
	cmd.AddCommand(usersCreateCmd())
	cmd.AddCommand(usersUpdateCmd())
	cmd.AddCommand(usersDeleteCmd())

	return cmd
}

func usersListCmd() *cobra.Command {
	var (
		search       string
		cashiersOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			var (
				users   []model.User
				listErr error
			)
			if cashiersOnly {
				users, listErr = env.client.Cashiers(cmd.Context())
			} else {
				users, listErr = env.client.Users(cmd.Context())
			}
			if listErr != nil {
				return requestFailed("list users", listErr)
			}

			filtered := report.Apply(users,
				report.TextPredicate(search,
					func(u model.User) string { return u.Name },
					func(u model.User) string { return u.Email },
				),
			)

			rows := make([][]string, len(filtered))
			for i, u := range filtered {
				rows[i] = []string{u.ID, u.Name, u.Email, u.Role.Code, activeLabel(u.IsActive)}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name or email filter")
	cmd.Flags().BoolVar(&cashiersOnly, "cashiers", false, "only cashier accounts")

	return cmd
}

func usersRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List assignable user roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			roles, err := env.client.UserRoles(cmd.Context())
			if err != nil {
				return requestFailed("list user roles", err)
			}

			rows := make([][]string, len(roles))
			for i, r := range roles {
				rows[i] = []string{r.ID, r.Name, r.Code}
			}

			fmt.Print(cli.RenderTable([]string{"ID", "NAME", "CODE"}, rows))
			return nil
		},
	}
}

func usersCreateCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		roleID   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			user := model.UserRegister{
				Name:     name,
				Email:    email,
				Password: password,
				RoleID:   roleID,
			}

			if err := env.client.CreateUser(cmd.Context(), user); err != nil {
				return requestFailed("create user", err)
			}

			fmt.Println(cli.FormatSuccess("Created user " + email))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&roleID, "role", "", "role id (see 'crepe users roles')")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func usersUpdateCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		roleID   string
		active   bool
	)

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user account",
		Long:  `Only the provided flags are sent; omitted fields keep their values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			update := model.UserUpdate{
				Name:     name,
				Email:    email,
				Password: password,
				RoleID:   roleID,
			}
			if cmd.Flags().Changed("active") {
				update.IsActive = &active
			}

			if err := env.client.UpdateUser(cmd.Context(), args[0], update); err != nil {
				return requestFailed("update user", err)
			}

			fmt.Println(cli.FormatSuccess("Updated user " + args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&roleID, "role", "", "role id")
	cmd.Flags().BoolVar(&active, "active", true, "enable or disable the account")

	return cmd
}

func usersDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			if !force {
				ok, err := cli.Confirm(cmd.Context(), os.Stdin, os.Stdout, "Delete user "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("Aborted"))
					return nil
				}
			}

			if err := env.client.DeleteUser(cmd.Context(), args[0]); err != nil {
				return requestFailed("delete user", err)
			}

			fmt.Println(cli.FormatSuccess("Deleted user " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
