package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crepepos/backoffice/internal/cli"
)

func loginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the POS backend",
		Long: `Log in with a manager account. Only admin and superadmin roles can use
the back office; cashier accounts are rejected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			if password == "" {
				fmt.Print(cli.FormatPrompt("Password"))
				line, readErr := bufio.NewReader(os.Stdin).ReadString('\n')
				if readErr != nil {
					return fmt.Errorf("failed to read password: %w", readErr)
				}
				password = strings.TrimSpace(line)
			}

			identity, err := env.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", identity.Name, identity.Role.Code)))

			// With a single accessible branch there is nothing to choose.
			branches, err := env.branches.Accessible(cmd.Context(), identity)
			if err != nil {
				return err
			}
			if len(branches) == 1 {
				if err := env.branches.Select(cmd.Context(), branches[0]); err != nil {
					return err
				}
				fmt.Println(cli.FormatInfo("Selected branch " + branches[0].Name))
				return nil
			}

			fmt.Println(cli.FormatInfo(fmt.Sprintf("%d branches available; run 'crepe branch select' to pick one", len(branches))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.session.Logout(); err != nil {
				return err
			}
			if err := env.branches.Clear(); err != nil {
				return err
			}
			if err := env.cache.InvalidateAll(cmd.Context()); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and active branch",
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := requireSession()
			if err != nil {
				return err
			}
			defer env.Close()

			lines := []string{
				fmt.Sprintf("Name:   %s", env.identity.Name),
				fmt.Sprintf("Email:  %s", env.identity.Email),
				fmt.Sprintf("Role:   %s", env.identity.Role.Code),
			}

			if active, err := env.branches.Active(); err == nil {
				lines = append(lines, fmt.Sprintf("Branch: %s", active.Name))
			} else {
				lines = append(lines, "Branch: (none selected)")
			}

			fmt.Println(cli.RenderBox("Session", strings.Join(lines, "\n")))
			return nil
		},
	}
}
