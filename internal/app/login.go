package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the catalog service",
		Long: `Exchange a username and password for a credential pair.

The credentials are stored locally and attached to every following
request until you run 'buchctl logout'.

Examples:
  buchctl login
  buchctl login --username admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields []huh.Field
			if username == "" {
				fields = append(fields, huh.NewInput().
					Title("Username").
					Value(&username).
					Validate(required("username")))
			}
			if password == "" {
				fields = append(fields, huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(required("password")))
			}
			if len(fields) > 0 {
				if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
					return err
				}
			}

			if err := store.Login(cmd.Context(), username, password); err != nil {
				return err
			}

			cur := store.Current()
			ok("Logged in as %s", cur.Identity.Username)
			if len(cur.Identity.Roles) > 0 {
				fmt.Printf("Roles: %s\n", strings.Join(cur.Identity.Roles, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")

	return cmd
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}
