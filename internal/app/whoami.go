package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur := store.Current()
			if !cur.Authenticated {
				fmt.Println("Not logged in")
				return nil
			}
			header("Session")
			fmt.Printf("  User:  %s\n", cur.Identity.Username)
			if len(cur.Identity.Roles) > 0 {
				fmt.Printf("  Roles: %s\n", strings.Join(cur.Identity.Roles, ", "))
			}
			if cur.RefreshToken == "" {
				warn("no refresh credential stored; re-login when the session expires")
			}
			return nil
		},
	}
}
