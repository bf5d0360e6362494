package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and erase stored credentials",
		Long: `Clear the active session and remove the persisted credential file.

Logging out while already logged out is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wasAuthed := store.Authenticated()
			if err := store.Logout(); err != nil {
				return err
			}
			resultCache.Clear()
			if wasAuthed {
				ok("Logged out")
			} else {
				fmt.Println("Not logged in")
			}
			return nil
		},
	}
}
