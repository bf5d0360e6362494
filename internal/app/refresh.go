package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/guard"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Renew the stored credential pair",
		Long: `Exchange the stored refresh credential for a fresh pair.

Useful when the access credential has expired but the session itself is
still valid. Requires an active login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(guard.RouteSearch); err != nil {
				return err
			}
			if err := store.Refresh(cmd.Context()); err != nil {
				return err
			}
			ok("Credentials renewed")
			return nil
		},
	}
}
