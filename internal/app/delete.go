package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a catalog record",
		Long: `Remove a catalog record.

Asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := requireLogin(guard.RouteDetail(id)); err != nil {
				return err
			}

			if !yes {
				var confirm bool
				err := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete book %s?", id)).
						Value(&confirm),
				)).Run()
				if err != nil {
					return err
				}
				if !confirm {
					fmt.Println("Aborted.")
					return nil
				}
			}

			err := client.Delete(cmd.Context(), id)
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("book %s not found", id)
			}
			if err != nil {
				return err
			}
			ok("Deleted book %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
