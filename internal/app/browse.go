package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/util"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive catalog browser",
		Long: `Launch the interactive catalog browser.

Opens on the search view when logged in and on the login view
otherwise; after logging in you land back where you were headed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !util.IsTTY() || flagNoInteractive {
				return fmt.Errorf("browse requires an interactive terminal")
			}
			return runBrowse()
		},
	}
}
