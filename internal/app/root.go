package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/cache"
	"github.com/blackwell-systems/buchctl/internal/config"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/session"
	"github.com/blackwell-systems/buchctl/internal/tui"
	"github.com/blackwell-systems/buchctl/internal/util"
)

var (
	cfg         *config.Config
	store       *session.Store
	client      *api.Client
	resultCache *cache.Results
	routeGuard  *guard.Guard

	flagNoColor       bool
	flagNoInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "buchctl",
	Short: "Browse and manage a remote book catalog",
	Long: `buchctl is a terminal client for a book-catalog service.

Log in once, then search with any combination of filters, inspect single
records, and create or delete entries. Credentials are kept locally until
you log out.

Run 'buchctl' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if util.IsTTY() && !flagNoInteractive {
			return runBrowse()
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// The store is the client's token source and the client is the
		// store's credential exchanger; create the store first, then bind.
		store = session.Open(cfg.Session.File, nil)
		client = api.New(cfg.API.BaseURL, store, api.Options{
			Path:               cfg.API.Path,
			Timeout:            cfg.API.Timeout,
			InsecureSkipVerify: cfg.API.Insecure,
		})
		store.SetExchanger(client)
		resultCache = cache.NewResults()
		routeGuard = guard.New(store)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRefreshCmd(),
		newWhoamiCmd(),
		newSearchCmd(),
		newGetCmd(),
		newCreateCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newBrowseCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// requireLogin runs the route guard for a protected command. The CLI's
// version of "redirect to the login view" is an error with a hint.
func requireLogin(route guard.Route) error {
	if d := routeGuard.Check(route); !d.Allow {
		return fmt.Errorf("not logged in: run 'buchctl login' first")
	}
	return nil
}

// runBrowse launches the interactive browser.
func runBrowse() error {
	return tui.Run(tui.Deps{
		Session:    store,
		API:        client,
		Cache:      resultCache,
		Guard:      routeGuard,
		PageSize:   cfg.Search.PageSize,
		PageWindow: cfg.Search.PageWindow,
	})
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
