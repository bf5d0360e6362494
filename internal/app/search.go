package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/pager"
	"github.com/blackwell-systems/buchctl/internal/query"
)

func newSearchCmd() *cobra.Command {
	var (
		title     string
		isbn      string
		rating    int
		kind      string
		keywords  []string
		available bool
		page      int
		pageSize  int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		Long: `Search the catalog with any combination of filters.

Filters left unset are not sent at all; a search with no filters lists
the whole catalog. --available narrows to deliverable records only
(leaving it off does not filter on availability).

Examples:
  buchctl search
  buchctl search --title alpha --rating 4
  buchctl search --keyword typescript --keyword java --available
  buchctl search --page 2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(guard.RouteSearch); err != nil {
				return err
			}

			crit := query.Criteria{
				Title:    title,
				ISBN:     isbn,
				Rating:   rating,
				Kind:     kind,
				Keywords: keywords,
			}
			if cmd.Flags().Changed("available") {
				crit.Available = available
				crit.AvailableSet = true
			}

			books, err := client.Search(cmd.Context(), crit.Build())
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(books)
			}

			if len(books) == 0 {
				fmt.Println("No books found.")
				return nil
			}

			size := cfg.Search.PageSize
			if pageSize > 0 {
				size = pageSize
			}
			pg := pager.New(size)
			pg.Reset(len(books))
			if !pg.SetPage(page) {
				return fmt.Errorf("page %d out of range (1-%d)", page, pg.TotalPages())
			}

			header("Results (%d books)", len(books))
			for _, b := range pager.Slice(books, pg.Page(), pg.Size()) {
				printBookLine(b)
			}
			if pg.TotalPages() > 1 {
				fmt.Printf("\nPage %s of %d  %s\n",
					color.CyanString("%d", pg.Page()), pg.TotalPages(), windowLine(pg))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Filter by title substring")
	cmd.Flags().StringVar(&isbn, "isbn", "", "Filter by ISBN")
	cmd.Flags().IntVar(&rating, "rating", 0, "Filter by minimum rating (1-5)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (EPUB, HARDCOVER, PAPERBACK)")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "Filter by keyword (repeatable)")
	cmd.Flags().BoolVar(&available, "available", false, "Only deliverable records")
	cmd.Flags().IntVar(&page, "page", 1, "Result page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result set as JSON")

	return cmd
}

func printBookLine(b api.Book) {
	rating := "-"
	if b.Rating != nil {
		rating = strings.Repeat("★", *b.Rating)
	}
	avail := color.RedString("✗")
	if b.Available {
		avail = color.GreenString("✓")
	}
	fmt.Printf("  %s  %-30s %-10s %8.2f  %-5s %s\n",
		avail, truncate(b.Title.Main, 30), b.Kind, b.Price, rating, color.HiBlackString(b.ID))
}

func windowLine(pg *pager.Pager) string {
	var parts []string
	for _, n := range pg.Window(cfg.Search.PageWindow) {
		switch {
		case n == pager.Ellipsis:
			parts = append(parts, "…")
		case n == pg.Page():
			parts = append(parts, color.New(color.Bold, color.FgCyan).Sprintf("[%d]", n))
		default:
			parts = append(parts, fmt.Sprintf("%d", n))
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
