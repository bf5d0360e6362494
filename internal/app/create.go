package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/query"
)

func newCreateCmd() *cobra.Command {
	var (
		title     string
		subtitle  string
		isbn      string
		rating    int
		kind      string
		price     float64
		discount  float64
		available bool
		date      string
		homepage  string
		keywords  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a record to the catalog",
		Long: `Add a record to the catalog.

Input is validated locally before anything is sent: a payload the
service would reject never leaves the machine.

Examples:
  buchctl create --title "Alpha" --isbn 978-3-897-22583-1 --price 29.90
  buchctl create --title "Beta" --isbn 978-3-827-31552-6 --price 9.90 \
    --kind EPUB --rating 4 --available --keyword typescript`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(guard.RouteCreate); err != nil {
				return err
			}

			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title must not be empty")
			}
			if strings.TrimSpace(isbn) == "" {
				return fmt.Errorf("--isbn must not be empty")
			}
			if price < 0 {
				return fmt.Errorf("--price must not be negative")
			}
			if cmd.Flags().Changed("rating") && (rating < 1 || rating > 5) {
				return fmt.Errorf("--rating must be between 1 and 5")
			}
			if kind != "" && !validKind(kind) {
				return fmt.Errorf("--kind must be one of %s", strings.Join(query.Kinds, ", "))
			}

			input := api.BookInput{
				ISBN:      strings.TrimSpace(isbn),
				Kind:      kind,
				Price:     price,
				Discount:  discount,
				Available: available,
				Date:      date,
				Homepage:  homepage,
				Keywords:  keywords,
				Title: api.Title{
					Main:     strings.TrimSpace(title),
					Subtitle: strings.TrimSpace(subtitle),
				},
			}
			if cmd.Flags().Changed("rating") {
				input.Rating = &rating
			}

			id, err := client.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			ok("Created book %s", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Subtitle")
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN (required)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating (1-5)")
	cmd.Flags().StringVar(&kind, "kind", "", "Kind (EPUB, HARDCOVER, PAPERBACK)")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().Float64Var(&discount, "discount", 0, "Discount (0-1)")
	cmd.Flags().BoolVar(&available, "available", false, "Mark as deliverable")
	cmd.Flags().StringVar(&date, "date", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&homepage, "homepage", "", "Homepage URL")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "Keyword (repeatable)")

	return cmd
}

func validKind(kind string) bool {
	for _, k := range query.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}
