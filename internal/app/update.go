package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
	"github.com/blackwell-systems/buchctl/internal/query"
)

func newUpdateCmd() *cobra.Command {
	var (
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
		Use:   "update <id>",
		Short: "Modify a catalog record",
		Long: `Modify a catalog record.

The current record is fetched first and only the flags you set are
changed; its version number rides along so a concurrent edit is
rejected by the service instead of silently overwritten.

Examples:
  buchctl update 123 --price 19.90
  buchctl update 123 --rating 5 --available`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := requireLogin(guard.RouteDetail(id)); err != nil {
				return err
			}

			if cmd.Flags().Changed("rating") && (rating < 1 || rating > 5) {
				return fmt.Errorf("--rating must be between 1 and 5")
			}
			if cmd.Flags().Changed("kind") && !validKind(kind) {
				return fmt.Errorf("--kind must be one of %s", strings.Join(query.Kinds, ", "))
			}

			cur, err := client.Get(cmd.Context(), id)
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("book %s not found", id)
			}
			if err != nil {
				return err
			}

			input := api.BookUpdate{
				ID:        cur.ID,
				Version:   cur.Version,
				ISBN:      cur.ISBN,
				Rating:    cur.Rating,
				Kind:      cur.Kind,
				Price:     cur.Price,
				Available: cur.Available,
				Date:      cur.Date,
				Homepage:  cur.Homepage,
				Keywords:  cur.Keywords,
			}
			changed := false
			if cmd.Flags().Changed("isbn") {
				input.ISBN = strings.TrimSpace(isbn)
				changed = true
			}
			if cmd.Flags().Changed("rating") {
				input.Rating = &rating
				changed = true
			}
			if cmd.Flags().Changed("kind") {
				input.Kind = kind
				changed = true
			}
			if cmd.Flags().Changed("price") {
				if price < 0 {
					return fmt.Errorf("--price must not be negative")
				}
				input.Price = price
				changed = true
			}
			if cmd.Flags().Changed("discount") {
				input.Discount = discount
				changed = true
			}
			if cmd.Flags().Changed("available") {
				input.Available = available
				changed = true
			}
			if cmd.Flags().Changed("date") {
				input.Date = date
				changed = true
			}
			if cmd.Flags().Changed("homepage") {
				input.Homepage = homepage
				changed = true
			}
			if cmd.Flags().Changed("keyword") {
				input.Keywords = keywords
				changed = true
			}
			if !changed {
				warn("nothing to change; set at least one field flag")
				return nil
			}

			version, err := client.Update(cmd.Context(), input)
			if err != nil {
				return err
			}
			ok("Updated book %s (version %d)", id, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "New ISBN")
	cmd.Flags().IntVar(&rating, "rating", 0, "New rating (1-5)")
	cmd.Flags().StringVar(&kind, "kind", "", "New kind (EPUB, HARDCOVER, PAPERBACK)")
	cmd.Flags().Float64Var(&price, "price", 0, "New price")
	cmd.Flags().Float64Var(&discount, "discount", 0, "New discount (0-1)")
	cmd.Flags().BoolVar(&available, "available", false, "Deliverable yes/no")
	cmd.Flags().StringVar(&date, "date", "", "New publication date")
	cmd.Flags().StringVar(&homepage, "homepage", "", "New homepage URL")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "Replacement keyword set (repeatable)")

	return cmd
}
