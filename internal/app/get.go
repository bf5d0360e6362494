package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/buchctl/internal/api"
	"github.com/blackwell-systems/buchctl/internal/guard"
)

func newGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := requireLogin(guard.RouteDetail(id)); err != nil {
				return err
			}

			book, err := client.Get(cmd.Context(), id)
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("book %s not found", id)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(book)
			}
			printBook(book)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the record as JSON")

	return cmd
}

func printBook(b *api.Book) {
	header("%s", b.Title.Main)
	if b.Title.Subtitle != "" {
		fmt.Printf("  %s\n", color.HiBlackString(b.Title.Subtitle))
	}
	fmt.Println()
	fmt.Printf("  ID:        %s\n", b.ID)
	fmt.Printf("  Version:   %d\n", b.Version)
	fmt.Printf("  ISBN:      %s\n", b.ISBN)
	if b.Rating != nil {
		fmt.Printf("  Rating:    %s\n", strings.Repeat("★", *b.Rating))
	}
	fmt.Printf("  Kind:      %s\n", b.Kind)
	fmt.Printf("  Price:     %.2f\n", b.Price)
	if b.Discount != "" {
		fmt.Printf("  Discount:  %s\n", b.Discount)
	}
	if b.Available {
		fmt.Printf("  Available: %s\n", color.GreenString("yes"))
	} else {
		fmt.Printf("  Available: %s\n", color.RedString("no"))
	}
	if b.Date != "" {
		fmt.Printf("  Date:      %s\n", b.Date)
	}
	if b.Homepage != "" {
		fmt.Printf("  Homepage:  %s\n", b.Homepage)
	}
	if len(b.Keywords) > 0 {
		fmt.Printf("  Keywords:  %s\n", strings.Join(b.Keywords, ", "))
	}
}
