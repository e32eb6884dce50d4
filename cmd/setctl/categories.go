package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/catalog"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the suggested categories and difficulty levels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available categories:")
			for _, c := range catalog.DefaultCategories {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			fmt.Fprintf(out, "Difficulty levels: %s\n", strings.Join(catalog.Difficulties, ", "))
		},
	}
}
