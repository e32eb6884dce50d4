package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/catalog"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <json_file> [title] [description] [category] [difficulty]",
		Short: "Copy a set document into the data directory and catalog it",
		Long: `Validates the document, copies it into the data directory and inserts or
replaces its catalog entry. Omitted fields are derived from the file name
or take the defaults (category Other, difficulty Intermediate).`,
		Args: cobra.RangeArgs(1, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := catalog.AddRequest{Path: args[0]}
			fields := []*string{&req.Title, &req.Description, &req.Category, &req.Difficulty}
			for i, arg := range args[1:] {
				*fields[i] = arg
			}

			d, updated, err := opts.manager().Add(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("error adding %s: %w", args[0], err)
			}

			verb := "Added"
			if updated {
				verb = "Updated"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s flashcard set: %s\n", verb, d.Title)
			fmt.Fprintf(out, "  ID: %s\n", d.ID)
			fmt.Fprintf(out, "  Cards: %d\n", d.CardCount)
			fmt.Fprintf(out, "  Category: %s\n", d.Category)
			fmt.Fprintf(out, "  Difficulty: %s\n", d.Difficulty)
			return nil
		},
	}
}
