package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/loader"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <json_file>",
		Short: "Check that a file is a valid flashcard-set document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading %s: %w", args[0], err)
			}
			doc, err := loader.ParseDocument(data)
			if err != nil {
				return fmt.Errorf("%s is not a valid flashcard set: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d valid flashcards\n", args[0], len(doc.Flashcards))
			return nil
		},
	}
}
