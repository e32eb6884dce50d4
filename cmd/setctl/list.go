package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-study/internal/domain"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON    bool
		asYAML    bool
		filterTag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued flashcard sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.manager().ReadCatalog()
			if err != nil {
				return fmt.Errorf("error reading catalog: %w", err)
			}

			sets := make([]domain.SetDescriptor, 0, len(c.FlashcardSets))
			for _, set := range c.FlashcardSets {
				if filterTag != "" && !set.HasTag(filterTag) {
					continue
				}
				sets = append(sets, set)
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sets)
			case asYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(sets); err != nil {
					return err
				}
				return enc.Close()
			}

			if len(sets) == 0 {
				fmt.Fprintln(out, "No flashcard sets found.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tCARDS")
			for _, set := range sets {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
					set.ID, set.Title, set.Category, set.Difficulty, set.CardCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().StringVar(&filterTag, "tag", "", "Only list sets carrying this tag")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}
