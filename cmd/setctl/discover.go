package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDiscoverCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List JSON documents in the data directory that are not catalogued",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := opts.manager().Discover(cmd.Context())
			if err != nil {
				return fmt.Errorf("error scanning %s: %w", opts.dir, err)
			}
			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintln(out, "All documents are catalogued.")
				return nil
			}
			for _, f := range found {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
}
