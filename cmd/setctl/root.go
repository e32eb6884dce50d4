package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/catalog"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dir     string
	verbose bool
	logger  *slog.Logger
}

func (o *rootOptions) manager() *catalog.Manager {
	return catalog.NewManager(o.dir, "", o.logger)
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "setctl",
		Short: "Manage flashcard sets and their catalog",
		Long: `setctl maintains sets-metadata.json, the catalog a study server reads to
list available flashcard sets.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(opts.logger)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "flashcard-data", "Data directory holding set documents")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newCategoriesCmd(),
		newValidateCmd(),
		newDiscoverCmd(opts),
	)
	return cmd
}
