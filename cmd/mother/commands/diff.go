package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDiffCommand creates the diff command. It is a documented placeholder:
// cross-commit semantic diff is a non-goal of the core pipeline, but the
// subcommand is reserved so a future diff presentation layer has a home.
func NewDiffCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:           "diff",
		Short:         "Compare the graph across two commits (not yet implemented)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "diff --from %s --to %s: not yet implemented\n", from, to)

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source commit ref")
	cmd.Flags().StringVar(&to, "to", "", "target commit ref")

	return cmd
}
