package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

// NewRootCommand wires the hbs command tree.
func NewRootCommand(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "hbs",
		Short:         "Render and precompile Handlebars templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPrecompileCommand(cfg))
	root.AddCommand(newCheckCommand(cfg))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the hbs version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hbs %s\n", Version)
		},
	})
	return root
}
