package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/pathstamp/internal/config"
)

const (
	defaultsUse              = "defaults"
	defaultsShortDescription = "print the built-in ignore, comment, and remark tables"
)

// createDefaultsCommand returns the defaults subcommand.
func createDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   defaultsUse,
		Short: defaultsShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			described, describeError := config.DescribeDefaults()
			if describeError != nil {
				return describeError
			}
			_, writeError := command.OutOrStdout().Write(described)
			return writeError
		},
	}
}
