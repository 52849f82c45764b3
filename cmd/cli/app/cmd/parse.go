package cmd

import (
	"smalipatch/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:               "parse <patch_file>",
	Short:             "Prints the parsed directives of a patch file",
	Long:              `Parses the patch file and prints its directive tree as YAML, followed by any lines that were skipped. No files are modified.`,
	Args:              exactArgs(1),
	ValidArgsFunction: patchFileCompletion(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectParseCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(args[0])
	},
}
