package cmd

import (
	"smalipatch/cmd/cli/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initializeCmd)
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Writes a configuration file with the default settings",
	Long:  `A configuration file is written to ~/.smalipatch.yaml holding the default value of every setting. The file is not created if it already exists.`,
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectInitializeCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle()
	},
}
