package cmd

import (
	"smalipatch/internal/core/handler"

	"github.com/spf13/cobra"
)

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return handler.UsageError("%v\n\nUsage: %s", err, cmd.UseLine())
		}
		return nil
	}
}

// patchFileCompletion suggests .smalipatch files for the patch file argument
// and directories for the work directory.
func patchFileCompletion(patchFileArg int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		switch {
		case len(args) == patchFileArg:
			return []cobra.Completion{"smalipatch"}, cobra.ShellCompDirectiveFilterFileExt
		case len(args) < patchFileArg:
			return nil, cobra.ShellCompDirectiveFilterDirs
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
}

// changedBool returns the flag value when it was given on the command line, else nil.
func changedBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func changedString(cmd *cobra.Command, name string, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
