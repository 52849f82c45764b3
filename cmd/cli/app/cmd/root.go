package cmd

import (
	"errors"
	"os"
	"strings"

	"smalipatch/internal/cli/output"
	"smalipatch/internal/core/handler"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smalipatch",
	Short: "Applies declarative patches to decompiled smali sources",
	Long: `smalipatch applies .smalipatch files to a directory of smali sources, as
produced by apktool. Patches replace, add and remove methods and fields, edit
code by context and rewrite strings across the tree.

Defaults are read from ~/.smalipatch.yaml. Run 'smalipatch initialize' to
create the file.

Common workflows:
  smalipatch apply app/ unlock.smalipatch             Apply, stop at the first failure
  smalipatch apply --dry-run app/ unlock.smalipatch   Show the diff without writing
  smalipatch parse unlock.smalipatch                  Print the parsed directives`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	output.Configure()
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return handler.UsageError("%v", err)
	})

	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if isUnknownCommand(err) {
		err = handler.UsageError("%v", err)
	}
	output.PrintError(err.Error())
	os.Exit(handler.ExitCode(err))
}

func isUnknownCommand(err error) bool {
	var exitErr *handler.ExitError
	return !errors.As(err, &exitErr) && strings.HasPrefix(err.Error(), "unknown command")
}
