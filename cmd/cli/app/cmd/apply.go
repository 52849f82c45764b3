package cmd

import (
	"smalipatch/cmd/cli/app"
	"smalipatch/internal/core/handler"

	"github.com/spf13/cobra"
)

var (
	applySkipFailed bool
	applyDryRun     bool
	applyVerbose    bool
	applyQuiet      bool
	applyNonStrict  bool
	applyDiffMode   string
	applyReportPath string
)

func init() {
	applyCmd.Flags().BoolVar(&applySkipFailed, "skip-failed", false, "continue with the next patch when one fails")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "show what would change without writing any file")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "log every action")
	applyCmd.Flags().BoolVarP(&applyQuiet, "quiet", "q", false, "print errors only")
	applyCmd.Flags().BoolVar(&applyNonStrict, "non-strict", false, "match v/p registers by kind only")
	applyCmd.Flags().StringVar(&applyDiffMode, "diff", "full", "diff output: full, summary or none")
	applyCmd.Flags().StringVar(&applyReportPath, "report", "", "write a YAML report of the run to this file")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <work_dir> <patch_file>",
	Short: "Applies a patch file to a work directory",
	Long: `Applies every directive of the patch file in order. Paths inside the
patch file are relative to the work directory.

Exit status is 0 when every patch applied or was already applied, 1 when a
patch failed and 2 when the invocation is invalid.`,
	Args:              exactArgs(2),
	ValidArgsFunction: patchFileCompletion(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.InjectApplyCommandHandler()
		if err != nil {
			return err
		}

		return handler.Handle(applyRequest(cmd, args))
	},
}

func applyRequest(cmd *cobra.Command, args []string) handler.ApplyRequest {
	return handler.ApplyRequest{
		WorkDir:    args[0],
		PatchFile:  args[1],
		DryRun:     applyDryRun,
		Verbose:    applyVerbose,
		Quiet:      applyQuiet,
		ReportPath: applyReportPath,
		SkipFailed: changedBool(cmd, "skip-failed", applySkipFailed),
		NonStrict:  changedBool(cmd, "non-strict", applyNonStrict),
		DiffMode:   changedString(cmd, "diff", applyDiffMode),
	}
}
