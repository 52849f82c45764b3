package handler

import (
	"fmt"
	"path/filepath"
	"strings"

	"smalipatch/internal/cli/output"
	"smalipatch/internal/cli/progress"
	"smalipatch/internal/core"
	"smalipatch/internal/core/domain"
	"smalipatch/internal/ports"

	"gopkg.in/yaml.v3"
)

const patchFileExtension = ".smalipatch"

// ApplyRequest carries the apply arguments. Pointer fields are nil when the
// flag was not given, so the config file value stays in effect.
type ApplyRequest struct {
	WorkDir    string
	PatchFile  string
	DryRun     bool
	Verbose    bool
	Quiet      bool
	ReportPath string
	SkipFailed *bool
	NonStrict  *bool
	DiffMode   *string
}

type ApplyCommandHandler struct {
	configRepository core.ConfigRepository
	patcher          *core.Patcher
	fileSystem       ports.FileSystem
	logger           ports.Logger
}

func ProvideApplyCommandHandler(
	configRepository core.ConfigRepository,
	patcher *core.Patcher,
	fileSystem ports.FileSystem,
	logger ports.Logger,
) ApplyCommandHandler {
	return ApplyCommandHandler{
		configRepository: configRepository,
		patcher:          patcher,
		fileSystem:       fileSystem,
		logger:           logger,
	}
}

func (h *ApplyCommandHandler) Handle(req ApplyRequest) error {
	if req.Verbose && req.Quiet {
		return UsageError("--verbose and --quiet cannot be combined")
	}
	if err := h.validatePaths(req); err != nil {
		return err
	}

	config, err := h.effectiveConfig(req)
	if err != nil {
		return err
	}
	h.configureLogging(req, config)
	defer func() { _ = h.logger.Close() }()

	if filepath.Ext(req.PatchFile) != patchFileExtension {
		output.PrintWarning(fmt.Sprintf("%s does not have the %s extension", req.PatchFile, patchFileExtension))
	}

	data, err := h.fileSystem.ReadFile(req.PatchFile)
	if err != nil {
		return FailureError("failed to read patch file: %v", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return FailureError("patch file %s is empty", req.PatchFile)
	}

	parsed := core.Parse(string(data))
	for _, warning := range parsed.Warnings {
		h.logger.Warn("skipped patch file line", "line", warning.Line, "reason", warning.Reason, "text", warning.Text)
		if !req.Quiet {
			output.PrintWarning(warning.String())
		}
	}

	if len(parsed.Patches) == 0 {
		if len(parsed.Credits) > 0 {
			if !req.Quiet {
				printCredits(parsed.Credits)
				output.PrintInfo("No patches to apply")
			}
			return nil
		}
		return FailureError("no patches found in %s", req.PatchFile)
	}

	if !req.Quiet {
		printBanner(req, len(parsed.Patches))
		printCredits(parsed.Credits)
	}

	var observer core.Observer
	if !req.Quiet {
		observer = progress.NewTracker(output.Stdout)
	}
	summary := h.patcher.Run(parsed.Patches, core.ApplyOptions{
		Root:          req.WorkDir,
		DryRun:        req.DryRun,
		StopOnFailure: !config.SkipFailed,
		Normalizer: core.Normalizer{
			SkipDebugDirectives: config.IgnoreDebugInfo,
			NonStrict:           config.NonStrict,
		},
		Extensions: config.Extensions,
	}, observer)

	if !req.Quiet {
		h.printChanges(summary, config.Diff)
	}
	printFailures(summary, parsed.Patches)
	if !req.Quiet {
		printSummary(summary, len(parsed.Patches))
	}

	if req.ReportPath != "" {
		if err := h.writeReport(req.ReportPath, summary); err != nil {
			return err
		}
	}

	if !summary.Succeeded() {
		return FailureError("%d of %d %s failed", summary.Failed, len(parsed.Patches),
			output.Plural(len(parsed.Patches), "patch", "patches"))
	}
	return nil
}

func (h *ApplyCommandHandler) validatePaths(req ApplyRequest) error {
	dirExists, err := h.fileSystem.DirExists(req.WorkDir)
	if err != nil {
		return FailureError("failed to check work directory: %v", err)
	}
	if !dirExists {
		return UsageError("work directory %s does not exist", req.WorkDir)
	}

	fileExists, err := h.fileSystem.FileExists(req.PatchFile)
	if err != nil {
		return FailureError("failed to check patch file: %v", err)
	}
	if !fileExists {
		return UsageError("patch file %s does not exist", req.PatchFile)
	}
	return nil
}

// effectiveConfig returns the stored config with explicitly given flags applied on top.
func (h *ApplyCommandHandler) effectiveConfig(req ApplyRequest) (domain.Config, error) {
	stored, err := h.configRepository.LoadConfig()
	if err != nil {
		return domain.Config{}, UsageError("%v", err)
	}

	config := *stored
	if req.SkipFailed != nil {
		config.SkipFailed = *req.SkipFailed
	}
	if req.NonStrict != nil {
		config.NonStrict = *req.NonStrict
	}
	if req.DiffMode != nil {
		config.Diff.Mode = *req.DiffMode
	}
	if err := config.Validate(); err != nil {
		return domain.Config{}, UsageError("%v", err)
	}
	return config, nil
}

// configureLogging keeps the console quiet below warnings unless asked,
// since progress and results are already printed there.
func (h *ApplyCommandHandler) configureLogging(req ApplyRequest, config domain.Config) {
	switch {
	case req.Verbose:
		h.logger.SetLevel(ports.LogLevelDebug)
	case req.Quiet:
		h.logger.SetLevel(ports.LogLevelError)
	default:
		h.logger.SetLevel(ports.LogLevelWarn)
	}

	if config.LogFile != "" {
		if err := h.logger.AddFileOutput(config.LogFile); err != nil {
			h.logger.Warn("log file disabled", "path", config.LogFile, "error", err)
		}
	}
	h.logger.Debug("configuration",
		"skipFailed", config.SkipFailed,
		"nonStrict", config.NonStrict,
		"ignoreDebugInfo", config.IgnoreDebugInfo,
		"extensions", config.Extensions,
		"diff", config.Diff.Mode,
	)
}

func (h *ApplyCommandHandler) printChanges(summary domain.Summary, diff domain.DiffConfig) {
	if diff.Mode == domain.DiffModeNone {
		return
	}

	printed := false
	for _, result := range summary.Results {
		if result.Outcome != domain.OutcomeApplied && result.Outcome != domain.OutcomeCreated {
			continue
		}
		if !printed {
			output.PrintLine("")
			output.PrintHeader("Changes")
			printed = true
		}

		if result.Kind == domain.PatchGlobalFindReplace {
			for _, r := range result.Replacements {
				output.PrintSecondary(fmt.Sprintf("%s: %d %s", r.FilePath, r.Occurrences,
					output.Plural(r.Occurrences, "occurrence", "occurrences")))
			}
			continue
		}

		if diff.Mode == domain.DiffModeSummary {
			added, removed := core.DiffStat(result.Before, result.After)
			output.PrintDiffStat(result.FilePath, added, removed)
			continue
		}
		text, err := core.UnifiedDiff(result.FilePath, result.Before, result.After, diff.Context)
		if err != nil {
			h.logger.Warn("diff unavailable", "file", result.FilePath, "error", err)
			continue
		}
		output.PrintDiff(text)
	}
}

func (h *ApplyCommandHandler) writeReport(path string, summary domain.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return FailureError("failed to marshal report: %v", err)
	}
	if err := h.fileSystem.WriteFile(path, data, ports.ReadWrite); err != nil {
		return FailureError("failed to write report: %v", err)
	}
	h.logger.Debug("report written", "path", path)
	return nil
}

func printBanner(req ApplyRequest, patches int) {
	output.PrintHeader(fmt.Sprintf("Applying %d %s from %s to %s",
		patches, output.Plural(patches, "patch", "patches"), req.PatchFile, req.WorkDir))
	if req.DryRun {
		output.PrintInfo("Dry run, no files will be written")
	}
}

func printCredits(credits []string) {
	if len(credits) == 0 {
		return
	}
	output.PrintLine(output.Bold("Credits"))
	for _, credit := range credits {
		output.PrintLine(fmt.Sprintf("  %s %s", output.SymbolBullet, credit))
	}
	output.PrintLine("")
}

func printFailures(summary domain.Summary, patches []domain.Patch) {
	for _, result := range summary.Results {
		if !result.Outcome.IsFailure() {
			continue
		}
		output.PrintError(fmt.Sprintf("%s (line %d): %v",
			patches[result.Index].Describe(), patches[result.Index].Line, result.Err))
	}
}

func printSummary(summary domain.Summary, total int) {
	output.PrintLine("")
	line := fmt.Sprintf("Applied: %d, Created: %d, Skipped: %d, Failed: %d",
		summary.Applied, summary.Created, summary.Skipped, summary.Failed)
	if summary.DryRun {
		line += " (dry run)"
	}
	if summary.Succeeded() {
		output.PrintSuccess(line)
	} else {
		output.PrintError(line)
	}

	if summary.Stopped {
		remaining := total - len(summary.Results)
		output.PrintWarning(fmt.Sprintf("Stopped at the first failure, %d %s not attempted (use --skip-failed to continue past failures)",
			remaining, output.Plural(remaining, "patch", "patches")))
	}
}
