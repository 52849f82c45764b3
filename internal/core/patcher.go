package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"smalipatch/internal/core/domain"
	"smalipatch/internal/ports"
)

type ApplyOptions struct {
	// Root is the work directory every patch path is relative to.
	Root          string
	DryRun        bool
	StopOnFailure bool
	Normalizer    Normalizer
	// Extensions selects the files a global FIND_REPLACE visits.
	Extensions []string
}

// Observer is told about each patch as the run progresses.
type Observer interface {
	PatchStarted(index, total int, patch domain.Patch)
	PatchFinished(result domain.Result)
}

// Patcher applies parsed patches to a work directory, one after the other.
type Patcher struct {
	fileSystem ports.FileSystem
	logger     ports.Logger
}

func ProvidePatcher(fileSystem ports.FileSystem, logger ports.Logger) *Patcher {
	return &Patcher{
		fileSystem: fileSystem,
		logger:     logger,
	}
}

// Run applies patches in order. Under DryRun nothing is written to disk, but
// every result carries the content a real run would have produced.
func (p *Patcher) Run(patches []domain.Patch, opts ApplyOptions, observer Observer) domain.Summary {
	fileSystem := p.fileSystem
	if opts.DryRun {
		fileSystem = newDryRunFileSystem(p.fileSystem)
	}

	summary := domain.Summary{DryRun: opts.DryRun}
	for i, patch := range patches {
		if observer != nil {
			observer.PatchStarted(i, len(patches), patch)
		}

		result := p.apply(fileSystem, i, patch, opts)
		p.logResult(result)
		summary.Add(result)

		if observer != nil {
			observer.PatchFinished(result)
		}
		if result.Outcome.IsFailure() && opts.StopOnFailure {
			summary.Stopped = i < len(patches)-1
			break
		}
	}
	return summary
}

func (p *Patcher) apply(fileSystem ports.FileSystem, index int, patch domain.Patch, opts ApplyOptions) domain.Result {
	result := domain.Result{
		Index:    index,
		Kind:     patch.Kind,
		FilePath: patch.FilePath,
	}

	switch patch.Kind {
	case domain.PatchFileEdit:
		return p.editFile(fileSystem, result, patch, opts)
	case domain.PatchCreateFile:
		return p.createFile(fileSystem, result, patch, opts)
	case domain.PatchRemoveFile:
		return p.removeFile(fileSystem, result, patch, opts)
	case domain.PatchGlobalFindReplace:
		return p.findReplaceAll(fileSystem, result, patch, opts)
	default:
		return failed(result, domain.OutcomeFailed, fmt.Errorf("unknown directive %s", patch.Kind))
	}
}

func (p *Patcher) editFile(fileSystem ports.FileSystem, result domain.Result, patch domain.Patch, opts ApplyOptions) domain.Result {
	path, err := resolvePath(opts.Root, patch.FilePath)
	if err != nil {
		return failed(result, domain.OutcomeFailed, err)
	}

	original, err := readExisting(fileSystem, path)
	if err != nil {
		return failed(result, domain.OutcomeFailed, err)
	}

	applier := NewHunkApplier(opts.Normalizer)
	buf := original
	for i, action := range patch.Actions {
		next, report, err := applier.Apply(buf, action)
		if err != nil {
			return failed(result, domain.OutcomeHunkFailed, &ActionError{
				Index:  i,
				Kind:   action.Kind,
				Target: action.Target(),
				Err:    err,
			})
		}
		p.logger.Debug("action",
			"patch", result.Index+1,
			"file", patch.FilePath,
			"action", i+1,
			"kind", action.Kind,
			"changed", report.Changed,
			"note", report.Note,
		)
		result.TotalOccurrences += report.Occurrences
		buf = next
	}

	result.Before = original.Lines()
	result.After = buf.Lines()
	if buf.Equal(original) {
		result.Outcome = domain.OutcomeSkipped
		result.Message = "already applied"
		return result
	}
	if buf.Len() == 0 && original.Len() > 0 {
		return failed(result, domain.OutcomeFailed, ErrWouldEraseFile)
	}

	if err := fileSystem.WriteFile(path, []byte(buf.Text()), ports.ReadAllWriteOwner); err != nil {
		return failed(result, domain.OutcomeFailed, ioError("write", patch.FilePath, err))
	}
	result.Outcome = domain.OutcomeApplied
	result.Message = fmt.Sprintf("%d %s applied", len(patch.Actions), plural(len(patch.Actions), "action", "actions"))
	return result
}

func (p *Patcher) createFile(fileSystem ports.FileSystem, result domain.Result, patch domain.Patch, opts ApplyOptions) domain.Result {
	path, err := resolvePath(opts.Root, patch.FilePath)
	if err != nil {
		return failed(result, domain.OutcomeFailed, err)
	}

	exists, err := fileSystem.FileExists(path)
	if err != nil {
		return failed(result, domain.OutcomeFailed, ioError("stat", patch.FilePath, err))
	}
	if exists {
		result.Outcome = domain.OutcomeSkipped
		result.Message = ErrAlreadyExists.Error()
		return result
	}

	content := NewLineBuffer(patch.Content)
	if err := fileSystem.WriteFile(path, []byte(content.Text()), ports.ReadAllWriteOwner); err != nil {
		return failed(result, domain.OutcomeFailed, ioError("write", patch.FilePath, err))
	}
	result.Before = []string{}
	result.After = content.Lines()
	result.Outcome = domain.OutcomeCreated
	result.Message = fmt.Sprintf("%d %s written", content.Len(), plural(content.Len(), "line", "lines"))
	return result
}

func (p *Patcher) removeFile(fileSystem ports.FileSystem, result domain.Result, patch domain.Patch, opts ApplyOptions) domain.Result {
	path, err := resolvePath(opts.Root, patch.FilePath)
	if err != nil {
		return failed(result, domain.OutcomeFailed, err)
	}

	original, err := readExisting(fileSystem, path)
	if errors.Is(err, ErrNotFound) {
		result.Outcome = domain.OutcomeSkipped
		result.Message = ErrNotFound.Error()
		return result
	}
	if err != nil {
		return failed(result, domain.OutcomeFailed, err)
	}

	if err := fileSystem.RemoveFile(path); err != nil {
		return failed(result, domain.OutcomeFailed, ioError("remove", patch.FilePath, err))
	}
	result.Before = original.Lines()
	result.After = []string{}
	result.Outcome = domain.OutcomeApplied
	result.Message = "removed"
	return result
}

func (p *Patcher) findReplaceAll(fileSystem ports.FileSystem, result domain.Result, patch domain.Patch, opts ApplyOptions) domain.Result {
	files, err := fileSystem.ListFiles(opts.Root, opts.Extensions)
	if err != nil {
		return failed(result, domain.OutcomeFailed, ioError("list", opts.Root, err))
	}

	type rewrite struct {
		rel, path string
		before    []byte
		after     string
		count     int
	}
	var rewrites []rewrite
	for _, rel := range files {
		path := filepath.Join(opts.Root, filepath.FromSlash(rel))
		data, err := fileSystem.ReadFile(path)
		if err != nil {
			return failed(result, domain.OutcomeFailed, ioError("read", rel, err))
		}

		text, count := ReplaceAll(string(data), patch.Find, patch.Replace)
		if count == 0 {
			continue
		}
		if ParseLineBuffer(text).Len() == 0 && ParseLineBuffer(string(data)).Len() > 0 {
			return failed(result, domain.OutcomeFailed, fmt.Errorf("%s: %w", rel, ErrWouldEraseFile))
		}
		rewrites = append(rewrites, rewrite{rel: rel, path: path, before: data, after: text, count: count})
	}

	for i, r := range rewrites {
		if err := fileSystem.WriteFile(r.path, []byte(r.after), ports.ReadAllWriteOwner); err != nil {
			for _, written := range rewrites[:i] {
				if restoreErr := fileSystem.WriteFile(written.path, written.before, ports.ReadAllWriteOwner); restoreErr != nil {
					p.logger.Error("failed to restore file", "file", written.rel, "error", restoreErr)
				}
			}
			return failed(result, domain.OutcomeFailed, ioError("write", r.rel, err))
		}
	}

	for _, r := range rewrites {
		p.logger.Debug("replaced", "patch", result.Index+1, "file", r.rel, "occurrences", r.count)
		result.Replacements = append(result.Replacements, domain.FileReplacements{FilePath: r.rel, Occurrences: r.count})
		result.FilesChanged++
		result.TotalOccurrences += r.count
	}

	if result.FilesChanged == 0 {
		result.Outcome = domain.OutcomeSkipped
		result.Message = fmt.Sprintf("no occurrences in %d %s", len(files), plural(len(files), "file", "files"))
		return result
	}
	result.Outcome = domain.OutcomeApplied
	result.Message = fmt.Sprintf("%d %s in %d %s",
		result.TotalOccurrences, plural(result.TotalOccurrences, "occurrence", "occurrences"),
		result.FilesChanged, plural(result.FilesChanged, "file", "files"))
	return result
}

func (p *Patcher) logResult(result domain.Result) {
	keysAndValues := []any{
		"patch", result.Index + 1,
		"kind", result.Kind,
		"outcome", result.Outcome,
	}
	if result.FilePath != "" {
		keysAndValues = append(keysAndValues, "file", result.FilePath)
	}
	if result.Err != nil {
		keysAndValues = append(keysAndValues, "error", result.Err)
	} else if result.Message != "" {
		keysAndValues = append(keysAndValues, "message", result.Message)
	}
	p.logger.Info("patch finished", keysAndValues...)
}

func readExisting(fileSystem ports.FileSystem, path string) (LineBuffer, error) {
	exists, err := fileSystem.FileExists(path)
	if err != nil {
		return LineBuffer{}, ioError("stat", path, err)
	}
	if !exists {
		return LineBuffer{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	data, err := fileSystem.ReadFile(path)
	if err != nil {
		return LineBuffer{}, ioError("read", path, err)
	}
	return ParseLineBuffer(string(data)), nil
}

// resolvePath joins a patch path onto root, refusing paths that would escape it.
func resolvePath(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) {
		return "", fmt.Errorf("%w: %q must be relative to the work directory", ErrInvalidPath, rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q leaves the work directory", ErrInvalidPath, rel)
	}
	return filepath.Join(root, clean), nil
}

func failed(result domain.Result, outcome domain.Outcome, err error) domain.Result {
	result.Outcome = outcome
	result.Err = err
	result.Message = err.Error()
	return result
}

func plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
