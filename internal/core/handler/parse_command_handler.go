package handler

import (
	"fmt"
	"strings"

	"smalipatch/internal/cli/output"
	"smalipatch/internal/core"
	"smalipatch/internal/core/domain"
	"smalipatch/internal/ports"

	"gopkg.in/yaml.v3"
)

type parsedPatchFile struct {
	Credits  []string       `yaml:"credits,omitempty"`
	Patches  []domain.Patch `yaml:"patches"`
	Warnings []string       `yaml:"warnings,omitempty"`
}

// ParseCommandHandler prints the directive tree of a patch file without
// touching any work directory.
type ParseCommandHandler struct {
	fileSystem ports.FileSystem
}

func ProvideParseCommandHandler(fileSystem ports.FileSystem) ParseCommandHandler {
	return ParseCommandHandler{
		fileSystem: fileSystem,
	}
}

func (h *ParseCommandHandler) Handle(patchFile string) error {
	exists, err := h.fileSystem.FileExists(patchFile)
	if err != nil {
		return FailureError("failed to check patch file: %v", err)
	}
	if !exists {
		return UsageError("patch file %s does not exist", patchFile)
	}

	data, err := h.fileSystem.ReadFile(patchFile)
	if err != nil {
		return FailureError("failed to read patch file: %v", err)
	}

	parsed := core.Parse(string(data))
	doc := parsedPatchFile{
		Credits: parsed.Credits,
		Patches: parsed.Patches,
	}
	for _, warning := range parsed.Warnings {
		doc.Warnings = append(doc.Warnings, warning.String())
	}
	if doc.Patches == nil {
		doc.Patches = []domain.Patch{}
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return FailureError("failed to encode patch tree: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return FailureError("failed to encode patch tree: %v", err)
	}
	fmt.Fprint(output.Stdout, buf.String())

	if len(parsed.Patches) == 0 {
		return FailureError("no patches found in %s", patchFile)
	}
	return nil
}
