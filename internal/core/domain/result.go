package domain

type Outcome string

const (
	OutcomeApplied    Outcome = "applied"
	OutcomeCreated    Outcome = "created"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomeHunkFailed Outcome = "hunk_failed"
)

func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed || o == OutcomeHunkFailed
}

// FileReplacements is the per-file occurrence count of a global find/replace.
type FileReplacements struct {
	FilePath    string `yaml:"file"`
	Occurrences int    `yaml:"occurrences"`
}

// Result is the outcome of applying one Patch. Before and After hold the
// file content the pipeline read and the content it wrote (or would have
// written under dry-run).
type Result struct {
	Index            int                `yaml:"index"`
	Kind             PatchKind          `yaml:"kind"`
	FilePath         string             `yaml:"file,omitempty"`
	Outcome          Outcome            `yaml:"outcome"`
	Message          string             `yaml:"message,omitempty"`
	Err              error              `yaml:"-"`
	Before           []string           `yaml:"-"`
	After            []string           `yaml:"-"`
	FilesChanged     int                `yaml:"filesChanged,omitempty"`
	TotalOccurrences int                `yaml:"totalOccurrences,omitempty"`
	Replacements     []FileReplacements `yaml:"replacements,omitempty"`
}

// Summary aggregates the results of a run in directive order.
type Summary struct {
	DryRun  bool     `yaml:"dryRun"`
	Stopped bool     `yaml:"stopped"`
	Applied int      `yaml:"applied"`
	Created int      `yaml:"created"`
	Skipped int      `yaml:"skipped"`
	Failed  int      `yaml:"failed"`
	Results []Result `yaml:"results"`
}

func (s *Summary) Add(result Result) {
	s.Results = append(s.Results, result)
	switch result.Outcome {
	case OutcomeApplied:
		s.Applied++
	case OutcomeCreated:
		s.Created++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed, OutcomeHunkFailed:
		s.Failed++
	}
}

func (s *Summary) Succeeded() bool {
	return s.Failed == 0
}
