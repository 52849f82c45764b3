package domain

import "fmt"

type PatchKind string

const (
	PatchFileEdit          PatchKind = "FILE"
	PatchCreateFile        PatchKind = "CREATE"
	PatchRemoveFile        PatchKind = "REMOVE"
	PatchGlobalFindReplace PatchKind = "FIND_REPLACE"
)

type ActionKind string

const (
	ActionReplace      ActionKind = "REPLACE"
	ActionContextPatch ActionKind = "PATCH"
	ActionCreateMethod ActionKind = "CREATE_METHOD"
	ActionRemoveMethod ActionKind = "REMOVE_METHOD"
	ActionAddField     ActionKind = "ADD_FIELD"
	ActionRemoveField  ActionKind = "REMOVE_FIELD"
	ActionFindReplace  ActionKind = "FIND_REPLACE"
)

// RequiresSignature reports whether the action cannot be applied without a method or field signature.
func (k ActionKind) RequiresSignature() bool {
	switch k {
	case ActionReplace, ActionRemoveMethod, ActionRemoveField:
		return true
	default:
		return false
	}
}

type OpTag string

const (
	OpContext OpTag = "context"
	OpAdd     OpTag = "add"
	OpRemove  OpTag = "remove"
)

// Operation is a single line of a PATCH body.
type Operation struct {
	Tag  OpTag  `yaml:"tag"`
	Line string `yaml:"line"`
}

// Action is one edit inside a FILE block. Content holds raw body lines for
// REPLACE, CREATE_METHOD and ADD_FIELD; Operations holds the PATCH body.
type Action struct {
	Kind       ActionKind  `yaml:"kind"`
	Signature  string      `yaml:"signature,omitempty"`
	Content    []string    `yaml:"content,omitempty"`
	Operations []Operation `yaml:"operations,omitempty"`
	Find       string      `yaml:"find,omitempty"`
	Replace    string      `yaml:"replace,omitempty"`
	Line       int         `yaml:"line"`
}

// Target returns what the action looks for in the file, used in diagnostics.
func (a Action) Target() string {
	switch {
	case a.Kind == ActionFindReplace:
		return fmt.Sprintf("%q", a.Find)
	case a.Signature != "":
		return a.Signature
	case a.Kind == ActionContextPatch:
		return "context fingerprint"
	default:
		return "class body"
	}
}

// Patch is a single top-level directive of a patch file.
type Patch struct {
	Kind     PatchKind `yaml:"kind"`
	FilePath string    `yaml:"file,omitempty"`
	Actions  []Action  `yaml:"actions,omitempty"`
	Content  []string  `yaml:"content,omitempty"`
	Find     string    `yaml:"find,omitempty"`
	Replace  string    `yaml:"replace,omitempty"`
	Line     int       `yaml:"line"`
}

// Describe returns a short human readable label such as "PATCH: smali/a/B.smali (2 actions)".
func (p Patch) Describe() string {
	switch p.Kind {
	case PatchFileEdit:
		n := len(p.Actions)
		noun := "actions"
		if n == 1 {
			noun = "action"
		}
		return fmt.Sprintf("PATCH: %s (%d %s)", p.FilePath, n, noun)
	case PatchCreateFile:
		return fmt.Sprintf("CREATE: %s", p.FilePath)
	case PatchRemoveFile:
		return fmt.Sprintf("REMOVE: %s", p.FilePath)
	case PatchGlobalFindReplace:
		return fmt.Sprintf("FIND_REPLACE: %q -> %q", p.Find, p.Replace)
	default:
		return string(p.Kind)
	}
}
