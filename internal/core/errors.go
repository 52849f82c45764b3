package core

import (
	"errors"
	"fmt"

	"smalipatch/internal/core/domain"
)

var (
	ErrAnchorNotFound      = errors.New("anchor not found")
	ErrContextNotFound     = errors.New("context not found")
	ErrUnexpectedEndOfFile = errors.New("unexpected end of file")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrIO                  = errors.New("i/o failure")
	ErrInvalidPath         = errors.New("invalid path")
	ErrWouldEraseFile      = errors.New("patch would leave the file empty")
)

// ActionError reports which action of a FILE block failed and what it was looking for.
type ActionError struct {
	Index  int
	Kind   domain.ActionKind
	Target string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %d (%s %s): %v", e.Index+1, e.Kind, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// ParseWarning describes a patch file line that was skipped.
type ParseWarning struct {
	Line   int
	Text   string
	Reason string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

func ioError(op string, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrIO, op, path, err)
}
