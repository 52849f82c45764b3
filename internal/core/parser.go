package core

import (
	"fmt"
	"strconv"
	"strings"

	"smalipatch/internal/core/domain"
)

const (
	keywordFile         = "FILE"
	keywordCreate       = "CREATE"
	keywordRemove       = "REMOVE"
	keywordCredit       = "CREDIT"
	keywordFindReplace  = "FIND_REPLACE"
	keywordEnd          = "END"
	keywordReplace      = "REPLACE"
	keywordPatch        = "PATCH"
	keywordCreateMethod = "CREATE_METHOD"
	keywordRemoveMethod = "REMOVE_METHOD"
	keywordAddField     = "ADD_FIELD"
	keywordRemoveField  = "REMOVE_FIELD"
)

var actionKeywords = map[string]domain.ActionKind{
	keywordReplace:      domain.ActionReplace,
	keywordPatch:        domain.ActionContextPatch,
	keywordCreateMethod: domain.ActionCreateMethod,
	keywordRemoveMethod: domain.ActionRemoveMethod,
	keywordAddField:     domain.ActionAddField,
	keywordRemoveField:  domain.ActionRemoveField,
}

// ParseResult is the directive tree of a patch file.
type ParseResult struct {
	Patches  []domain.Patch
	Credits  []string
	Warnings []ParseWarning
}

// Parse turns patch file text into directives. It never fails: lines it
// cannot use are skipped and reported as warnings.
func Parse(text string) *ParseResult {
	p := &parser{lines: splitLines(text), result: &ParseResult{}}
	p.parse()
	return p.result
}

type parser struct {
	lines  []string
	pos    int
	result *ParseResult
}

func (p *parser) parse() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		lineNumber := p.pos + 1
		keyword, rest := splitKeyword(line)

		switch keyword {
		case keywordFile:
			p.pos++
			p.parseFileBlock(rest, lineNumber)
		case keywordCreate:
			p.pos++
			content := p.readContentBlock(isBlankLine)
			if rest == "" {
				p.warn(lineNumber, line, "CREATE without a path")
				continue
			}
			p.result.Patches = append(p.result.Patches, domain.Patch{
				Kind:     domain.PatchCreateFile,
				FilePath: rest,
				Content:  content,
				Line:     lineNumber,
			})
		case keywordRemove:
			p.pos++
			if rest == "" {
				p.warn(lineNumber, line, "REMOVE without a path")
				continue
			}
			p.result.Patches = append(p.result.Patches, domain.Patch{
				Kind:     domain.PatchRemoveFile,
				FilePath: rest,
				Line:     lineNumber,
			})
		case keywordCredit:
			p.pos++
			p.addCredit(rest, lineNumber, line)
		case keywordFindReplace:
			p.pos++
			find, replace, err := parseFindReplaceArgs(rest)
			if err != nil {
				p.warn(lineNumber, line, err.Error())
				continue
			}
			p.result.Patches = append(p.result.Patches, domain.Patch{
				Kind:    domain.PatchGlobalFindReplace,
				Find:    find,
				Replace: replace,
				Line:    lineNumber,
			})
		case keywordEnd:
			p.pos++
			p.warn(lineNumber, line, "END outside of a FILE block")
		default:
			p.pos++
			if _, isAction := actionKeywords[keyword]; isAction {
				p.warn(lineNumber, line, keyword+" outside of a FILE block")
			} else if !isLayoutLine(line) {
				p.warn(lineNumber, line, "unrecognized line")
			}
		}
	}
}

// parseFileBlock consumes actions until END, the next FILE/CREATE/REMOVE or EOF.
func (p *parser) parseFileBlock(path string, lineNumber int) {
	patch := domain.Patch{
		Kind:     domain.PatchFileEdit,
		FilePath: path,
		Line:     lineNumber,
	}

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		actionLine := p.pos + 1
		keyword, rest := splitKeyword(line)

		if keyword == keywordEnd {
			p.pos++
			break
		}
		if keyword == keywordFile || keyword == keywordCreate || keyword == keywordRemove {
			break
		}

		p.pos++
		if kind, isAction := actionKeywords[keyword]; isAction {
			if action, ok := p.parseAction(kind, rest, actionLine, line); ok {
				patch.Actions = append(patch.Actions, action)
			}
			continue
		}

		switch keyword {
		case keywordCredit:
			p.addCredit(rest, actionLine, line)
		case keywordFindReplace:
			find, replace, err := parseFindReplaceArgs(rest)
			if err != nil {
				p.warn(actionLine, line, err.Error())
				continue
			}
			patch.Actions = append(patch.Actions, domain.Action{
				Kind:    domain.ActionFindReplace,
				Find:    find,
				Replace: replace,
				Line:    actionLine,
			})
		default:
			if !isLayoutLine(line) {
				p.warn(actionLine, line, "unexpected line in FILE block")
			}
		}
	}

	if path == "" {
		p.warn(lineNumber, p.lines[lineNumber-1], "FILE without a path")
		return
	}
	p.result.Patches = append(p.result.Patches, patch)
}

func (p *parser) parseAction(kind domain.ActionKind, signature string, lineNumber int, line string) (domain.Action, bool) {
	body := p.readContentBlock(isLayoutLine)
	action := domain.Action{
		Kind:      kind,
		Signature: signature,
		Line:      lineNumber,
	}

	if kind.RequiresSignature() && signature == "" {
		p.warn(lineNumber, line, string(kind)+" without a signature")
		return action, false
	}

	switch kind {
	case domain.ActionContextPatch:
		action.Operations = parseOperations(body)
	case domain.ActionAddField:
		if signature != "" {
			body = append([]string{signature}, body...)
			action.Signature = ""
		}
		action.Content = body
	case domain.ActionCreateMethod:
		action.Signature = ""
		action.Content = body
	default:
		action.Content = body
	}

	if len(action.Content) == 0 && len(action.Operations) == 0 &&
		(kind == domain.ActionContextPatch || kind == domain.ActionCreateMethod || kind == domain.ActionAddField) {
		p.warn(lineNumber, line, string(kind)+" with an empty body")
		return action, false
	}
	return action, true
}

// readContentBlock returns the raw lines up to the next keyword line. A
// terminating END is consumed. Trailing lines for which isTrailer holds
// belong to the patch file layout, not to the body.
func (p *parser) readContentBlock(isTrailer func(string) bool) []string {
	var content []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		keyword, _ := splitKeyword(line)
		if keyword == keywordEnd {
			p.pos++
			break
		}
		if isKeyword(keyword) {
			break
		}
		content = append(content, line)
		p.pos++
	}

	end := len(content)
	for end > 0 && isTrailer(content[end-1]) {
		end--
	}
	return content[:end]
}

func (p *parser) addCredit(text string, lineNumber int, line string) {
	if text == "" {
		p.warn(lineNumber, line, "CREDIT without text")
		return
	}
	p.result.Credits = append(p.result.Credits, text)
}

func (p *parser) warn(lineNumber int, line string, reason string) {
	p.result.Warnings = append(p.result.Warnings, ParseWarning{
		Line:   lineNumber,
		Text:   strings.TrimSpace(line),
		Reason: reason,
	})
}

func parseOperations(body []string) []domain.Operation {
	operations := make([]domain.Operation, 0, len(body))
	for _, line := range body {
		switch {
		case strings.HasPrefix(line, "+ "):
			operations = append(operations, domain.Operation{Tag: domain.OpAdd, Line: line[2:]})
		case strings.HasPrefix(line, "- "):
			operations = append(operations, domain.Operation{Tag: domain.OpRemove, Line: line[2:]})
		case line == "+":
			operations = append(operations, domain.Operation{Tag: domain.OpAdd, Line: ""})
		case line == "-":
			operations = append(operations, domain.Operation{Tag: domain.OpRemove, Line: ""})
		default:
			operations = append(operations, domain.Operation{Tag: domain.OpContext, Line: line})
		}
	}
	return operations
}

// parseFindReplaceArgs parses `"<old>" "<new>"` using Go string literal syntax.
func parseFindReplaceArgs(args string) (string, string, error) {
	find, rest, err := unquotePrefix(strings.TrimSpace(args))
	if err != nil {
		return "", "", fmt.Errorf("FIND_REPLACE expects two quoted strings: %v", err)
	}
	replace, rest, err := unquotePrefix(strings.TrimSpace(rest))
	if err != nil {
		return "", "", fmt.Errorf("FIND_REPLACE expects two quoted strings: %v", err)
	}
	if strings.TrimSpace(rest) != "" {
		return "", "", fmt.Errorf("FIND_REPLACE has trailing text after the replacement")
	}
	if find == "" {
		return "", "", fmt.Errorf("FIND_REPLACE search string is empty")
	}
	return find, replace, nil
}

func unquotePrefix(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("missing opening quote")
	}
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", fmt.Errorf("unterminated string")
	}
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", err
	}
	return value, s[len(quoted):], nil
}

func splitKeyword(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 || !isKeyword(fields[0]) {
		return "", ""
	}
	return fields[0], strings.TrimSpace(trimmed[len(fields[0]):])
}

// isLayoutLine reports blank and comment lines, which may appear anywhere
// between directives.
func isLayoutLine(line string) bool {
	_, ok := Normalize(line)
	return !ok
}

// isBlankLine trims CREATE bodies, where smali comments are file content.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isKeyword(token string) bool {
	switch token {
	case keywordFile, keywordCreate, keywordRemove, keywordCredit, keywordFindReplace, keywordEnd:
		return true
	}
	_, isAction := actionKeywords[token]
	return isAction
}
