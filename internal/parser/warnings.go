package parser

import "fmt"

// Warning is a recoverable problem found while scanning GEDCOM input.
// The parser collects warnings and keeps scanning; the one exception is
// CharacterInsteadOfLineWarning, which aborts the scan (see Parse).
type Warning interface {
	Warning() string
}

// EmptyLineWarning reports a blank input line. The line is skipped.
type EmptyLineWarning struct {
	LineNumber int
}

func (w EmptyLineWarning) Warning() string {
	return fmt.Sprintf("line %d: empty line", w.LineNumber)
}

// LineParsingWarning reports a line with fewer than two space-separated
// fields, where at least a level and a tag are required. The line is
// skipped.
type LineParsingWarning struct {
	LineNumber int
	Content    string
}

func (w LineParsingWarning) Warning() string {
	return fmt.Sprintf("line %d: not a level-tag-payload line: %q", w.LineNumber, w.Content)
}

// LevelParsingWarning reports a line whose first field is not an integer.
// The line is skipped.
type LevelParsingWarning struct {
	LineNumber int
	Content    string
}

func (w LevelParsingWarning) Warning() string {
	return fmt.Sprintf("line %d: unparsable level: %q", w.LineNumber, w.Content)
}

// DuplicateXRefWarning reports a cross-reference identifier defined by two
// level-0 lines. The later record replaces the earlier one.
type DuplicateXRefWarning struct {
	XRef string
}

func (w DuplicateXRefWarning) Warning() string {
	return fmt.Sprintf("duplicate cross-reference identifier %s", w.XRef)
}

// LevelInconsistencyWarning reports a line whose level has no open ancestor
// to attach to. The line is dropped from the tree.
type LevelInconsistencyWarning struct {
	LineNumber int
	Content    string
}

func (w LevelInconsistencyWarning) Warning() string {
	return fmt.Sprintf("line %d: no valid parent line: %q", w.LineNumber, w.Content)
}

// CharacterInsteadOfLineWarning reports a line of a single character. A run
// of those means the caller fed individual characters where lines were
// expected, so the scan aborts at the first one instead of producing a
// warning per character.
type CharacterInsteadOfLineWarning struct {
	LineNumber int
}

func (w CharacterInsteadOfLineWarning) Warning() string {
	return fmt.Sprintf("line %d: single-character line, input looks like a character stream", w.LineNumber)
}
