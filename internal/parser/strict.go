package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gedtools/gedserve/internal/gedcom"
)

// ErrNothingParsed is returned by the strict entry points when the input
// produced no records at all.
var ErrNothingParsed = errors.New("no records parsed, input is empty or not gedcom")

// MalformedError is returned by the strict entry points when the lenient
// parser reported warnings.
type MalformedError struct {
	Warnings []Warning
}

func (e *MalformedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed gedcom, %d warning(s)", len(e.Warnings))
	for _, w := range e.Warnings {
		b.WriteString("\n\t")
		b.WriteString(w.Warning())
	}
	return b.String()
}

// ParseBytes detects the character encoding of raw file bytes, decodes
// them, and parses leniently.
func ParseBytes(data []byte) (*gedcom.Document, []Warning, error) {
	decoded, _, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse gedcom: %w", err)
	}
	return Parse(bytes.NewReader(decoded))
}

// ParseFile reads and parses the GEDCOM file at path leniently.
func ParseFile(path string) (*gedcom.Document, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read gedcom: %w", err)
	}
	return ParseBytes(data)
}

// StrictParseBytes parses raw file bytes and escalates any problem to a
// hard failure: warnings become a MalformedError, an empty result becomes
// ErrNothingParsed.
func StrictParseBytes(data []byte) (*gedcom.Document, error) {
	doc, warnings, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		return nil, &MalformedError{Warnings: warnings}
	}
	if doc.Len() == 0 {
		return nil, ErrNothingParsed
	}
	return doc, nil
}

// StrictParse is StrictParseBytes over the file at path.
func StrictParse(path string) (*gedcom.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gedcom: %w", err)
	}
	return StrictParseBytes(data)
}
