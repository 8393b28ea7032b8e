// Package parser reads GEDCOM text into a gedcom.Document.
//
// Parse is lenient: malformed lines are skipped with a warning and the
// scan continues. StrictParse wraps it for callers that want an
// all-or-nothing contract.
package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gedtools/gedserve/internal/gedcom"
)

// Parse scans r line by line and builds the document tree. Each line is
// split into level, tag and payload; sub-lines attach to the nearest open
// ancestor of a strictly smaller level, in source order.
//
// Malformed lines never stop the scan, they only add to the returned
// warnings. The single exception is a one-character line: that means the
// caller is feeding characters where lines were expected, so the scan
// aborts there and returns what was built so far. The returned error is
// only ever a read error from r.
func Parse(r io.Reader) (*gedcom.Document, []Warning, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := gedcom.NewDocument()
	var warnings []Warning
	var ancestors []*gedcom.Line
	lineNumber := 0

	for sc.Scan() {
		lineNumber++
		raw := sc.Text()
		line := strings.TrimRight(raw, " \t\r\n")
		if line == "" {
			warnings = append(warnings, EmptyLineWarning{lineNumber})
			continue
		}

		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 {
			if len(line) == 1 {
				warnings = append(warnings, CharacterInsteadOfLineWarning{lineNumber})
				return doc, warnings, nil
			}
			warnings = append(warnings, LineParsingWarning{lineNumber, raw})
			continue
		}

		level, err := strconv.Atoi(fields[0])
		if err != nil {
			warnings = append(warnings, LevelParsingWarning{lineNumber, raw})
			continue
		}

		parsed := &gedcom.Line{Level: level, Tag: fields[1]}
		if len(fields) == 3 {
			parsed.Payload = fields[2]
		}

		if level == 0 {
			// A new record: it becomes the sole open ancestor.
			ancestors = append(ancestors[:0], parsed)
			if doc.Put(parsed) {
				warnings = append(warnings, DuplicateXRefWarning{parsed.Tag})
			}
			continue
		}

		// Find the nearest open ancestor with a strictly smaller level.
		// Skipped levels are tolerated.
		for len(ancestors) > 0 && level <= ancestors[len(ancestors)-1].Level {
			ancestors = ancestors[:len(ancestors)-1]
		}
		if len(ancestors) == 0 {
			warnings = append(warnings, LevelInconsistencyWarning{lineNumber, raw})
			continue
		}
		parent := ancestors[len(ancestors)-1]
		parent.SubLines = append(parent.SubLines, parsed)
		ancestors = append(ancestors, parsed)
	}

	if err := sc.Err(); err != nil {
		return doc, warnings, err
	}
	return doc, warnings, nil
}
