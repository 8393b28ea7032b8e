// Package gedcom holds the in-memory model of a parsed GEDCOM document:
// a flat map of level-0 records, each owning a tree of lines.
package gedcom

import "strconv"

// Void is the placeholder pointer payload standing for an unknown person.
// A family record may point a child slot at it to preserve birth order
// without naming anyone.
const Void = "@VOID@"

// Line is one "LEVEL TAG PAYLOAD" line of a GEDCOM document together with
// its sub-lines. For level-0 records the Tag field carries the
// cross-reference identifier (e.g. "@I1@") instead of a semantic tag.
//
// A nil *Line stands for "no such line". Every read method is nil-safe and
// returns an empty result on a nil receiver, so lookups chain without
// existence checks:
//
//	year := doc.Record("@I1@").Sub("BIRT").SubPayload("DATE")
//
// Use Exists to tell an absent line from a real one. Accessing struct
// fields on an absent line panics like any nil dereference; go through the
// methods when the line may be missing.
type Line struct {
	Level    int
	Tag      string
	Payload  string
	SubLines []*Line
}

// Exists reports whether l is a real line rather than the absent sentinel.
func (l *Line) Exists() bool { return l != nil }

// Sub returns the first direct sub-line with the given tag, or nil.
func (l *Line) Sub(tag string) *Line {
	if l == nil {
		return nil
	}
	for _, sub := range l.SubLines {
		if sub.Tag == tag {
			return sub
		}
	}
	return nil
}

// SubAll returns all direct sub-lines with the given tag, in source order.
func (l *Line) SubAll(tag string) []*Line {
	if l == nil {
		return nil
	}
	var out []*Line
	for _, sub := range l.SubLines {
		if sub.Tag == tag {
			out = append(out, sub)
		}
	}
	return out
}

// SubPayload returns the payload of the first direct sub-line with the
// given tag, or "" if none matches.
func (l *Line) SubPayload(tag string) string {
	if l == nil {
		return ""
	}
	for _, sub := range l.SubLines {
		if sub.Tag == tag {
			return sub.Payload
		}
	}
	return ""
}

// Value returns the payload, or "" for an absent line.
func (l *Line) Value() string {
	if l == nil {
		return ""
	}
	return l.Payload
}

// ContinuedPayload returns the payload joined with its CONT and CONC
// sub-lines: CONT appends a newline plus its payload, CONC appends its
// payload directly. Multi-line GEDCOM values are split this way in the
// source text.
func (l *Line) ContinuedPayload() string {
	if l == nil {
		return ""
	}
	text := l.Payload
	for _, sub := range l.SubLines {
		switch sub.Tag {
		case "CONT":
			text += "\n" + sub.Payload
		case "CONC":
			text += sub.Payload
		}
	}
	return text
}

// String renders the line in GEDCOM text form, sub-lines excluded.
func (l *Line) String() string {
	if l == nil {
		return ""
	}
	if l.Payload == "" {
		return strconv.Itoa(l.Level) + " " + l.Tag
	}
	return strconv.Itoa(l.Level) + " " + l.Tag + " " + l.Payload
}
