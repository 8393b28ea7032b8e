package gedcom

import (
	"io"
	"strings"
)

// AllSubLines returns every line under l in depth-first source order,
// l itself excluded: a line's own sub-lines come before its later siblings.
func (l *Line) AllSubLines() []*Line {
	if l == nil {
		return nil
	}
	var out []*Line
	stack := make([]*Line, len(l.SubLines))
	copy(stack, l.SubLines)
	for len(stack) > 0 {
		line := stack[0]
		out = append(out, line)
		stack = append(append([]*Line{}, line.SubLines...), stack[1:]...)
	}
	return out
}

// Walk calls fn once for every line of every record, depth-first in source
// order. path is the root-to-node sequence ending in the visited line; fn
// must not retain it, the backing array is reused between calls.
func (d *Document) Walk(fn func(path []*Line)) {
	if d == nil {
		return
	}
	var walk func(path []*Line)
	walk = func(path []*Line) {
		fn(path)
		line := path[len(path)-1]
		for _, sub := range line.SubLines {
			walk(append(path, sub))
		}
	}
	path := make([]*Line, 0, 8)
	for _, rec := range d.Records() {
		walk(append(path, rec))
	}
}

// WriteSource writes l and all its sub-lines back out as GEDCOM text,
// one line per text line.
func (l *Line) WriteSource(w io.Writer) error {
	if l == nil {
		return nil
	}
	if _, err := io.WriteString(w, l.String()+"\n"); err != nil {
		return err
	}
	for _, sub := range l.AllSubLines() {
		if _, err := io.WriteString(w, sub.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Source returns the GEDCOM text of the line and its sub-lines.
func (l *Line) Source() string {
	var b strings.Builder
	l.WriteSource(&b)
	return b.String()
}

// WriteSource reconstructs the full GEDCOM text of the document. For a
// document parsed without warnings this reproduces the input exactly.
func (d *Document) WriteSource(w io.Writer) error {
	if d == nil {
		return nil
	}
	for _, rec := range d.Records() {
		if err := rec.WriteSource(w); err != nil {
			return err
		}
	}
	return nil
}

// Source returns the GEDCOM text of the whole document.
func (d *Document) Source() string {
	var b strings.Builder
	d.WriteSource(&b)
	return b.String()
}
