package gedcom

// Document stores every level-0 record of a GEDCOM file, keyed by
// cross-reference identifier. The header and trailer sit under the literal
// keys "HEAD" and "TRLR". Iteration follows insertion order, which for a
// parsed file is source order.
//
// A Document is not safe for concurrent mutation. The parser populates it
// once; afterwards callers may keep mutating it through Put and Remove, but
// anything derived from it (such as familylink indices) must then be
// rebuilt by hand.
type Document struct {
	records map[string]*Line
	order   []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{records: make(map[string]*Line)}
}

// Record returns the record under the given identifier, or nil if absent.
func (d *Document) Record(xref string) *Line {
	if d == nil {
		return nil
	}
	return d.records[xref]
}

// Contains reports whether a record exists under the given identifier.
func (d *Document) Contains(xref string) bool {
	if d == nil {
		return false
	}
	_, ok := d.records[xref]
	return ok
}

// Len returns the number of records.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns all records in insertion order.
func (d *Document) Records() []*Line {
	if d == nil {
		return nil
	}
	out := make([]*Line, 0, len(d.order))
	for _, xref := range d.order {
		out = append(out, d.records[xref])
	}
	return out
}

// RecordsOfType returns the records whose payload equals recordType
// (e.g. "INDI" or "FAM"), in insertion order.
func (d *Document) RecordsOfType(recordType string) []*Line {
	if d == nil {
		return nil
	}
	var out []*Line
	for _, xref := range d.order {
		if rec := d.records[xref]; rec.Payload == recordType {
			out = append(out, rec)
		}
	}
	return out
}

// Put inserts or replaces the record under its Tag. Replacing keeps the
// record's original position in iteration order. It reports whether an
// existing record was overwritten.
func (d *Document) Put(rec *Line) bool {
	_, replaced := d.records[rec.Tag]
	if !replaced {
		d.order = append(d.order, rec.Tag)
	}
	d.records[rec.Tag] = rec
	return replaced
}

// Remove deletes the record under the given identifier, if any.
func (d *Document) Remove(xref string) {
	if _, ok := d.records[xref]; !ok {
		return
	}
	delete(d.records, xref)
	for i, id := range d.order {
		if id == xref {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}
